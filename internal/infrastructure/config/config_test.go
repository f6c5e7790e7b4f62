package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront-cart", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 10, cfg.RemoteCart.TimeoutSeconds)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiration)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_REDIS_HOST", "redis.internal")
	t.Setenv("STOREFRONT_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		App:        AppConfig{Env: "development", Port: "8080"},
		RemoteCart: RemoteCartConfig{BaseURL: "http://api/graphql", TimeoutSeconds: 5},
	}
	assert.NoError(t, valid.Validate())

	missingURL := &Config{
		App:        AppConfig{Env: "development", Port: "8080"},
		RemoteCart: RemoteCartConfig{TimeoutSeconds: 5},
	}
	assert.Error(t, missingURL.Validate())

	prodWithoutSecret := &Config{
		App:        AppConfig{Env: "production", Port: "8080"},
		RemoteCart: RemoteCartConfig{BaseURL: "http://api/graphql", TimeoutSeconds: 5},
	}
	assert.Error(t, prodWithoutSecret.Validate())
}
