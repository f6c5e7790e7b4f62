package remotecart

import "errors"

// Config holds settings for the commerce platform cart API
type Config struct {
	// BaseURL is the GraphQL endpoint, e.g. https://api.example.com/graphql
	BaseURL string
	// TimeoutSeconds bounds each outbound request
	TimeoutSeconds int
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("remotecart: config is required")
	}
	if c.BaseURL == "" {
		return errors.New("remotecart: base URL is required")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("remotecart: timeout must be positive")
	}
	return nil
}
