package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

const defaultKeyPrefix = "cart:guest:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore persists guest carts in Redis, one string key per cart key
// holding the JSON-serialized item list. Guest carts carry no expiry and no
// schema version
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore creates a guest cart store backed by a new Redis client
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		logger:    logger,
	}, nil
}

// NewRedisStoreWithClient creates a store sharing an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Load reads the guest cart for the given key. A missing key is an empty
// cart. Corrupt content is logged and recovered as an empty cart, not
// propagated
func (s *RedisStore) Load(ctx context.Context, key string) ([]cart.CartItem, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return []cart.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	items, ok := decodeItems(raw)
	if !ok {
		s.logger.Warn("corrupt guest cart payload, recovering as empty",
			zap.String("cart_key", key),
		)
		return []cart.CartItem{}, nil
	}
	return items, nil
}

// Save writes the full item list for the given key
func (s *RedisStore) Save(ctx context.Context, key string, items []cart.CartItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

// Delete removes the guest cart for the given key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements cart.Store
var _ cart.Store = (*RedisStore)(nil)
