package localstore

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

// MemoryStore is an in-memory guest cart store with the same string-payload
// contract as RedisStore. Suitable for tests and single-instance dev runs
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	logger  *zap.Logger
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
		logger:  logger,
	}
}

// Load reads the guest cart for the given key, recovering corrupt payloads
// as an empty cart
func (s *MemoryStore) Load(_ context.Context, key string) ([]cart.CartItem, error) {
	s.mu.RLock()
	raw, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return []cart.CartItem{}, nil
	}

	items, valid := decodeItems(raw)
	if !valid {
		s.logger.Warn("corrupt guest cart payload, recovering as empty",
			zap.String("cart_key", key),
		)
		return []cart.CartItem{}, nil
	}
	return items, nil
}

// Save writes the full item list for the given key
func (s *MemoryStore) Save(_ context.Context, key string, items []cart.CartItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = payload
	s.mu.Unlock()
	return nil
}

// Delete removes the guest cart for the given key
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// SetRaw stores a raw payload directly, bypassing the codec. Test hook for
// corrupt-content scenarios
func (s *MemoryStore) SetRaw(key, payload string) {
	s.mu.Lock()
	s.entries[key] = payload
	s.mu.Unlock()
}

// Ensure MemoryStore implements cart.Store
var _ cart.Store = (*MemoryStore)(nil)
