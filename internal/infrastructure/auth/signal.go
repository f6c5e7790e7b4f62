package auth

import "sync"

// SessionSignal tracks the last observed authentication state per cart key
// so the unauthenticated-to-authenticated transition fires exactly once.
// The cart merge is driven off that single transition, never off repeated
// authenticated requests
type SessionSignal struct {
	mu            sync.Mutex
	authenticated map[string]bool
}

// NewSessionSignal creates an empty signal tracker
func NewSessionSignal() *SessionSignal {
	return &SessionSignal{
		authenticated: make(map[string]bool),
	}
}

// Observe records the current state for a cart key and reports whether this
// observation is the transition from unauthenticated to authenticated
func (s *SessionSignal) Observe(cartKey string, isAuthenticated bool) (becameAuthenticated bool) {
	if cartKey == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	was := s.authenticated[cartKey]
	s.authenticated[cartKey] = isAuthenticated
	return isAuthenticated && !was
}

// Reset forgets the state for a cart key, e.g. on logout, so a later login
// counts as a fresh transition
func (s *SessionSignal) Reset(cartKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.authenticated, cartKey)
}
