package cart

import "sync"

// Store keeps one Cart per session id, in memory only. Carts are born
// empty and die with the process; there is no cross-session sharing.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// GetOrCreate returns the cart for the session, creating an empty one
// on first use.
func (s *Store) GetOrCreate(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Перепроверяем под write-локом
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Get returns the cart for the session if one exists.
func (s *Store) Get(sessionID string) (*Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	return c, ok
}

// Delete drops the session's cart entirely.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
