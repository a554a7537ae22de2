package cart

import "sync"

// Store maps session ids to their carts. Carts live in process memory for the
// lifetime of the server; a restart starts everyone empty, mirroring a fresh
// browser session.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Aggregator
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Aggregator)}
}

// With runs fn against the session's cart while holding the store lock,
// creating the cart on first touch. All cart mutation goes through here so a
// session's operations are serialized.
func (s *Store) With(sessionID string, fn func(*Aggregator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, ok := s.carts[sessionID]
	if !ok {
		agg = NewAggregator()
		s.carts[sessionID] = agg
	}
	return fn(agg)
}

// Drop discards a session's cart entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sessions reports how many sessions currently hold a cart.
func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
