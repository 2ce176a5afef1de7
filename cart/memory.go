package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in an in-process map. Carts are lost on restart,
// which matches their ephemeral role.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]map[uint]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]map[uint]int)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (map[uint]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uint]int, len(s.carts[sessionID]))
	for id, qty := range s.carts[sessionID] {
		out[id] = qty
	}
	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, sessionID string, productID uint, qty int) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.carts[sessionID]
	if entries == nil {
		entries = make(map[uint]int)
		s.carts[sessionID] = entries
	}
	entries[productID] += qty
	return entries[productID], total(entries), nil
}

func (s *MemoryStore) Remove(_ context.Context, sessionID string, productID uint) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.carts[sessionID]
	removed, ok := entries[productID]
	if !ok {
		return 0, total(entries), ErrNotInCart
	}
	delete(entries, productID)
	return removed, total(entries), nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := total(s.carts[sessionID])
	delete(s.carts, sessionID)
	return cleared, nil
}

func total(entries map[uint]int) int {
	sum := 0
	for _, qty := range entries {
		sum += qty
	}
	return sum
}
