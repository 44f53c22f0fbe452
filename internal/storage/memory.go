package storage

import (
	"context"
	"sync"

	"outlay/internal/core"
)

// MemoryStore keeps the snapshot in process memory. Used by tests and
// as the volatile dev backend.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []core.Record
	saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.snapshot...), nil
}

func (s *MemoryStore) Save(_ context.Context, records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = append([]core.Record(nil), records...)
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Saves reports how many times Save ran, for tests asserting the
// save-on-mutation contract.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
