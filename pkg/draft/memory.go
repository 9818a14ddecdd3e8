package draft

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. It backs tests and single-run
// sessions where nothing should outlive the process.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the slot. Deleting an empty slot is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Len returns the number of occupied slots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
