package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the artifact in memory.
// Useful for testing and for single-process build-and-serve runs.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []byte
	saved bool
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored artifact.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// Save replaces the stored artifact with a copy of data.
func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.saved = true
	return nil
}

// Location returns "memory".
func (s *MemoryStore) Location() string { return "memory" }

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
