package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps blobs in process memory. Nothing survives a restart.
type MemorySlot struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemorySlot returns an empty slot store that lives as long as the process.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{blobs: make(map[string][]byte)}
}

func (s *MemorySlot) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *MemorySlot) Write(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
