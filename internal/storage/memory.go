package storage

import (
	"context"
	"sync"
)

// MemoryKV is the in-process fallback used in tests and when no Redis is
// configured. Timers then survive service restarts only as long as the
// process does, which matches a single-node deployment.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKV) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Len reports how many keys are stored, for tests.
func (s *MemoryKV) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
