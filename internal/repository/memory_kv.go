package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/cvshop/internal/port"
)

// MemoryKV keeps values in process memory. Values are copied on the way in and out.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string][]byte),
	}
}

func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}

	return slices.Clone(value), nil
}

func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)

	return nil
}

func (s *MemoryKV) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.values[key]
	delete(s.values, key)

	return ok, nil
}

func (s *MemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}
