package storage

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development. Production should use
// PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewInMemoryRepository creates a new in-memory blob repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string][]byte)}
}

// GetItem retrieves the value stored under key.
func (r *InMemoryRepository) GetItem(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Return a copy
	cpy := make([]byte, len(v))
	copy(cpy, v)
	return cpy, nil
}

// SetItem stores value under key.
func (r *InMemoryRepository) SetItem(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := make([]byte, len(value))
	copy(cpy, value)
	r.items[key] = cpy
	return nil
}

// RemoveItem deletes the value under key.
func (r *InMemoryRepository) RemoveItem(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
