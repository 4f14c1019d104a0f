// Package storage provides the key/value blob store the trip services
// persist their JSON documents into.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Repository is an opaque key/value store for small JSON blobs.
type Repository interface {
	// GetItem retrieves the raw value stored under key.
	// Returns ErrKeyNotFound when the key is absent.
	GetItem(ctx context.Context, key string) ([]byte, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key string, value []byte) error

	// RemoveItem deletes the value under key. Removing an absent key is
	// not an error.
	RemoveItem(ctx context.Context, key string) error
}
