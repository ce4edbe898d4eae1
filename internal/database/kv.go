package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KVStore.Get when the key has never been written
// or was deleted.
var ErrNotFound = errors.New("key not found")

// KVStore persists opaque values under string keys. The selection blob is the
// only value the application writes, so implementations favour simplicity
// over throughput.
type KVStore interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
