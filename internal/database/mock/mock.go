// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/kozaktomas/photo-selector/internal/database"
)

// MockKVStore is an in-memory implementation of database.KVStore.
// It doubles as the "memory" storage backend.
type MockKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	// Error injection
	GetError    error
	PutError    error
	DeleteError error

	// Call counters
	PutCalls int
}

// NewMockKVStore creates a new empty mock store
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{
		values: make(map[string][]byte),
	}
}

// Set stores a raw value, bypassing error injection
func (m *MockKVStore) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
}

// Raw returns the stored value and whether it exists
func (m *MockKVStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return slices.Clone(v), ok
}

// Keys returns all stored keys
func (m *MockKVStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values))
}

// Get retrieves a value by key
func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Put stores a value
func (m *MockKVStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.PutCalls++
	m.mu.Unlock()
	if m.PutError != nil {
		return m.PutError
	}
	m.Set(key, value)
	return nil
}

// Delete removes a value
func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close is a no-op
func (m *MockKVStore) Close() error {
	return nil
}
