package database

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kozaktomas/photo-selector/internal/config"
)

// Opener creates a KVStore from configuration.
type Opener func(ctx context.Context, cfg *config.Config) (KVStore, error)

var (
	backends   = make(map[string]Opener)
	backendsMu sync.RWMutex
)

// RegisterBackend registers a storage backend under name.
// Backends are registered by the cmd package to avoid import cycles.
func RegisterBackend(name string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = open
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open opens the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (KVStore, error) {
	backendsMu.RLock()
	open, ok := backends[cfg.Storage.Backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage backend %q (available: %v)", cfg.Storage.Backend, Backends())
	}
	store, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}
