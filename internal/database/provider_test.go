package database

import (
	"context"
	"errors"
	"testing"

	"github.com/kozaktomas/photo-selector/internal/config"
)

type nopStore struct{}

func (nopStore) Get(ctx context.Context, key string) ([]byte, error)     { return nil, ErrNotFound }
func (nopStore) Put(ctx context.Context, key string, value []byte) error { return nil }
func (nopStore) Delete(ctx context.Context, key string) error            { return nil }
func (nopStore) Close() error                                            { return nil }

func TestOpen_RegisteredBackend(t *testing.T) {
	RegisterBackend("test-nop", func(ctx context.Context, cfg *config.Config) (KVStore, error) {
		return nopStore{}, nil
	})

	cfg := &config.Config{Storage: config.StorageConfig{Backend: "test-nop"}}
	store, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Get(context.Background(), "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: "does-not-exist"}}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpen_OpenerError(t *testing.T) {
	RegisterBackend("test-broken", func(ctx context.Context, cfg *config.Config) (KVStore, error) {
		return nil, errors.New("boom")
	})

	cfg := &config.Config{Storage: config.StorageConfig{Backend: "test-broken"}}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Error("expected opener error to propagate")
	}
}

func TestBackends_Sorted(t *testing.T) {
	RegisterBackend("zz-test", func(ctx context.Context, cfg *config.Config) (KVStore, error) { return nopStore{}, nil })
	RegisterBackend("aa-test", func(ctx context.Context, cfg *config.Config) (KVStore, error) { return nopStore{}, nil })

	names := Backends()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("backends not sorted: %v", names)
		}
	}
}
