// Package file implements a KV store kept in a single JSON document on disk,
// the local equivalent of a browser's localStorage for one origin.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio"
	"github.com/kozaktomas/photo-selector/internal/database"
)

// Store keeps every key in one JSON object. Values must themselves be JSON
// so the document stays readable.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by path, creating its directory if needed.
// The file itself is created on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// readAll loads the document. A missing file is an empty document.
func (s *Store) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	doc := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Store) writeAll(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readAll()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	// The document is stored indented; hand values back compact.
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return nil, fmt.Errorf("compact value for %q: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Put stores value under key. The whole document is rewritten atomically.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readAll()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)
	return s.writeAll(doc)
}

// Delete removes key from the document.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readAll()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.writeAll(doc)
}

// Close is a no-op; every write is already durable.
func (s *Store) Close() error {
	return nil
}
