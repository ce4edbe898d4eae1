package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-selector/internal/database"
	"github.com/kozaktomas/photo-selector/internal/logging"
)

// Store persists the selection map as one JSON value under a fixed key.
type Store struct {
	kv     database.KVStore
	key    string
	size   int
	logger *log.Logger
}

// NewStore binds a store to a key-value backend and the catalog size
// used to discard out-of-range entries on load.
func NewStore(kv database.KVStore, key string, catalogSize int, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{kv: kv, key: key, size: catalogSize, logger: logger}
}

// Load reads the persisted map. A missing, unreadable or malformed value
// yields an empty map; Load never fails.
func (s *Store) Load(ctx context.Context) Map {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("reading selections failed, starting empty", "key", s.key, "err", err)
		}
		return Map{}
	}
	m, err := Decode(data, s.size)
	if err != nil {
		s.logger.Warn("stored selections are malformed, starting empty", "key", s.key, "err", err)
		return Map{}
	}
	s.logger.Debug("loaded selections", "key", s.key, "photos", len(m))
	return m
}

// Save writes the whole map, replacing the previous value.
func (s *Store) Save(ctx context.Context, m Map) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save selections: %w", err)
	}
	s.logger.Debug("saved selections", "key", s.key, "photos", len(m))
	return nil
}

// Clear persists the empty map.
func (s *Store) Clear(ctx context.Context) error {
	return s.Save(ctx, Map{})
}
