package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-selector/internal/database"
)

// KVStore is a PostgreSQL-backed database.KVStore. Every write is also
// appended to kv_history.
type KVStore struct {
	pool *Pool
}

// NewKVStore creates a KV store on an already-migrated pool.
func NewKVStore(pool *Pool) *KVStore {
	return &KVStore{pool: pool}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put upserts value and records it in the history table.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = EXCLUDED.updated_at
		`, key, value)
		if err != nil {
			return fmt.Errorf("put %q: %w", key, err)
		}
		return appendHistory(ctx, tx, key, value)
	})
}

// Delete removes key; the deletion is recorded as a NULL history entry.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM kv_store WHERE key = $1", key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
		return appendHistory(ctx, tx, key, nil)
	})
}

// History returns up to limit previous values of key, newest first.
// A nil entry marks a deletion.
func (s *KVStore) History(ctx context.Context, key string, limit int) ([][]byte, error) {
	rows, err := s.pool.db.QueryContext(ctx, `
		SELECT value FROM kv_history
		WHERE key = $1
		ORDER BY written_at DESC, id DESC
		LIMIT $2
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("query history for %q: %w", key, err)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return values, nil
}

// Close closes the underlying pool.
func (s *KVStore) Close() error {
	return s.pool.Close()
}

func (s *KVStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.pool.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func appendHistory(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	if _, err := tx.ExecContext(ctx, "INSERT INTO kv_history (key, value) VALUES ($1, $2)", key, value); err != nil {
		return fmt.Errorf("record history for %q: %w", key, err)
	}
	return nil
}
