package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/siteboard/internal/cache"
)

var _ cache.Store = (*DB)(nil)

// Get returns the cached entry for key.
func (db *DB) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	var (
		value    []byte
		storedAt int64
	)
	err := db.QueryRowContext(ctx,
		"SELECT value, stored_at FROM query_cache WHERE key = ?", key,
	).Scan(&value, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return cache.Entry{}, false, nil
	}
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return cache.Entry{
		Value:    value,
		StoredAt: time.UnixMilli(storedAt),
	}, true, nil
}

// Put stores or replaces the entry for key.
func (db *DB) Put(ctx context.Context, key string, entry cache.Entry) error {
	query := `
		INSERT INTO query_cache (key, value, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at
	`
	if _, err := db.ExecContext(ctx, query, key, entry.Value, entry.StoredAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key.
func (db *DB) Delete(ctx context.Context, key string) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM query_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
