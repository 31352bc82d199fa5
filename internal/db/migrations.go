package db

import (
	"context"
	"fmt"
)

// migrate brings an existing database up to schemaVersion.
// Cached payloads are discarded on every version bump since their encoding may change.
func (db *DB) migrate() error {
	var version int
	if err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	queries := []string{
		"DELETE FROM query_cache",
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}

	for _, query := range queries {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to migrate to version %d: %w", schemaVersion, err)
		}
	}

	return nil
}
