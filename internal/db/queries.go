package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/siteboard/internal/logger"
	"github.com/j-veylop/siteboard/internal/models"
)

// InsertFetch logs a backend request.
func (db *DB) InsertFetch(ctx context.Context, rec *models.FetchRecord) error {
	query := `
		INSERT INTO fetch_log (
			timestamp, kind, website_id, start_date, end_date,
			duration_ms, status_code, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := rec.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(ctx, query,
		timestamp.UTC().Format(timestampLayout),
		string(rec.Kind),
		nullString(rec.WebsiteID),
		nullString(rec.StartDate),
		nullString(rec.EndDate),
		rec.DurationMs,
		rec.StatusCode,
		nullString(rec.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}

	return nil
}

// RecentFetches returns the most recent fetches, newest first.
func (db *DB) RecentFetches(ctx context.Context, limit int) ([]models.FetchRecord, error) {
	query := `
		SELECT id, timestamp, kind, website_id, start_date, end_date,
			   duration_ms, status_code, error
		FROM fetch_log
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent fetches: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var records []models.FetchRecord
	for rows.Next() {
		var (
			rec                               models.FetchRecord
			kind                              string
			websiteID, start, end, errMessage sql.NullString
		)

		err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&kind,
			&websiteID,
			&start,
			&end,
			&rec.DurationMs,
			&rec.StatusCode,
			&errMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}

		rec.Kind = models.FetchKind(kind)
		rec.WebsiteID = websiteID.String
		rec.StartDate = start.String
		rec.EndDate = end.String
		rec.Error = errMessage.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// FetchStats returns aggregate statistics over the whole fetch log.
func (db *DB) FetchStats(ctx context.Context) (*models.FetchStats, error) {
	query := `
		SELECT
			COUNT(*) as total_fetches,
			COALESCE(SUM(CASE WHEN status_code >= 400 OR error IS NOT NULL THEN 1 ELSE 0 END), 0) as error_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration
		FROM fetch_log
	`

	var stats models.FetchStats
	err := db.QueryRowContext(ctx, query).Scan(
		&stats.TotalFetches,
		&stats.ErrorCount,
		&stats.AvgDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch stats: %w", err)
	}

	return &stats, nil
}

// PruneFetches deletes fetch log rows older than the given age.
func (db *DB) PruneFetches(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC().Format(timestampLayout)
	result, err := db.ExecContext(ctx, "DELETE FROM fetch_log WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fetch log: %w", err)
	}
	return result.RowsAffected()
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
