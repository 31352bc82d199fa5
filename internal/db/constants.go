package db

const (
	// schemaVersion is stored in PRAGMA user_version
	schemaVersion = 1

	// timestampLayout matches SQLite's CURRENT_TIMESTAMP format
	timestampLayout = "2006-01-02 15:04:05"
)
