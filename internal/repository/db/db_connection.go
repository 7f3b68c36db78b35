package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// InitDB opens the configuration history database at path, creating the
// file and tables when missing.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

const schemaActiveThresholds = `
CREATE TABLE IF NOT EXISTS active_thresholds (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    profile_name TEXT NOT NULL,
    min_temp REAL,
    max_temp REAL,
    max_humidity REAL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaSavedConfigs = `
CREATE TABLE IF NOT EXISTS saved_configs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    storage_type TEXT NOT NULL,
    status TEXT NOT NULL,
    draft TEXT NOT NULL
);
`

const indexSavedConfigsCreatedAt = `
CREATE INDEX IF NOT EXISTS idx_saved_configs_created_at ON saved_configs (created_at);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range []string{
		schemaActiveThresholds,
		schemaSavedConfigs,
		indexSavedConfigsCreatedAt,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
