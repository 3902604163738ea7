package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and
// ensures all required tables exist. Pass ":memory:" for the default
// session-scoped store where nothing survives the process.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty
	// database, so the pool is pinned to a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			ingested_at DATETIME NOT NULL,
			row_count INTEGER NOT NULL
		)`,

		// Monetary columns hold decimal strings, never floats.
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			row_pos INTEGER NOT NULL,
			entry_date DATETIME,
			account TEXT NOT NULL,
			description TEXT NOT NULL,
			direction TEXT NOT NULL,
			amount TEXT NOT NULL,
			category TEXT NOT NULL,
			claimable INTEGER NOT NULL,
			rationale TEXT NOT NULL,
			gross TEXT NOT NULL,
			gst TEXT NOT NULL,
			net TEXT NOT NULL,
			PRIMARY KEY (batch_id, row_pos)
		)`,

		// User revisions are kept apart from the classifier baseline so
		// the revised ledger can be rebuilt from scratch on every read.
		`CREATE TABLE IF NOT EXISTS revisions (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			row_pos INTEGER NOT NULL,
			claimable INTEGER,
			comment TEXT,
			PRIMARY KEY (batch_id, row_pos)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
