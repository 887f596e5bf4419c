// Package store provides the durable key-value persistence behind the
// ledger: a single-table SQLite database in the data directory. Reads
// and writes are best-effort — a missing or unreadable key yields the
// caller's fallback, and write failures are swallowed, because nothing
// in the application can recover from storage trouble anyway.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB is a key-value store over a SQLite file. It satisfies ledger.KV.
type DB struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time avoids "database is locked" on overlapping
	// statements; a single-user app needs nothing more.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Get returns the value for key, or fallback when the key is missing
// or the read fails.
func (d *DB) Get(key, fallback string) string {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return fallback
	}
	return value
}

// Put stores value under key, replacing any previous value. Failures
// are swallowed.
func (d *DB) Put(key, value string) {
	_, _ = d.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}
