// Package sqlite provides local persistence for the storefront engine.
// It backs two concerns: the key-value slot the cart is serialized into
// (the localStorage equivalent) and the offline asset cache.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go driver, no CGO
)

// DB wraps the SQLite connection.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the storefront database under dir and applies
// migrations.
func Open(dir string) (*DB, error) {
	path := filepath.Join(dir, "khayr.db")
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn from the stdlib pool.
	conn.SetMaxOpenConns(1)

	d := &DB{db: conn}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error { return d.db.Close() }

// migrate applies the schema. Each string is a single SQL statement
// (SQLite executes one at a time).
func (d *DB) migrate() error {
	stmts := []string{
		// Key-value slots (cart persistence)
		`CREATE TABLE IF NOT EXISTS kv_slots (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Offline asset cache (service-worker equivalent)
		`CREATE TABLE IF NOT EXISTS offline_assets (
			url          TEXT NOT NULL,
			cache_name   TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT '',
			body         BLOB NOT NULL,
			stored_at    TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (url, cache_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_offline_cache ON offline_assets(cache_name)`,
	}
	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
