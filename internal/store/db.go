package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// dsnParams lets the client and hirectl share one cache file: WAL keeps
// readers off the writer and the busy timeout queues concurrent writes.
const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// DB is a profile's local cache (cache.db). It only holds data that can be
// fetched again from the dashboard.
type DB struct {
	*sql.DB
	path   string
	schema Schema
}

// Open opens the cache at path, creating the file if needed, and migrates
// it to the schema embedded in this build.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	schema, err := migrateUp(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("cache %s: %w", path, err)
	}
	return &DB{DB: conn, path: path, schema: schema}, nil
}

// Path returns the cache file.
func (db *DB) Path() string {
	return db.path
}

// Schema reports the schema state found and left by Open.
func (db *DB) Schema() Schema {
	return db.schema
}
