// Package sqlite stores the catalogue in a single embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS musician (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		url        TEXT NOT NULL DEFAULT '',
		wiki       TEXT NOT NULL DEFAULT '',
		biography  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS album (
		id             TEXT PRIMARY KEY,
		release_year   INTEGER NOT NULL,
		record_number  TEXT NOT NULL,
		album_name     TEXT NOT NULL,
		url            TEXT NOT NULL DEFAULT '',
		style          TEXT NOT NULL DEFAULT '',
		release_format TEXT NOT NULL DEFAULT '',
		tracks         TEXT NOT NULL DEFAULT '[]',
		created_at     TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (release_year, record_number, album_name)
	)`,
	`CREATE TABLE IF NOT EXISTS album_musician (
		album_id    TEXT NOT NULL REFERENCES album(id) ON DELETE CASCADE,
		musician_id TEXT NOT NULL REFERENCES musician(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		PRIMARY KEY (album_id, musician_id)
	)`,
	`CREATE TABLE IF NOT EXISTS instrument (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS musician_instrument (
		id          TEXT PRIMARY KEY,
		musician_id TEXT NOT NULL REFERENCES musician(id) ON DELETE CASCADE,
		signature   TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS musician_instrument_item (
		musician_instrument_id TEXT NOT NULL REFERENCES musician_instrument(id) ON DELETE CASCADE,
		instrument_id          TEXT NOT NULL REFERENCES instrument(id) ON DELETE CASCADE,
		PRIMARY KEY (musician_instrument_id, instrument_id)
	)`,
	`CREATE TABLE IF NOT EXISTS album_musician_instrument (
		album_id               TEXT NOT NULL REFERENCES album(id) ON DELETE CASCADE,
		musician_instrument_id TEXT NOT NULL REFERENCES musician_instrument(id) ON DELETE CASCADE,
		PRIMARY KEY (album_id, musician_instrument_id)
	)`,
}

// Open opens (creating if needed) the catalogue database at path and applies
// the schema. Pass MemoryPath for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != MemoryPath {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalogue database: %w", err)
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// only lives as long as its connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
