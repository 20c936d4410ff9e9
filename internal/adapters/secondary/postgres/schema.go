package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS musician (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		url        TEXT NOT NULL DEFAULT '',
		wiki       TEXT NOT NULL DEFAULT '',
		biography  TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS album (
		id             UUID PRIMARY KEY,
		release_year   INT  NOT NULL,
		record_number  TEXT NOT NULL,
		album_name     TEXT NOT NULL,
		url            TEXT NOT NULL DEFAULT '',
		style          TEXT NOT NULL DEFAULT '',
		release_format TEXT NOT NULL DEFAULT '',
		tracks         TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (release_year, record_number, album_name)
	)`,
	`CREATE TABLE IF NOT EXISTS album_musician (
		album_id    UUID NOT NULL REFERENCES album(id) ON DELETE CASCADE,
		musician_id UUID NOT NULL REFERENCES musician(id) ON DELETE CASCADE,
		position    INT  NOT NULL,
		PRIMARY KEY (album_id, musician_id)
	)`,
	`CREATE TABLE IF NOT EXISTS instrument (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS musician_instrument (
		id          UUID PRIMARY KEY,
		musician_id UUID NOT NULL REFERENCES musician(id) ON DELETE CASCADE,
		signature   TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS musician_instrument_item (
		musician_instrument_id UUID NOT NULL REFERENCES musician_instrument(id) ON DELETE CASCADE,
		instrument_id          UUID NOT NULL REFERENCES instrument(id) ON DELETE CASCADE,
		PRIMARY KEY (musician_instrument_id, instrument_id)
	)`,
	`CREATE TABLE IF NOT EXISTS album_musician_instrument (
		album_id               UUID NOT NULL REFERENCES album(id) ON DELETE CASCADE,
		musician_instrument_id UUID NOT NULL REFERENCES musician_instrument(id) ON DELETE CASCADE,
		PRIMARY KEY (album_id, musician_instrument_id)
	)`,
}

// EnsureSchema creates the catalogue tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
