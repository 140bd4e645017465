// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialects understood by Open and CreateSchema
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// MetaID is the primary key of the singleton rollover_meta row.
const MetaID = "voteMeta"

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Seed inserts the meta row and a zeroed tally row for every region.
// Existing rows are left alone, so seeding on every start is safe.
func Seed(ctx context.Context, db *sql.DB, regions []string, today string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rollover_meta (id, last_reset_date, broadcast_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, MetaID, today, true)
	if err != nil {
		return fmt.Errorf("seed meta: %w", err)
	}

	for _, region := range regions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO region_tally (region, total_votes, today_votes)
			VALUES ($1, 0, 0)
			ON CONFLICT (region) DO NOTHING
		`, region)
		if err != nil {
			return fmt.Errorf("seed region %s: %w", region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

const postgresSchema = `
-- Per-region counters
CREATE TABLE IF NOT EXISTS region_tally (
    region TEXT PRIMARY KEY,
    total_votes BIGINT NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    today_votes BIGINT NOT NULL DEFAULT 0 CHECK (today_votes >= 0),
    CHECK (today_votes <= total_votes)
);

-- Accepted votes
CREATE TABLE IF NOT EXISTS vote_log (
    id BIGSERIAL PRIMARY KEY,
    surname TEXT NOT NULL,
    gender TEXT NOT NULL,
    region TEXT NOT NULL REFERENCES region_tally(region),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Accepted broadcast messages
CREATE TABLE IF NOT EXISTS broadcast_log (
    id BIGSERIAL PRIMARY KEY,
    message TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_broadcast_log_created_at ON broadcast_log(created_at);

-- Singleton meta row
CREATE TABLE IF NOT EXISTS rollover_meta (
    id TEXT PRIMARY KEY,
    last_reset_date TEXT NOT NULL,
    broadcast_enabled BOOLEAN NOT NULL DEFAULT TRUE
);
`

const sqliteSchema = `
-- Per-region counters
CREATE TABLE IF NOT EXISTS region_tally (
    region TEXT PRIMARY KEY,
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    today_votes INTEGER NOT NULL DEFAULT 0 CHECK (today_votes >= 0),
    CHECK (today_votes <= total_votes)
);

-- Accepted votes
CREATE TABLE IF NOT EXISTS vote_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    surname TEXT NOT NULL,
    gender TEXT NOT NULL,
    region TEXT NOT NULL REFERENCES region_tally(region),
    created_at TIMESTAMP NOT NULL
);

-- Accepted broadcast messages
CREATE TABLE IF NOT EXISTS broadcast_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_broadcast_log_created_at ON broadcast_log(created_at);

-- Singleton meta row
CREATE TABLE IF NOT EXISTS rollover_meta (
    id TEXT PRIMARY KEY,
    last_reset_date TEXT NOT NULL,
    broadcast_enabled BOOLEAN NOT NULL DEFAULT 1
);
`
