// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported SQL dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectPostgres:
		schema = postgresSchema
	case DialectSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Pubs
CREATE TABLE IF NOT EXISTS pub (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Drink definitions
CREATE TABLE IF NOT EXISTS drink (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Price entries (no foreign keys: dangling references are tolerated)
CREATE TABLE IF NOT EXISTS price_entry (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    pub_id TEXT NOT NULL,
    drink_id TEXT NOT NULL,
    price NUMERIC(10, 2) NOT NULL CHECK (price > 0),
    active BOOLEAN,
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_price_entry_pair ON price_entry(pub_id, drink_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_price_entry_active_pair ON price_entry(pub_id, drink_id) WHERE active;
`

const sqliteSchema = `
-- Pubs
CREATE TABLE IF NOT EXISTS pub (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Drink definitions
CREATE TABLE IF NOT EXISTS drink (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Price entries (no foreign keys: dangling references are tolerated)
CREATE TABLE IF NOT EXISTS price_entry (
    id TEXT PRIMARY KEY,
    pub_id TEXT NOT NULL,
    drink_id TEXT NOT NULL,
    price NUMERIC NOT NULL CHECK (price > 0),
    active BOOLEAN,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_entry_pair ON price_entry(pub_id, drink_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_price_entry_active_pair ON price_entry(pub_id, drink_id) WHERE active;
`
