// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles SQL connections and schema creation.

# Opening a Database

Open connects, pings and creates the schema in one step:

	conn, err := db.Open(ctx, db.DialectSQLite, "file:pints.db")
	if err != nil {
		log.Fatal(err)
	}

Two dialects are supported:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, single connection)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - pub: name, optional address
  - drink: name, category
  - price_entry: pub_id, drink_id, price, optional active flag

Price entries carry no foreign keys. A price for a deleted pub or drink
stays in place and is reported under a placeholder name.

# Indexes

  - price_entry.(pub_id, drink_id)
  - price_entry.(pub_id, drink_id) WHERE active (unique)

The partial unique index guarantees at most one active price per pair.
*/
package db
