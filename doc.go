// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pint Index API server.

Pint Index crowdsources pint prices: anyone can register pubs and drinks and
report what a pint costs, and the API turns the reports into a market view
(cheapest pint, average price index, popularity, price distribution,
cheapest pubs, rare drinks, budget plans and drink comparisons).

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	DATABASE_URL=pints.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Storage:

  - DATABASE_TYPE (-t): sqlite (default), postgres, firestore or memory
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - FIRESTORE_PROJECT_ID (--firestore-project): Firestore project

Behaviour:

  - PORT (-p): Server port (default: 3318)
  - PRICE_MODEL (--price-model): active (default) or ledger
  - CURRENCY_SYMBOL (--currency): Symbol for rendered prices (default: £)
  - REQUEST_TIMEOUT (--timeout): Per-request storage deadline (default: 10s)
  - ADMIN_KEY_SALT (--admin-salt): Secret for the admin key HMAC; admin
    routes are disabled without it

Observability:

  - LOG_LEVEL (--log-level), LOG_FORMAT (--log-format): slog level and
    text or json output
  - TRACE_STDOUT (--trace): Export OpenTelemetry spans to stdout

Run with --print-admin-key to print the admin key for the configured salt.

# Architecture

  - handlers: HTTP request handlers (pubs, drinks, prices, stats, dashboard, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, timeouts, validation, JSON helpers
  - stats: Aggregate computations over a snapshot
  - render: Markdown and HTML dashboard rendering
  - store: Storage contract with memory, SQL and Firestore backends
  - db: Connection and schema creation for SQLite and PostgreSQL
  - models: Request, response and domain types
  - auth: Admin key generation and validation
  - telemetry: OpenTelemetry setup and HTTP instrumentation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
