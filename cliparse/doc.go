// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv fills unset variables from a .env file, then ParseFlags returns a
validated Config:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p                  PORT                  Server port (default 3318)
	-d                  DATABASE_URL          Postgres URL or SQLite file
	-t                  DATABASE_TYPE         sqlite, postgres, firestore, memory (default sqlite)
	-firestore-project  FIRESTORE_PROJECT_ID  Firestore project
	-admin-salt         ADMIN_KEY_SALT        Admin key salt; admin routes are off without it
	-price-model        PRICE_MODEL           active or ledger (default active)
	-currency           CURRENCY_SYMBOL       Rendered currency symbol (default £)
	-timeout            REQUEST_TIMEOUT       Per-request storage timeout (default 10s)
	-log-level          LOG_LEVEL             debug, info, warn, error
	-log-format         LOG_FORMAT            text or json
	-trace              TRACE_STDOUT          Export spans to stdout
	-print-admin-key                          Print the admin key and exit

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when:

  - the database URL is missing for sqlite or postgres
  - the Firestore project is missing for firestore
  - the database type, price model, log level or log format is unknown
  - the port or request timeout is out of range
*/
package cliparse
