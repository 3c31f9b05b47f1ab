// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: PostgreSQL connection string or SQLite file (default: querydesk.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - CORSOrigin: the single browser origin allowed to call the API
  - LogLevel: logrus level name (default: info)
  - RedactFields: JSON keys stripped from /form-data replies
  - Seed: insert the sample catalogue when form_data is empty

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-cors-origin  Allowed CORS origin
	-log-level    Log level
	-redact       Redacted reply fields
	-seed         Seed sample data

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CORS_ORIGIN   → -cors-origin
	LOG_LEVEL     → -log-level
	REDACT_FIELDS → -redact
	SEED          → -seed

CLI flags take precedence over environment variables. LoadEnvFiles reads a
.env file into the environment first; variables already set are kept.

# Validation

ParseFlags returns an error when:

  - PORT is not a number or is out of range
  - the database type is not sqlite or postgres
  - postgres is selected without a DATABASE_URL
*/
package cliparse
