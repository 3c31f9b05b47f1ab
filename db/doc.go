// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

SQLite uses the pure-Go modernc.org/sqlite driver with foreign keys enabled
on every connection; PostgreSQL uses lib/pq. All SQL in the repository uses
$N placeholders, which both drivers accept.

# Migrations

Migrate applies the embedded goose migrations in migrations/:

	if err := db.Migrate(ctx, conn, cfg.DatabaseType, logger); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - goose records applied versions.

# Tables

  - form_data: question/answer pairs, seeded out-of-band
  - queries: discussion tickets raised against a form entry

# Relationships

	form_data 1──* queries

queries.form_data_id uses ON DELETE CASCADE.

# Seeding

Seed fills an empty form_data table with SampleFormData. It is only run
when the server is started with -seed or SEED=true.
*/
package db
