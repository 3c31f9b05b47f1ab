// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Query Desk API server.

Query Desk tracks clinical-trial data queries: discussion tickets raised
against the question/answer entries of a form. A query starts OPEN, can have
its description edited while open, is resolved, and can be deleted.

# Starting the Server

With defaults (SQLite file querydesk.db on port 8080):

	go run . -seed

Against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

All settings have flags with environment fallbacks; a .env file in the
working directory is loaded first:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CORS_ORIGIN (-cors-origin): browser origin allowed to call the API
  - LOG_LEVEL (-log-level): logrus level (default: info)
  - REDACT_FIELDS (-redact): JSON keys removed from /form-data replies
  - SEED (-seed): insert the sample form when the table is empty

# Architecture

  - handlers: HTTP request handlers (form data, queries)
  - router: chi routes and middleware
  - middleware: logging, recovery, body validation, reply shaping
  - services: query lifecycle and form-data listing
  - store: SQL repository
  - apierr: domain errors and the JSON error handler
  - models: request/response and domain types
  - db: connections, goose migrations, seed data
  - cliparse: configuration parsing
  - logging: logrus setup
  - client, view, cmd/queryctl: Go client and terminal UI

See package documentation for each component.
*/
package main
