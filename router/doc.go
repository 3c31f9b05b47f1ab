// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Query Desk API.

# Route Registration

NewRouter creates a configured chi router with all endpoints:

	mux := router.NewRouter(db, cfg, logger, apierr.NewJSONErrorHandler(logger))

The error handler is the only component that formats failed responses. It
also answers unknown routes and recovered panics.

# Endpoints

	GET    /health       - Liveness ("OK")
	GET    /form-data    - Form entries with their queries
	POST   /queries      - Create query (validated body)
	PATCH  /queries/{id} - Resolve query
	PUT    /queries/{id} - Edit description (validated body)
	DELETE /queries/{id} - Delete query

# Middleware

In order: chi RequestID and RealIP, request logging, panic recovery, and
CORS restricted to cfg.CORSOrigin.

# Handler Initialization

	st := store.New(db)
	formDataHandler := handlers.NewFormDataHandler(services.NewFormDataService(st, logger), shaper)
	queryHandler := handlers.NewQueryHandler(services.NewQueryService(st, logger))

The reply shaper is built from cfg.RedactFields.
*/
package router
