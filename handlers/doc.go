// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Query Desk API.

# Handler Types

Each handler is a struct holding the service it calls:

  - FormDataHandler: the form-data listing, passed through a ReplyShaper
  - QueryHandler: query create, resolve, description edit and delete

Handler methods have the HandlerFunc signature. They write only success
responses and return every failure; Wrap sends returned errors to the
apierr.ErrorHandler given at router construction:

	mux.Get("/form-data", handlers.Wrap(errHandler, formDataHandler.List))

# Query Lifecycle

	POST   /queries      → Create (201, status OPEN)
	PATCH  /queries/{id} → Resolve (200, status RESOLVED, idempotent)
	PUT    /queries/{id} → UpdateDescription (200, OPEN queries only)
	DELETE /queries/{id} → Delete (204, empty body)

Request bodies are decoded and validated by middleware.ValidateBody before
the handler runs; handlers read them with middleware.Body.

# Error Responses

Service failures arrive as *apierr.Error and are written as:

	{"message": "failed to resolve query", "statusCode": 400}
*/
package handlers
