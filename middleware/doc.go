// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Use(middleware.RequestLogger(logger))

Logs method, path, status, bytes, duration_ms and the chi request id once
the handler returns. 5xx responses are logged at warn level.

# Panic Recovery

	r.Use(middleware.Recoverer(errorHandler, logger))

A panic is logged with its stack and handed to the apierr.ErrorHandler,
which answers 500 {message: "unexpected error"}.

# Body Validation

	v := middleware.NewValidator()
	r.With(middleware.ValidateBody[models.CreateQueryRequest](v)).Post("/queries", h)

The body must be a JSON object matching the validate tags of T. Rejected
requests never reach the handler and are answered with:

	400 {"statusCode": 400, "error": "Bad Request", "message": "body must have required property 'title'"}

Handlers read the decoded value with middleware.Body[T](r).

# Reply Shaping

ReplyShaper rewrites a payload before serialization. PassThrough returns it
unchanged; FieldRedactor strips configured JSON keys at any depth.

# JSON Helpers

	middleware.JSON(w, r, http.StatusCreated, query)
	middleware.NoContent(w, r)
*/
package middleware
