// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateQueryRequest: title, formDataId, description
  - UpdateQueryRequest: description

Both carry validate tags checked by middleware.ValidateBody before a
handler runs.

# Response Types

Types for JSON responses:

  - FormDataList: total, formData
  - ErrorResponse: message, statusCode
  - ValidationErrorResponse: statusCode, error, message

# Domain Types

  - FormData: a question/answer pair, parent of queries
  - Query: a discussion ticket raised against a form entry

# Constants

Query status values:

	StatusOpen     = "OPEN"
	StatusResolved = "RESOLVED"

The only transition is OPEN → RESOLVED.
*/
package models
