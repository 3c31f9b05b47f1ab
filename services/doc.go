// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package services implements the form-data listing and the query lifecycle
on top of a store.

Every failure is returned as an *apierr.Error with status 400 and a fixed
message per operation:

	List              → "failed to fetch form data"
	Create            → "failed to create query"
	Resolve           → "failed to resolve query"
	UpdateDescription → "failed to update query"
	Delete            → "failed to delete query"

The cause (missing row, foreign key violation, database down) is logged and
never returned to the caller.
*/
package services
