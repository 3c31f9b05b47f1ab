// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client talks to the Query Desk API and caches the form-data
// listing for the terminal UI.
//
// A failed request returns *APIError carrying the server's message. The
// listing is fetched once by FormDataResource.Load and only refetched by
// Revalidate, which callers invoke after every successful mutation.
package client
