// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package view renders the form-data table and drives the query modal for
// the terminal client.
package view
