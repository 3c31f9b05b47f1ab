// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/querydesk/apierr"
)

// HandlerFunc writes the success response itself and returns any failure
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts fn to net/http, sending returned errors to eh
func Wrap(eh apierr.ErrorHandler, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			eh.Handle(w, r, err)
		}
	}
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
