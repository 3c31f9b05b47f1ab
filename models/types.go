// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// QueryStatus is the lifecycle state of a query
type QueryStatus string

// Query status constants
const (
	StatusOpen     QueryStatus = "OPEN"
	StatusResolved QueryStatus = "RESOLVED"
)

// Valid reports whether s is a known status
func (s QueryStatus) Valid() bool {
	return s == StatusOpen || s == StatusResolved
}

// Request types

type CreateQueryRequest struct {
	Title       string  `json:"title" validate:"required"`
	FormDataID  string  `json:"formDataId" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type UpdateQueryRequest struct {
	Description *string `json:"description" validate:"required"`
}

// Response types

type FormDataList struct {
	Total    int        `json:"total"`
	FormData []FormData `json:"formData"`
}

// Domain types

type FormData struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Queries  []Query `json:"queries"`
}

type Query struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Status      QueryStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	FormDataID  string      `json:"formDataId"`
	CreatedBy   *string     `json:"createdBy,omitempty"`
}

// Resolved reports whether the query can no longer be edited
func (q Query) Resolved() bool {
	return q.Status == StatusResolved
}

// Error responses

type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ValidationErrorResponse is written when a request fails shape validation,
// before any handler runs
type ValidationErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}
