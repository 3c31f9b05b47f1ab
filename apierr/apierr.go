// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apierr holds the domain error type returned by services and the
// handler that turns any error into the JSON error envelope.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/danielhkuo/querydesk/models"
)

// Status codes recognised by the error handler
const (
	BadRequest   = http.StatusBadRequest
	Unauthorized = http.StatusUnauthorized
	Forbidden    = http.StatusForbidden
	NotFound     = http.StatusNotFound
	Unexpected   = http.StatusInternalServerError
)

// UnexpectedMessage is sent for errors that carry no status code
const UnexpectedMessage = "unexpected error"

// Error is a failure with an explicit HTTP status
type Error struct {
	Message    string
	StatusCode int
}

func New(message string, statusCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode}
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the status carried by err, or Unexpected
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.StatusCode
	}
	return Unexpected
}

// ErrorHandler writes the response for an error returned by a handler
type ErrorHandler interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

// JSONErrorHandler writes {message, statusCode}. It is the only place status
// codes for failed requests are chosen.
type JSONErrorHandler struct {
	Logger logrus.FieldLogger
}

func NewJSONErrorHandler(logger logrus.FieldLogger) *JSONErrorHandler {
	return &JSONErrorHandler{Logger: logger}
}

func (h *JSONErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	body := models.ErrorResponse{
		Message:    UnexpectedMessage,
		StatusCode: Unexpected,
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		body.Message = apiErr.Message
		body.StatusCode = apiErr.StatusCode
	} else if h.Logger != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("unhandled error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.StatusCode)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil && h.Logger != nil {
		h.Logger.WithError(encErr).Error("failed to encode error response")
	}
}
