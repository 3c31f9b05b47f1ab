// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/querydesk/models"
)

const maxBodyBytes = 1 << 20

// ValidationError is a request that failed shape validation. It never
// reaches a handler and is not a domain error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// DecodeBody reads a JSON object from r into dst and checks its validate
// tags. Failures are returned as *ValidationError.
func (v *Validator) DecodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return &ValidationError{Message: "body could not be read"}
	}

	var raw map[string]json.RawMessage
	if err := render.DecodeJSON(bytes.NewReader(body), &raw); err != nil || raw == nil {
		return &ValidationError{Message: "body must be object"}
	}

	if err := render.DecodeJSON(bytes.NewReader(body), dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{
				Message: fmt.Sprintf("body/%s must be %s", typeErr.Field, jsonKind(typeErr.Type)),
			}
		}
		return &ValidationError{Message: "body must be object"}
	}

	err = v.validate.Struct(dst)
	if err == nil {
		return rejectNulls(raw, dst)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	return &ValidationError{Message: fieldMessage(fieldErrs[0], raw)}
}

func fieldMessage(fe validator.FieldError, raw map[string]json.RawMessage) string {
	name := fe.Field()
	value, present := raw[name]
	if !present {
		return fmt.Sprintf("body must have required property '%s'", name)
	}

	if fe.Tag() == "required" {
		if string(bytes.TrimSpace(value)) == "null" {
			return fmt.Sprintf("body/%s must be %s", name, jsonKind(fe.Type()))
		}
		return fmt.Sprintf("body/%s must NOT have fewer than 1 characters", name)
	}
	return fmt.Sprintf("body/%s must pass %s", name, fe.Tag())
}

// rejectNulls refuses an explicit null for any field dst declares, including
// optional ones
func rejectNulls(raw map[string]json.RawMessage, dst any) error {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if value, ok := raw[name]; ok && string(bytes.TrimSpace(value)) == "null" {
			return &ValidationError{Message: fmt.Sprintf("body/%s must be %s", name, jsonKind(f.Type))}
		}
	}
	return nil
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// WriteValidationError answers a rejected request with the
// {statusCode, error, message} shape
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	JSON(w, r, http.StatusBadRequest, models.ValidationErrorResponse{
		StatusCode: http.StatusBadRequest,
		Error:      http.StatusText(http.StatusBadRequest),
		Message:    err.Error(),
	})
}

type bodyKey struct{}

// ValidateBody decodes and validates a T before next runs. The decoded value
// is available to next through Body.
func ValidateBody[T any](v *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body T
			if err := v.DecodeBody(r, &body); err != nil {
				WriteValidationError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), bodyKey{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Body returns the value stored by ValidateBody
func Body[T any](r *http.Request) (T, bool) {
	body, ok := r.Context().Value(bodyKey{}).(T)
	return body, ok
}
