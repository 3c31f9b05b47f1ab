// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/querydesk/cliparse"
	"github.com/danielhkuo/querydesk/db"
	"github.com/danielhkuo/querydesk/logging"
	"github.com/danielhkuo/querydesk/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "querydesk_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(ctx, conn, cliparse.DatabaseSQLite, logging.Discard()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseURL:  "querydesk_test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		CORSOrigin:   cliparse.DefaultCORSOrigin,
		LogLevel:     "error",
	}
}

// CreateTestFormData inserts a form entry and returns its ID
func CreateTestFormData(t *testing.T, conn *sql.DB, question, answer string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO form_data (id, question, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, question, answer, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test form data: %v", err)
	}

	// keep created_at strictly increasing between calls
	time.Sleep(time.Millisecond)
	return id
}

// CreateTestQuery inserts a query for a form entry and returns its ID
func CreateTestQuery(t *testing.T, conn *sql.DB, formDataID, title string, status models.QueryStatus) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO queries (id, title, status, created_at, updated_at, form_data_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, title, string(status), now, now, formDataID)
	if err != nil {
		t.Fatalf("Failed to create test query: %v", err)
	}

	time.Sleep(time.Millisecond)
	return id
}

// QueryStatus reads the status column of a query, or "" if it does not exist
func QueryStatus(t *testing.T, conn *sql.DB, id string) models.QueryStatus {
	t.Helper()

	var status string
	err := conn.QueryRow("SELECT status FROM queries WHERE id = $1", id).Scan(&status)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to query status: %v", err)
	}
	return models.QueryStatus(status)
}

// CountQueries returns the number of rows in queries
func CountQueries(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM queries").Scan(&n); err != nil {
		t.Fatalf("Failed to count queries: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
