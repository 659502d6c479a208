// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"backchannel/db"
	"backchannel/ident"
	"backchannel/localmem"
	"backchannel/models"
)

// SetupTestDB creates a fresh SQLite database in a test temp dir with
// the full schema. A single connection keeps writers serialized at the
// driver; version-conflict retries still happen above it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backchannel-test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// OpenTestMemory opens a throwaway local interaction store.
func OpenTestMemory(t *testing.T) *localmem.Store {
	t.Helper()

	mem, err := localmem.Open(filepath.Join(t.TempDir(), "memory"))
	if err != nil {
		t.Fatalf("Failed to open local memory: %v", err)
	}
	t.Cleanup(func() { mem.Close() })
	return mem
}

// CreateTestGroup creates a group row and returns its ID
func CreateTestGroup(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	groupID, err := ident.NewDocumentID()
	if err != nil {
		t.Fatalf("Failed to generate group id: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO groups (id, name, created_date)
		VALUES ($1, $2, $3)
	`, groupID, name, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}

	return groupID
}

// AddTestQuestion inserts a question asked at the given time and
// returns its ID
func AddTestQuestion(t *testing.T, conn *sql.DB, groupID, text string, askedAt time.Time) string {
	t.Helper()

	questionID, err := ident.NewDocumentID()
	if err != nil {
		t.Fatalf("Failed to generate question id: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO question (id, group_id, text, upvotes, flags, responses, datetime, version)
		VALUES ($1, $2, $3, 0, 0, '[]', $4, 0)
	`, questionID, groupID, text, askedAt.UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// SetTestVotes overwrites a question's counters directly
func SetTestVotes(t *testing.T, conn *sql.DB, questionID string, upvotes, flags int) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE question SET upvotes = $1, flags = $2 WHERE id = $3
	`, upvotes, flags, questionID)
	if err != nil {
		t.Fatalf("Failed to set test votes: %v", err)
	}
}

// SetTestResponses overwrites a question's embedded response document
func SetTestResponses(t *testing.T, conn *sql.DB, questionID string, responses []models.Response) {
	t.Helper()

	encoded, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("Failed to encode responses: %v", err)
	}

	_, err = conn.Exec(`
		UPDATE question SET responses = $1 WHERE id = $2
	`, string(encoded), questionID)
	if err != nil {
		t.Fatalf("Failed to set test responses: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
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
