// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/santa-draw/auth"
	"github.com/danielhkuo/santa-draw/cliparse"
	"github.com/danielhkuo/santa-draw/db"
	"github.com/danielhkuo/santa-draw/models"
	_ "modernc.org/sqlite"
)

// TestDBURL opens a private in-memory sqlite database with foreign keys on
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each sqlite connection gets its own :memory: database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		EventSlugSalt: "test-slug-salt",
		BaseURL:       "http://santa.test",
		MaxAttempts:   2000,
		MailFrom:      "santa@santa.test",
	}
}

// CreateTestEvent creates an event in the database and returns its ID, admin key and share slug.
// status should be "draft" or "drawn"
func CreateTestEvent(t *testing.T, db *sql.DB, cfg cliparse.Config, status string) (eventID, adminKey, shareSlug string) {
	t.Helper()

	eventID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(eventID, cfg.AdminKeySalt)
	shareSlug = auth.GenerateShareSlug(eventID, cfg.EventSlugSalt)

	var drawnAt *time.Time
	if status == models.StatusDrawn {
		now := time.Now().UTC()
		drawnAt = &now
	}

	_, err := db.Exec(`
		INSERT INTO event (id, name, organizer_name, organizer_email, event_date, event_time,
			location, budget, status, share_slug, drawn_at, created_at)
		VALUES ($1, 'Test Exchange', 'Organizer', 'organizer@example.com', '2025-12-20', '18:30',
			'The Office', '$25', $2, $3, $4, $5)
	`, eventID, status, shareSlug, drawnAt, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID, adminKey, shareSlug
}

// AddTestParticipant adds a participant at the given entry position and
// returns its ID and reveal token
func AddTestParticipant(t *testing.T, db *sql.DB, eventID string, ordinal int, name string) (participantID, token string) {
	t.Helper()

	participantID, _ = auth.NewRowID()
	token, _ = auth.GenerateParticipantToken()
	email := fmt.Sprintf("participant%d@example.com", ordinal)

	_, err := db.Exec(`
		INSERT INTO participant (id, event_id, ordinal, name, email, token)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, participantID, eventID, ordinal, name, email, token)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID, token
}

// AddTestExclusion forbids giverID from drawing excludedID
func AddTestExclusion(t *testing.T, db *sql.DB, eventID, giverID, excludedID string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO exclusion (event_id, giver_id, excluded_id)
		VALUES ($1, $2, $3)
	`, eventID, giverID, excludedID)
	if err != nil {
		t.Fatalf("Failed to create test exclusion: %v", err)
	}
}

// AddTestAssignment records that giverID draws receiverID
func AddTestAssignment(t *testing.T, db *sql.DB, eventID, giverID, receiverID string) {
	t.Helper()

	rowID, _ := auth.NewRowID()
	_, err := db.Exec(`
		INSERT INTO assignment (id, event_id, giver_id, receiver_id)
		VALUES ($1, $2, $3, $4)
	`, rowID, eventID, giverID, receiverID)
	if err != nil {
		t.Fatalf("Failed to create test assignment: %v", err)
	}
}

// EventRequest builds a valid create request for the named participants.
// Emails are derived from the names.
func EventRequest(names ...string) models.CreateEventRequest {
	req := models.CreateEventRequest{
		EventDetails: models.EventDetails{
			Name:           "Office Exchange",
			OrganizerName:  "Organizer",
			OrganizerEmail: "organizer@example.com",
			EventDate:      "2025-12-20",
			EventTime:      "18:30",
			Location:       "The Office",
			Budget:         "$25",
		},
	}
	for i, name := range names {
		req.Participants = append(req.Participants, models.ParticipantInput{
			Name:  name,
			Email: fmt.Sprintf("person%d@example.com", i),
		})
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
