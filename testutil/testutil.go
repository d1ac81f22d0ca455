// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mankru71/OpinionHub/auth"
	"github.com/mankru71/OpinionHub/cliparse"
	"github.com/mankru71/OpinionHub/db"
	"github.com/mankru71/OpinionHub/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             8214,
		DatabaseType:     "sqlite",
		DatabaseURL:      "file::memory:",
		TokenSecret:      "test-token-secret",
		VoterHashSalt:    "test-voter-salt",
		ArchiveAfterDays: 30,
	}
}

// PollFixture describes a poll row to seed directly. Zero-value fields
// fall back to an active, public, single-choice poll by "author".
type PollFixture struct {
	Title         string
	PollType      string
	Visibility    string
	CanChangeVote bool
	EndDate       *time.Time
	Status        string
	CompletedAt   *time.Time
	AuthorID      string
}

// CreateTestPoll inserts a poll row and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, f PollFixture) string {
	t.Helper()

	if f.Title == "" {
		f.Title = "Test Poll"
	}
	if f.PollType == "" {
		f.PollType = models.TypeSingleChoice
	}
	if f.Visibility == "" {
		f.Visibility = models.VisibilityPublic
	}
	if f.Status == "" {
		f.Status = models.StatusActive
	}
	if f.AuthorID == "" {
		f.AuthorID = "author"
	}

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, title, poll_type, visibility, can_change_vote, end_date, status, created_at, completed_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, pollID, f.Title, f.PollType, f.Visibility, f.CanChangeVote, f.EndDate, f.Status, time.Now().UTC(), f.CompletedAt, f.AuthorID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string, position int) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll_option (id, poll_id, text, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateLegacyVote seeds a pre-migration vote row: keyed by
// legacy_user_id only, with no account key and no voter hash.
func CreateLegacyVote(t *testing.T, conn *sql.DB, pollID, legacyUserID string, optionIDs ...string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, legacy_user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, pollID, legacyUserID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create legacy vote: %v", err)
	}

	for _, optionID := range optionIDs {
		_, err := conn.Exec(`
			INSERT INTO vote_selection (vote_id, option_id)
			VALUES ($1, $2)
		`, voteID, optionID)
		if err != nil {
			t.Fatalf("Failed to create legacy selection: %v", err)
		}
	}

	return voteID
}

// CountRows counts rows in a table matching a single-column condition
func CountRows(t *testing.T, conn *sql.DB, table, column, value string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+column+` = $1`, value).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// BearerToken issues a token for the test config's secret, returned as
// a ready-to-use Authorization header value.
func BearerToken(t *testing.T, cfg cliparse.Config, accountID, legacyUserID string) string {
	t.Helper()

	token, err := auth.IssueToken(auth.Identity{AccountID: accountID, LegacyUserID: legacyUserID}, cfg.TokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return "Bearer " + token
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
