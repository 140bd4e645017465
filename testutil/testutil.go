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
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zr6b/voteapp/calendar"
	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/db"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/ratelimit"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes
	// writers the way a single sqlite file would.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.DialectSQLite,
		AdminKeySalt: "test-admin-salt",
		TimeZone:     calendar.DefaultZone,
		MaxDBConns:   1,
		Tunables:     cliparse.DefaultTunables(),
	}
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Taipei loads the reference zone or fails the test.
func Taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := calendar.LoadZone(calendar.DefaultZone)
	if err != nil {
		t.Fatalf("Failed to load zone: %v", err)
	}
	return loc
}

// NewTestLedger builds a seeded ledger over conn using the default tunables,
// the Taipei calendar and clock as its time source.
func NewTestLedger(t *testing.T, conn *sql.DB, clock *Clock) *ledger.Ledger {
	t.Helper()

	loc := Taipei(t)
	tun := cliparse.DefaultTunables()

	votes := ratelimit.NewVoteLimiter(loc, nil)
	messages := ratelimit.NewMessageLimiter(tun.MessageCooldown.Duration, tun.MessageSweepAge.Duration, nil)

	opts := ledger.OptionsFromTunables(tun, loc)
	opts.Now = clock.Now

	lg := ledger.New(conn, votes, messages, opts)
	if err := lg.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed ledger: %v", err)
	}
	return lg
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
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
