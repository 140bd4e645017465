// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zr6b/voteapp/calendar"
	"github.com/zr6b/voteapp/models"
)

// LastVoteKey names the persisted last-vote timestamp.
const LastVoteKey = "taiwanVoteAppLastVote"

// ErrVotedToday is returned by Gate.Vote without contacting the server.
var ErrVotedToday = errors.New("already voted today")

// Store persists string values by key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps values in one JSON object on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

// read treats a missing or unreadable file as empty.
func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(b, &values); err != nil {
		slog.Warn("discarding unreadable client state", "path", s.path, "error", err)
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}

// Gate remembers the last accepted vote so the client can refuse a second
// vote on the same local calendar day before asking the server.
type Gate struct {
	store Store
	loc   *time.Location
}

// NewGate uses loc for calendar days; nil means the machine's local zone.
func NewGate(store Store, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.Local
	}
	return &Gate{store: store, loc: loc}
}

// LastVote returns the stored timestamp. A corrupt value is cleared and
// reported as absent.
func (g *Gate) LastVote() (time.Time, bool) {
	raw, ok, err := g.store.Get(LastVoteKey)
	if err != nil {
		slog.Warn("failed to read last vote", "error", err)
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		slog.Warn("clearing corrupt last vote", "value", raw)
		if err := g.store.Delete(LastVoteKey); err != nil {
			slog.Warn("failed to clear last vote", "error", err)
		}
		return time.Time{}, false
	}
	return t, true
}

// Eligible reports whether no vote has been recorded on now's local date.
func (g *Gate) Eligible(now time.Time) bool {
	last, ok := g.LastVote()
	if !ok {
		return true
	}
	return !calendar.SameDay(last, now, g.loc)
}

// Record stores now as the last vote.
func (g *Gate) Record(now time.Time) error {
	return g.store.Set(LastVoteKey, now.Format(time.RFC3339Nano))
}

// Vote submits req through c unless the gate is closed. Both an accepted
// vote and a server-side 429 close the gate for the day; transport errors
// leave it untouched.
func (g *Gate) Vote(ctx context.Context, c *Client, req models.VoteRequest, now time.Time) (models.ActionResponse, error) {
	if !g.Eligible(now) {
		return models.ActionResponse{}, ErrVotedToday
	}

	resp, err := c.Vote(ctx, req)

	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
	default:
		return resp, err
	}

	if rerr := g.Record(now); rerr != nil {
		slog.Warn("failed to persist last vote", "error", rerr)
	}
	return resp, err
}
