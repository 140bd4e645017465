// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zr6b/voteapp/client"
	"github.com/zr6b/voteapp/middleware"
	"github.com/zr6b/voteapp/models"
)

func taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)
	return loc
}

// statusServer answers every vote with status and counts calls.
func statusServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		middleware.JSONResponse(w, status, models.ActionResponse{Success: status == http.StatusOK, Message: "x"})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newGate(t *testing.T) (*client.Gate, *client.FileStore) {
	t.Helper()
	store := client.NewFileStore(filepath.Join(t.TempDir(), "state", "client.json"))
	return client.NewGate(store, taipei(t)), store
}

var ballot = models.VoteRequest{Region: "臺北市", Surname: "陳", Gender: models.GenderMr}

func TestGate_EligibleByLocalDate(t *testing.T) {
	gate, _ := newGate(t)
	loc := taipei(t)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, loc)
	assert.True(t, gate.Eligible(now))

	require.NoError(t, gate.Record(now))
	assert.False(t, gate.Eligible(now.Add(14*time.Hour+59*time.Minute)))
	assert.True(t, gate.Eligible(time.Date(2025, 3, 2, 0, 0, 0, 0, loc)))
}

func TestGate_SuccessClosesGate(t *testing.T) {
	srv, calls := statusServer(t, http.StatusOK)
	gate, _ := newGate(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, taipei(t))

	resp, err := gate.Vote(context.Background(), client.New(srv.URL), ballot, now)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, gate.Eligible(now))

	_, err = gate.Vote(context.Background(), client.New(srv.URL), ballot, now.Add(time.Hour))
	assert.ErrorIs(t, err, client.ErrVotedToday)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGate_RateLimitedClosesGate(t *testing.T) {
	srv, _ := statusServer(t, http.StatusTooManyRequests)
	gate, _ := newGate(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, taipei(t))

	_, err := gate.Vote(context.Background(), client.New(srv.URL), ballot, now)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.False(t, gate.Eligible(now))
}

func TestGate_ValidationErrorKeepsGateOpen(t *testing.T) {
	srv, _ := statusServer(t, http.StatusBadRequest)
	gate, _ := newGate(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, taipei(t))

	_, err := gate.Vote(context.Background(), client.New(srv.URL), ballot, now)
	require.Error(t, err)
	assert.True(t, gate.Eligible(now))
}

func TestGate_TransportErrorKeepsGateOpen(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gate, _ := newGate(t)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, taipei(t))

	_, err := gate.Vote(context.Background(), client.New(url), ballot, now)
	require.Error(t, err)
	assert.True(t, gate.Eligible(now))
	_, ok := gate.LastVote()
	assert.False(t, ok)
}

func TestGate_CorruptValueCleared(t *testing.T) {
	gate, store := newGate(t)
	require.NoError(t, store.Set(client.LastVoteKey, "not a time"))

	assert.True(t, gate.Eligible(time.Now()))

	_, ok, err := store.Get(client.LastVoteKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")

	require.NoError(t, client.NewFileStore(path).Set("k", "v"))

	v, ok, err := client.NewFileStore(path).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileStore_UnreadableFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0o600))

	store := client.NewFileStore(path)
	_, ok, err := store.Get(client.LastVoteKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(client.LastVoteKey, "x"))
	v, ok, err := store.Get(client.LastVoteKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}
