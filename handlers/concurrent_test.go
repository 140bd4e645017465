// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zr6b/voteapp/models"
	"github.com/zr6b/voteapp/testutil"
)

// TestConcurrentVotesDistinctOrigins verifies that simultaneous votes from
// different clients are all counted exactly once
func TestConcurrentVotesDistinctOrigins(t *testing.T) {
	env := newTestEnv(t)
	handler := NewVoteHandler(env.ledger, env.cfg)

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.CastVote(w, voteRequest(models.VoteRequest{
				Region:  "臺南市",
				Surname: "黃",
				Gender:  models.GenderMr,
			}, fmt.Sprintf("198.51.100.%d:4000", voterIdx+1)))

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	stats, err := env.ledger.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.MapData["臺南市"] != int64(numVoters) {
		t.Errorf("Expected 臺南市=%d, got %d", numVoters, stats.MapData["臺南市"])
	}
	if stats.TodayVotes != int64(numVoters) {
		t.Errorf("Expected today=%d, got %d", numVoters, stats.TodayVotes)
	}
	if n := testutil.CountRows(t, env.db, "vote_log"); n != numVoters {
		t.Errorf("Expected %d logged votes, got %d", numVoters, n)
	}
}

// TestConcurrentVotesSameOrigin verifies that a burst of votes from one
// client yields exactly one accepted vote
func TestConcurrentVotesSameOrigin(t *testing.T) {
	env := newTestEnv(t)
	handler := NewVoteHandler(env.ledger, env.cfg)

	attempts := 10
	var successCount, limitedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.CastVote(w, voteRequest(models.VoteRequest{
				Region:  "臺南市",
				Surname: "黃",
				Gender:  models.GenderMr,
			}, "198.51.100.7:4000"))

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusTooManyRequests:
				limitedCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if int(limitedCount.Load()) != attempts-1 {
		t.Errorf("Expected %d rate-limited votes, got %d", attempts-1, limitedCount.Load())
	}
	if n := testutil.CountRows(t, env.db, "vote_log"); n != 1 {
		t.Errorf("Expected 1 logged vote, got %d", n)
	}
}

// TestConcurrentBroadcastsSameOrigin verifies the cooldown holds under
// simultaneous posts
func TestConcurrentBroadcastsSameOrigin(t *testing.T) {
	env := newTestEnv(t)
	handler := NewBroadcastHandler(env.ledger, env.cfg)

	attempts := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := postBroadcast(handler, fmt.Sprintf("msg %d", idx), "198.51.100.7:4000")
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted broadcast, got %d", successCount.Load())
	}
	if n := testutil.CountRows(t, env.db, "broadcast_log"); n != 1 {
		t.Errorf("Expected 1 broadcast row, got %d", n)
	}
}
