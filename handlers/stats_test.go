// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zr6b/voteapp/models"
	"github.com/zr6b/voteapp/testutil"
)

func getStats(t *testing.T, h *StatsHandler) models.StatsResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.GetStats(w, testutil.MakeRequest("GET", "/api/stats", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)
	return stats
}

func TestGetStats_Empty(t *testing.T) {
	env := newTestEnv(t)
	handler := NewStatsHandler(env.ledger, env.cfg)

	stats := getStats(t, handler)
	if stats.TotalVotes != 0 || stats.TodayVotes != 0 {
		t.Errorf("Expected zero totals, got %d/%d", stats.TotalVotes, stats.TodayVotes)
	}
	if len(stats.MapData) != len(models.DefaultRegions) {
		t.Errorf("Expected %d regions, got %d", len(models.DefaultRegions), len(stats.MapData))
	}
}

func TestGetStats_AfterVotesAndRollover(t *testing.T) {
	env := newTestEnv(t)
	stats := NewStatsHandler(env.ledger, env.cfg)
	votes := NewVoteHandler(env.ledger, env.cfg)

	for i, region := range []string{"臺北市", "高雄市", "高雄市"} {
		w := httptest.NewRecorder()
		votes.CastVote(w, voteRequest(models.VoteRequest{
			Region:  region,
			Surname: "林",
			Gender:  models.GenderMs,
		}, fmt.Sprintf("203.0.113.%d:5000", i+1)))
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	got := getStats(t, stats)
	if got.TotalVotes != 3 || got.TodayVotes != 3 {
		t.Errorf("Expected 3/3, got %d/%d", got.TotalVotes, got.TodayVotes)
	}
	if got.MapData["高雄市"] != 2 {
		t.Errorf("Expected 高雄市=2, got %d", got.MapData["高雄市"])
	}

	env.clock.Advance(24 * time.Hour)

	got = getStats(t, stats)
	if got.TotalVotes != 3 || got.TodayVotes != 0 {
		t.Errorf("Expected 3/0 on the next day, got %d/%d", got.TotalVotes, got.TodayVotes)
	}
}

func TestGetFeed(t *testing.T) {
	env := newTestEnv(t)
	stats := NewStatsHandler(env.ledger, env.cfg)
	votes := NewVoteHandler(env.ledger, env.cfg)

	// Empty feed is an array, not null
	w := httptest.NewRecorder()
	stats.GetFeed(w, testutil.MakeRequest("GET", "/api/feed", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected [], got %s", body)
	}

	for i := 0; i < 22; i++ {
		env.clock.Advance(time.Second)
		w := httptest.NewRecorder()
		votes.CastVote(w, voteRequest(models.VoteRequest{
			Region:  "臺中市",
			Surname: "王",
			Gender:  models.GenderPrivate,
		}, fmt.Sprintf("203.0.113.%d:5000", i+1)))
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	w = httptest.NewRecorder()
	stats.GetFeed(w, testutil.MakeRequest("GET", "/api/feed", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var feed []models.VoteLogEntry
	testutil.AssertJSON(t, w, &feed)
	if len(feed) != 20 {
		t.Fatalf("Expected 20 entries, got %d", len(feed))
	}
	if !feed[0].Timestamp.After(feed[19].Timestamp) {
		t.Error("Expected newest entry first")
	}
	if feed[0].Surname != "王" || feed[0].Gender != models.GenderPrivate || feed[0].Region != "臺中市" {
		t.Errorf("Unexpected entry: %+v", feed[0])
	}
}
