// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
)

type StatsHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewStatsHandler(lg *ledger.Ledger, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{ledger: lg, cfg: cfg}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledger.Stats(r.Context())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgStatsFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// GetFeed handles GET /api/feed
func (h *StatsHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.ledger.Feed(r.Context())
	if err != nil {
		slog.Error("failed to query feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgFeedFailed)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, feed)
}
