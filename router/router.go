// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/handlers"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
)

func NewRouter(lg *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(lg, cfg)
	statsHandler := handlers.NewStatsHandler(lg, cfg)
	broadcastHandler := handlers.NewBroadcastHandler(lg, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Map and feed (public)
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /api/feed", middleware.WithLogging(statsHandler.GetFeed))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(voteHandler.CastVote))

	// Broadcast messages (public)
	mux.HandleFunc("GET /api/danmaku", middleware.WithLogging(broadcastHandler.ListBroadcasts))
	mux.HandleFunc("POST /api/danmaku", middleware.WithLogging(broadcastHandler.PostBroadcast))

	// Broadcast switch (admin)
	mux.HandleFunc("GET /api/admin/danmaku", middleware.WithLogging(broadcastHandler.GetEnabled))
	mux.HandleFunc("PUT /api/admin/danmaku", middleware.WithLogging(broadcastHandler.SetEnabled))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteapp API v1"))
	})

	return mux
}
