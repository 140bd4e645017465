// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voteapp API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(lg, cfg)

# Endpoints

Health:

	GET /health

Voting (public):

	GET  /api/stats - Per-region totals, grand total, today's total
	GET  /api/feed  - Newest votes
	POST /api/vote  - Cast a vote

Broadcasts (public):

	GET  /api/danmaku - Recent broadcast messages
	POST /api/danmaku - Post a broadcast message

Broadcast switch (admin, requires X-Admin-Key):

	GET /api/admin/danmaku - Read the switch
	PUT /api/admin/danmaku - Turn broadcasting on or off

All /api routes are wrapped in middleware.WithLogging. GET / answers only
the exact root path; other unknown paths get 404.
*/
package router
