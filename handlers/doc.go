// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voteapp API.

# Handler Types

Each handler is a struct with ledger and config dependencies:

  - VoteHandler: Ballot submission
  - StatsHandler: Map totals and the recent vote feed
  - BroadcastHandler: Broadcast messages and the admin switch

Handlers are created via constructor functions that accept *ledger.Ledger
and Config:

	voteHandler := handlers.NewVoteHandler(lg, cfg)

# Voting

	GET  /api/stats → GetStats (rolls the day over first)
	GET  /api/feed  → GetFeed (newest 20 votes)
	POST /api/vote  → CastVote

One vote per client address per calendar day. Repeat attempts get 429.

# Broadcasts

	GET  /api/danmaku → ListBroadcasts ([] while disabled)
	POST /api/danmaku → PostBroadcast (5 second cooldown per address)

Admin operations require the X-Admin-Key header:

	GET /api/admin/danmaku → GetEnabled
	PUT /api/admin/danmaku → SetEnabled

# Errors

Every error body is {"success": false, "message": ...}. Ledger errors are
mapped by category: validation 400, rate limited 429, forbidden 403, and
anything else 500 with a generic message.
*/
package handlers
