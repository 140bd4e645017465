// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voteapp API server.

voteapp is a map vote: each visitor casts one vote per day for a region,
adding a surname and a title to a public feed, and may post short broadcast
messages that scroll across the map.

# Starting the Server

The server reads .env, then environment variables, then CLI flags:

	DATABASE_URL=file:votes.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3007 -t postgres -d "postgres://..." -admin-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path/DSN or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for the admin key and origin hashes

Optional settings:

  - PORT (-p): Server port (default: 3007)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTE_TIMEZONE (-tz): Zone the daily reset follows (default: Asia/Taipei)
  - TRUST_PROXY (-trust-proxy): Take the client address from proxy headers
  - DB_MAX_CONNS (-max-conns): Connection pool size (default: 10)
  - VOTEAPP_CONFIG (-c): YAML file with regions, limits and windows

Print the broadcast admin key and exit:

	go run . -print-admin-key

# Architecture

  - handlers: HTTP request handlers (votes, stats, broadcasts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - ledger: Tally, logs and the daily rollover
  - ratelimit: Per-origin vote and message limiters
  - db: Connection and schema creation
  - calendar: Reference-zone calendar dates
  - auth: Admin key and origin hashing
  - cliparse: Configuration parsing
  - client, ingest, lanes: Go client and the watcher used by cmd/voteapp-watch

See package documentation for each component.
*/
package main
