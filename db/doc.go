// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the durable store and creates its schema.

# Connecting

Open picks the driver from the dialect and bounds the connection pool:

	conn, err := db.Open(ctx, db.DialectSQLite, "file:voteapp.db", 10)

sqlite uses modernc.org/sqlite (pure Go), postgres uses lib/pq. Queries
are written once with $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables for a dialect:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Seed then inserts the meta row and one zeroed row per region, also
idempotently.

# Tables

  - region_tally: total and today counters per region
  - vote_log: append-only accepted votes
  - broadcast_log: append-only accepted broadcast messages
  - rollover_meta: singleton (id 'voteMeta') with last_reset_date and
    broadcast_enabled

# Relationships

	region_tally 1──* vote_log

Tally and log rows are only written together inside one ledger
transaction; CHECK constraints keep today_votes between 0 and total_votes.
*/
package db
