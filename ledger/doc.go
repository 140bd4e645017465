// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the tally and broadcast engine behind the HTTP handlers.

# Construction

	votes := ratelimit.NewVoteLimiter(loc, nil)
	msgs := ratelimit.NewMessageLimiter(5*time.Second, time.Minute, nil)
	lg := ledger.New(conn, votes, msgs, ledger.OptionsFromTunables(cfg.Tunables, loc))
	if err := lg.Seed(ctx); err != nil { ... }

# Rollover

EnsureRolledOver compares rollover_meta.last_reset_date with today in the
reference zone and, if they differ, zeroes every today counter. The date
update is conditional, so concurrent callers reset at most once. Every vote
transaction runs the same check before incrementing, which serializes a
reset against in-flight increments. With postgres the conditional update
only locks the meta row when it actually resets; a vote committed in the
last instant of a day can therefore be zeroed with the rest of that day.

# Votes

CastVote checks, in order: region, surname, gender, daily limit. Each
failure is a distinct error wrapping ErrValidation or ErrRateLimited.
The increment and the log append share one transaction; a failure rolls
both back and releases the limiter slot.

# Broadcasts

PostBroadcast trims and length-checks the message, checks the broadcast
switch (ErrBroadcastDisabled wraps ErrForbidden) and the cooldown, sweeps
both limiters, and appends the message. Broadcasts returns the newest
entries inside the retention window, or nothing while disabled.

# Errors

	ErrValidation  → 400
	ErrRateLimited → 429
	ErrForbidden   → 403
	anything else  → 500 (store failure, already rolled back)
*/
package ledger
