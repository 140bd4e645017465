// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit implements the two origin-keyed limiters that protect the
vote and broadcast endpoints.

# Limiters

A Limiter pairs a Policy with a Cache backend:

	votes := ratelimit.NewVoteLimiter(loc, nil)  // one per calendar day
	msgs := ratelimit.NewMessageLimiter(5*time.Second, time.Minute, nil)

A nil cache selects the in-process MemoryCache. State is not persisted and
is not shared between server instances.

# Reserve, Commit, Cancel

Handlers never call CheckAndIsBlocked followed by Record, because two
requests from the same origin could both pass the check. Instead:

	res, ok := votes.Reserve(origin, now)
	if !ok {
		return ErrAlreadyVoted
	}
	if err := commitToDatabase(); err != nil {
		res.Cancel()
		return err
	}
	res.Commit()

A pending reservation blocks the origin, so a limiter is only ever updated
for a request that committed.

# Eviction

Sweep removes entries the policy reports as stale: votes from another day,
messages older than the sweep age. The ledger sweeps on accepted requests
and RunSweeper sweeps on a timer.
*/
package ratelimit
