// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMessageCooldown = 5 * time.Second
	DefaultMessageMaxAge   = 60 * time.Second
)

// Limiter is an origin-keyed acceptance limiter. Check-and-reserve is
// serialized by mu so two requests from one origin cannot both pass.
type Limiter struct {
	name   string
	mu     sync.Mutex
	cache  Cache
	policy Policy
}

func New(name string, policy Policy, cache Cache) *Limiter {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Limiter{name: name, cache: cache, policy: policy}
}

// NewVoteLimiter returns the one-vote-per-day limiter.
func NewVoteLimiter(loc *time.Location, cache Cache) *Limiter {
	return New("vote", DailyPolicy{Loc: loc}, cache)
}

// NewMessageLimiter returns the broadcast cooldown limiter.
func NewMessageLimiter(cooldown, maxAge time.Duration, cache Cache) *Limiter {
	return New("message", CooldownPolicy{Cooldown: cooldown, MaxAge: maxAge}, cache)
}

func (l *Limiter) Name() string { return l.name }

func (l *Limiter) Len() int { return l.cache.Len() }

// CheckAndIsBlocked reports whether origin may not be accepted at now.
// An origin with an in-flight reservation is blocked.
func (l *Limiter) CheckAndIsBlocked(origin string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blocked(origin, now)
}

func (l *Limiter) blocked(origin string, now time.Time) bool {
	e, ok := l.cache.Load(origin)
	if !ok {
		return false
	}
	return e.Pending || l.policy.Blocks(e.At, now)
}

// Record remembers an accepted request from origin at now.
func (l *Limiter) Record(origin string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Store(origin, Entry{At: now})
}

// Reserve atomically checks origin and, if it is not blocked, holds its
// slot until the returned Reservation is committed or cancelled.
func (l *Limiter) Reserve(origin string, now time.Time) (*Reservation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.blocked(origin, now) {
		return nil, false
	}

	prev, hadPrev := l.cache.Load(origin)
	l.cache.Store(origin, Entry{At: now, Pending: true})
	return &Reservation{l: l, origin: origin, at: now, prev: prev, hadPrev: hadPrev}, true
}

// Sweep drops committed entries the policy considers stale and returns how
// many were removed.
func (l *Limiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var stale []string
	l.cache.Range(func(key string, e Entry) bool {
		if !e.Pending && l.policy.Stale(e.At, now) {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		l.cache.Delete(key)
	}
	return len(stale)
}

// Reservation is a held limiter slot. Exactly one of Commit or Cancel takes
// effect; later calls are no-ops.
type Reservation struct {
	l       *Limiter
	origin  string
	at      time.Time
	prev    Entry
	hadPrev bool
	done    bool
}

// Commit records the acceptance at the reservation time.
func (r *Reservation) Commit() {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.done {
		return
	}
	r.done = true
	r.l.cache.Store(r.origin, Entry{At: r.at})
}

// Cancel releases the slot and restores what was remembered before.
func (r *Reservation) Cancel() {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.done {
		return
	}
	r.done = true

	cur, ok := r.l.cache.Load(r.origin)
	if !ok || !cur.Pending {
		return
	}
	if r.hadPrev {
		r.l.cache.Store(r.origin, r.prev)
	} else {
		r.l.cache.Delete(r.origin)
	}
}
