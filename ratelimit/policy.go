// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"time"

	"github.com/zr6b/voteapp/calendar"
)

// Policy decides when a remembered acceptance blocks a new one and when the
// memory of it can be dropped.
type Policy interface {
	Blocks(last, now time.Time) bool
	Stale(last, now time.Time) bool
}

// DailyPolicy allows one acceptance per calendar day in Loc.
type DailyPolicy struct {
	Loc *time.Location
}

func (p DailyPolicy) Blocks(last, now time.Time) bool {
	return calendar.SameDay(last, now, p.Loc)
}

func (p DailyPolicy) Stale(last, now time.Time) bool {
	return !calendar.SameDay(last, now, p.Loc)
}

// CooldownPolicy allows one acceptance per Cooldown and forgets entries
// older than MaxAge.
type CooldownPolicy struct {
	Cooldown time.Duration
	MaxAge   time.Duration
}

func (p CooldownPolicy) Blocks(last, now time.Time) bool {
	return now.Sub(last) < p.Cooldown
}

func (p CooldownPolicy) Stale(last, now time.Time) bool {
	return now.Sub(last) > p.MaxAge
}
