// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zr6b/voteapp/calendar"
	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/db"
	"github.com/zr6b/voteapp/models"
	"github.com/zr6b/voteapp/ratelimit"
)

type Options struct {
	Regions []string
	Genders []string

	SurnameMaxLen int
	MessageMaxLen int

	BroadcastRetention time.Duration
	FeedLimit          int
	BroadcastLimit     int

	Location *time.Location
	Now      func() time.Time
}

// OptionsFromTunables maps the configured tunables onto ledger options.
func OptionsFromTunables(t cliparse.Tunables, loc *time.Location) Options {
	return Options{
		Regions:            t.Regions,
		Genders:            t.Genders,
		SurnameMaxLen:      t.SurnameMaxLen,
		MessageMaxLen:      t.MessageMaxLen,
		BroadcastRetention: t.BroadcastRetention.Duration,
		FeedLimit:          t.FeedLimit,
		BroadcastLimit:     t.BroadcastLimit,
		Location:           loc,
	}
}

// Ledger owns the tally, the vote and broadcast logs, and the two limiters
// guarding writes to them.
type Ledger struct {
	db       *sql.DB
	votes    *ratelimit.Limiter
	messages *ratelimit.Limiter

	regions     map[string]struct{}
	regionOrder []string
	genders     map[string]struct{}

	surnameMaxLen int
	messageMaxLen int

	retention      time.Duration
	feedLimit      int
	broadcastLimit int

	loc *time.Location
	now func() time.Time
}

func New(conn *sql.DB, votes, messages *ratelimit.Limiter, opts Options) *Ledger {
	l := &Ledger{
		db:             conn,
		votes:          votes,
		messages:       messages,
		regions:        make(map[string]struct{}, len(opts.Regions)),
		regionOrder:    opts.Regions,
		genders:        make(map[string]struct{}, len(opts.Genders)),
		surnameMaxLen:  opts.SurnameMaxLen,
		messageMaxLen:  opts.MessageMaxLen,
		retention:      opts.BroadcastRetention,
		feedLimit:      opts.FeedLimit,
		broadcastLimit: opts.BroadcastLimit,
		loc:            opts.Location,
		now:            opts.Now,
	}
	for _, r := range opts.Regions {
		l.regions[r] = struct{}{}
	}
	for _, g := range opts.Genders {
		l.genders[g] = struct{}{}
	}
	if l.loc == nil {
		l.loc = time.UTC
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Regions returns the configured regions in display order.
func (l *Ledger) Regions() []string {
	return l.regionOrder
}

// Today is the current calendar date in the reference zone.
func (l *Ledger) Today() string {
	return calendar.Date(l.now(), l.loc)
}

// Seed prepares the meta row and the per-region rows.
func (l *Ledger) Seed(ctx context.Context) error {
	return db.Seed(ctx, l.db, l.regionOrder, l.Today())
}

// Meta reads the singleton meta row.
func (l *Ledger) Meta(ctx context.Context) (models.RolloverMeta, error) {
	var m models.RolloverMeta
	err := l.db.QueryRowContext(ctx, `
		SELECT last_reset_date, broadcast_enabled FROM rollover_meta WHERE id = $1
	`, db.MetaID).Scan(&m.LastResetDate, &m.BroadcastEnabled)
	if err != nil {
		return models.RolloverMeta{}, fmt.Errorf("read meta: %w", err)
	}
	return m, nil
}

// Tallies returns every region row.
func (l *Ledger) Tallies(ctx context.Context) ([]models.RegionTally, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT region, total_votes, today_votes FROM region_tally ORDER BY region
	`)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	tallies := []models.RegionTally{}
	for rows.Next() {
		var t models.RegionTally
		if err := rows.Scan(&t.Region, &t.TotalVotes, &t.TodayVotes); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tallies: %w", err)
	}
	return tallies, nil
}

// Stats rolls the day over if needed and aggregates the tally.
func (l *Ledger) Stats(ctx context.Context) (models.StatsResponse, error) {
	if _, err := l.EnsureRolledOver(ctx); err != nil {
		return models.StatsResponse{}, err
	}

	tallies, err := l.Tallies(ctx)
	if err != nil {
		return models.StatsResponse{}, err
	}

	stats := models.StatsResponse{MapData: make(map[string]int64, len(tallies))}
	for _, t := range tallies {
		stats.MapData[t.Region] = t.TotalVotes
		stats.TotalVotes += t.TotalVotes
		stats.TodayVotes += t.TodayVotes
	}
	return stats, nil
}
