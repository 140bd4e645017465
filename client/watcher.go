// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/zr6b/voteapp/ingest"
	"github.com/zr6b/voteapp/lanes"
	"github.com/zr6b/voteapp/models"
)

// DefaultPollInterval is how often the watcher refreshes feed and broadcasts.
const DefaultPollInterval = 30 * time.Second

// DefaultSendCooldown is the local pause between two Say calls, matching the
// server's per-origin message cooldown.
const DefaultSendCooldown = 5 * time.Second

const (
	feedSize      = 20
	broadcastSize = 50
)

// ErrSendCooldown is returned by Say while the local cooldown is running. The
// server is not contacted.
var ErrSendCooldown = errors.New("sending too fast, wait a few seconds")

// Watcher keeps a local copy of the vote feed and pushes new broadcast
// messages into a lane scheduler.
type Watcher struct {
	client   *Client
	interval time.Duration

	feed       *ingest.List[models.VoteLogEntry]
	broadcasts *ingest.List[models.BroadcastEntry]
	lanes      *lanes.Scheduler

	// OnFeed receives newly seen votes, oldest first.
	OnFeed func([]models.VoteLogEntry)

	// SendCooldown and Now drive the Say cooldown. Zero values mean
	// DefaultSendCooldown and time.Now.
	SendCooldown time.Duration
	Now          func() time.Time

	mu      sync.Mutex
	lastSay time.Time
}

func NewWatcher(c *Client, sched *lanes.Scheduler, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		client:     c,
		interval:   interval,
		feed:       ingest.NewList(feedSize, func(e models.VoteLogEntry) int64 { return e.ID }),
		broadcasts: ingest.NewList(broadcastSize, func(e models.BroadcastEntry) int64 { return e.ID }),
		lanes:      sched,
	}
}

// Feed returns the local feed, newest first.
func (w *Watcher) Feed() []models.VoteLogEntry {
	return w.feed.Items()
}

// Broadcasts returns the most recent broadcasts seen, newest first.
func (w *Watcher) Broadcasts() []models.BroadcastEntry {
	return w.broadcasts.Items()
}

// Poll fetches feed and broadcasts once. A failed fetch is logged and
// leaves local state as it was; the first error is returned.
func (w *Watcher) Poll(ctx context.Context) error {
	var firstErr error

	feed, err := w.client.Feed(ctx)
	if err != nil {
		slog.Warn("feed poll failed", "error", err)
		firstErr = err
	} else if added := w.feed.Merge(feed); len(added) > 0 && w.OnFeed != nil {
		w.OnFeed(added)
	}

	entries, err := w.client.Broadcasts(ctx)
	if err != nil {
		slog.Warn("broadcast poll failed", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		w.enqueue(w.broadcasts.Merge(entries))
	}

	return firstErr
}

// Say posts a message and queues it immediately, so the later poll echo is
// not shown twice. A second Say inside the cooldown fails with
// ErrSendCooldown. Success or a 429 keeps the cooldown running; any other
// error releases it.
func (w *Watcher) Say(ctx context.Context, message string) (models.BroadcastEntry, error) {
	now := w.now()

	// The slot is taken before the request so concurrent calls see it.
	w.mu.Lock()
	if !w.lastSay.IsZero() && now.Sub(w.lastSay) < w.cooldown() {
		w.mu.Unlock()
		return models.BroadcastEntry{}, ErrSendCooldown
	}
	prev := w.lastSay
	w.lastSay = now
	w.mu.Unlock()

	entry, err := w.client.PostBroadcast(ctx, message)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests {
			w.mu.Lock()
			if w.lastSay.Equal(now) {
				w.lastSay = prev
			}
			w.mu.Unlock()
		}
		return models.BroadcastEntry{}, err
	}

	w.broadcasts.MarkSeen(entry.ID)
	w.lanes.Enqueue(entry.Message)
	return entry, nil
}

func (w *Watcher) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Watcher) cooldown() time.Duration {
	if w.SendCooldown > 0 {
		return w.SendCooldown
	}
	return DefaultSendCooldown
}

func (w *Watcher) enqueue(entries []models.BroadcastEntry) {
	for _, e := range entries {
		w.lanes.Enqueue(e.Message)
	}
}

// Run polls immediately and then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}
