// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lanes

import (
	"context"
	"sync"
	"time"
)

type Config struct {
	Lanes    int
	SpawnGap time.Duration
	Visible  time.Duration
	Tick     time.Duration
	Burst    int
}

func DefaultConfig() Config {
	return Config{
		Lanes:    10,
		SpawnGap: 3 * time.Second,
		Visible:  10 * time.Second,
		Tick:     1500 * time.Millisecond,
		Burst:    1,
	}
}

// Event is one message placed in a lane.
type Event struct {
	Lane    int
	Message string
	Start   time.Time
	End     time.Time
}

type Scheduler struct {
	cfg Config

	mu      sync.Mutex
	freeAt  []time.Time
	queue   []string
	active  []Event
	enabled bool
}

// New returns an enabled scheduler. Non-positive fields fall back to
// DefaultConfig.
func New(cfg Config) *Scheduler {
	def := DefaultConfig()
	if cfg.Lanes <= 0 {
		cfg.Lanes = def.Lanes
	}
	if cfg.SpawnGap <= 0 {
		cfg.SpawnGap = def.SpawnGap
	}
	if cfg.Visible <= 0 {
		cfg.Visible = def.Visible
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	return &Scheduler{
		cfg:     cfg,
		freeAt:  make([]time.Time, cfg.Lanes),
		enabled: true,
	}
}

func (s *Scheduler) Enqueue(msgs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, msgs...)
}

// Tick starts up to Burst queued messages in free lanes and returns the
// events it created. Messages stay queued while no lane is free.
func (s *Scheduler) Tick(now time.Time) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	s.prune(now)

	var started []Event
	for len(started) < s.cfg.Burst && len(s.queue) > 0 {
		lane := s.freeLane(now)
		if lane < 0 {
			break
		}

		ev := Event{
			Lane:    lane,
			Message: s.queue[0],
			Start:   now,
			End:     now.Add(s.cfg.Visible),
		}
		s.queue[0] = ""
		s.queue = s.queue[1:]
		s.freeAt[lane] = now.Add(s.cfg.SpawnGap)
		s.active = append(s.active, ev)
		started = append(started, ev)
	}
	return started
}

func (s *Scheduler) freeLane(now time.Time) int {
	for i, t := range s.freeAt {
		if !t.After(now) {
			return i
		}
	}
	return -1
}

// prune drops events that have finished displaying.
func (s *Scheduler) prune(now time.Time) {
	kept := s.active[:0]
	for _, ev := range s.active {
		if ev.End.After(now) {
			kept = append(kept, ev)
		}
	}
	clear(s.active[len(kept):])
	s.active = kept
}

func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Pending is the number of queued messages not yet placed in a lane.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Active returns the events still on screen at now. It returns nothing while
// the scheduler is disabled.
func (s *Scheduler) Active(now time.Time) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	s.prune(now)
	return append([]Event(nil), s.active...)
}

// Run ticks every Config.Tick and passes each started event to emit until
// ctx is done.
func (s *Scheduler) Run(ctx context.Context, emit func(Event)) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, ev := range s.Tick(now) {
				emit(ev)
			}
		}
	}
}
