// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lanes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zr6b/voteapp/lanes"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(nLanes, burst int) lanes.Config {
	cfg := lanes.DefaultConfig()
	cfg.Lanes = nLanes
	cfg.Burst = burst
	return cfg
}

func TestScheduler_TwoLanesThreeMessages(t *testing.T) {
	s := lanes.New(testConfig(2, 3))
	s.Enqueue("a", "b", "c")

	evs := s.Tick(t0)
	require.Len(t, evs, 2)
	assert.Equal(t, 0, evs[0].Lane)
	assert.Equal(t, "a", evs[0].Message)
	assert.Equal(t, 1, evs[1].Lane)
	assert.Equal(t, "b", evs[1].Message)
	assert.Equal(t, 1, s.Pending())

	// Both lanes are reserved for the spawn gap.
	assert.Empty(t, s.Tick(t0.Add(1500*time.Millisecond)))
	assert.Equal(t, 1, s.Pending())

	evs = s.Tick(t0.Add(3 * time.Second))
	require.Len(t, evs, 1)
	assert.Equal(t, 0, evs[0].Lane)
	assert.Equal(t, "c", evs[0].Message)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_DefaultBurstOnePerTick(t *testing.T) {
	s := lanes.New(testConfig(2, 1))
	s.Enqueue("a", "b", "c")

	evs := s.Tick(t0)
	require.Len(t, evs, 1)
	assert.Equal(t, 0, evs[0].Lane)

	evs = s.Tick(t0.Add(1500 * time.Millisecond))
	require.Len(t, evs, 1)
	assert.Equal(t, 1, evs[0].Lane)
	assert.Equal(t, "b", evs[0].Message)

	assert.Empty(t, s.Tick(t0.Add(2*time.Second)))

	evs = s.Tick(t0.Add(3 * time.Second))
	require.Len(t, evs, 1)
	assert.Equal(t, 0, evs[0].Lane)
	assert.Equal(t, "c", evs[0].Message)
}

func TestScheduler_NoOverlapWithinLane(t *testing.T) {
	cfg := testConfig(3, 2)
	s := lanes.New(cfg)
	for i := 0; i < 40; i++ {
		s.Enqueue("m")
	}

	last := map[int]time.Time{}
	now := t0
	for i := 0; i < 60; i++ {
		for _, ev := range s.Tick(now) {
			if prev, ok := last[ev.Lane]; ok {
				assert.GreaterOrEqual(t, ev.Start.Sub(prev), cfg.SpawnGap, "lane %d", ev.Lane)
			}
			last[ev.Lane] = ev.Start
			assert.Equal(t, cfg.Visible, ev.End.Sub(ev.Start))
		}
		now = now.Add(cfg.Tick)
	}
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_DisabledKeepsQueue(t *testing.T) {
	s := lanes.New(testConfig(2, 1))
	s.Enqueue("a")
	require.Len(t, s.Tick(t0), 1)
	require.Len(t, s.Active(t0), 1)

	s.Enqueue("b")
	s.SetEnabled(false)
	assert.False(t, s.Enabled())
	assert.Empty(t, s.Tick(t0.Add(5*time.Second)))
	assert.Empty(t, s.Active(t0.Add(5*time.Second)))
	assert.Equal(t, 1, s.Pending())

	s.SetEnabled(true)
	evs := s.Tick(t0.Add(6 * time.Second))
	require.Len(t, evs, 1)
	assert.Equal(t, "b", evs[0].Message)
}

func TestScheduler_ActiveExpires(t *testing.T) {
	s := lanes.New(testConfig(1, 1))
	s.Enqueue("a")
	s.Tick(t0)

	assert.Len(t, s.Active(t0.Add(9*time.Second)), 1)
	assert.Empty(t, s.Active(t0.Add(10*time.Second)))
}

func TestScheduler_EmptyQueue(t *testing.T) {
	s := lanes.New(lanes.DefaultConfig())
	assert.Empty(t, s.Tick(t0))
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_Run(t *testing.T) {
	cfg := testConfig(2, 1)
	cfg.Tick = 5 * time.Millisecond
	s := lanes.New(cfg)
	s.Enqueue("a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan lanes.Event, 2)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, func(ev lanes.Event) { got <- ev })
		close(done)
	}()

	for _, want := range []string{"a", "b"} {
		select {
		case ev := <-got:
			assert.Equal(t, want, ev.Message)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
