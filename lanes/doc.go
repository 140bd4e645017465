// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lanes schedules broadcast messages onto a fixed number of display
lanes so that consecutive messages in one lane never overlap.

# Model

Each lane has a free-at instant. Scheduling a message in a lane at time t
emits an Event visible until t+Visible and blocks the lane until t+SpawnGap.
Messages wait in an unbounded FIFO queue until a lane frees up.

	s := lanes.New(lanes.DefaultConfig())
	s.Enqueue("hello", "world")
	for _, ev := range s.Tick(time.Now()) {
		render(ev)
	}

Tick scans lanes in index order and starts at most Config.Burst messages.
With the default burst of one, two queued messages land in lanes 0 and 1 on
consecutive ticks.

# Disabling

SetEnabled(false) turns Tick into a no-op and hides active events without
dropping the queue; re-enabling resumes from the head of the queue.

# Driving

Run ticks the scheduler on one goroutine until the context is cancelled:

	go s.Run(ctx, func(ev lanes.Event) { ... })
*/
package lanes
