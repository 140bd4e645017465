// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// RunSweeper sweeps every limiter each interval until ctx is done.
func RunSweeper(ctx context.Context, interval time.Duration, now func() time.Time, limiters ...*Limiter) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t := now()
			for _, l := range limiters {
				if n := l.Sweep(t); n > 0 {
					slog.Debug("limiter swept", "limiter", l.Name(), "removed", n, "remaining", l.Len())
				}
			}
		}
	}
}
