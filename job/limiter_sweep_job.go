package job

import (
	"context"
	"log/slog"
)

// Sweeper drops expired rate-limit buckets.
type Sweeper interface {
	Sweep() int
}

// LimiterSweepJob keeps the in-memory limiter map bounded.
func LimiterSweepJob(store Sweeper) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if removed := store.Sweep(); removed > 0 {
			slog.InfoContext(ctx, "rate limit buckets swept", "removed", removed)
		}
		return nil
	}
}
