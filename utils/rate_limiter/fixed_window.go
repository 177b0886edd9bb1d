package rate_limiter

import (
	"context"
	"feedcore/utils/logger"
	"feedcore/utils/metrics"
	"time"
)

// CounterStore increments a counter that resets once window has elapsed
// since the first increment.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// FixedWindowLimiter throttles an identity once it exceeds ceiling calls in
// one window. Store failures fail open.
type FixedWindowLimiter struct {
	store   CounterStore
	ceiling int64
	window  time.Duration
	prefix  string
}

func NewFixedWindowLimiter(store CounterStore, ceiling int, window time.Duration) *FixedWindowLimiter {
	if ceiling <= 0 {
		ceiling = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{
		store:   store,
		ceiling: int64(ceiling),
		window:  window,
		prefix:  "history_write:",
	}
}

func (l *FixedWindowLimiter) ShouldThrottle(ctx context.Context, identity string) bool {
	if identity == "" {
		identity = "unknown"
	}

	count, err := l.store.Increment(ctx, l.prefix+identity, l.window)
	if err != nil {
		logger.NewContextLogger(logger.Logger).WithContext(ctx).WarnContext(ctx, "rate limiter store unavailable, allowing request",
			"identity", identity,
			"error", err,
		)
		return false
	}

	if count > l.ceiling {
		metrics.RecordThrottled()
		logger.NewContextLogger(logger.Logger).Security(ctx, "history_write_throttled",
			"identity", identity,
			"count", count,
			"ceiling", l.ceiling,
		)
		return true
	}
	return false
}
