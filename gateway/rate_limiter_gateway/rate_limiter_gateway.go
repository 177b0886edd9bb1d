package rate_limiter_gateway

import (
	"context"
	"feedcore/utils/rate_limiter"
)

// RateLimiterGateway serves both limiters: the fixed-window write limiter
// keyed by client identity and the per-host pacer for outbound archive fetches.
type RateLimiterGateway struct {
	writeLimiter *rate_limiter.FixedWindowLimiter
	hostLimiter  *rate_limiter.HostRateLimiter
}

func NewRateLimiterGateway(writeLimiter *rate_limiter.FixedWindowLimiter, hostLimiter *rate_limiter.HostRateLimiter) *RateLimiterGateway {
	return &RateLimiterGateway{
		writeLimiter: writeLimiter,
		hostLimiter:  hostLimiter,
	}
}

// ShouldThrottle reports whether identity is over its write budget.
func (g *RateLimiterGateway) ShouldThrottle(ctx context.Context, identity string) bool {
	if g.writeLimiter == nil {
		return false
	}
	return g.writeLimiter.ShouldThrottle(ctx, identity)
}

// WaitForURL blocks until the host of urlStr may be fetched again.
func (g *RateLimiterGateway) WaitForURL(ctx context.Context, urlStr string) error {
	if g.hostLimiter == nil {
		return nil
	}
	return g.hostLimiter.WaitForHost(ctx, urlStr)
}
