package rate_limiter_port

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=rate_limiter_port.go -destination=../../mocks/mock_rate_limiter_port.go -package=mocks

// WriteRateLimiterPort gates the history write path per client identity.
type WriteRateLimiterPort interface {
	ShouldThrottle(ctx context.Context, identity string) bool
}
