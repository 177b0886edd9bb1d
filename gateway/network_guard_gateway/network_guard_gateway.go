package network_guard_gateway

import (
	"context"
	stderrors "errors"
	"feedcore/domain"
	"feedcore/utils/errors"
	"feedcore/utils/logger"
	"feedcore/utils/metrics"
	"feedcore/utils/security"
	"net/url"
)

// NetworkGuardGateway adapts the private-network guard to the application
// error model and reports every rejection as a security event.
type NetworkGuardGateway struct {
	guard *security.PrivateNetworkGuard
}

func NewNetworkGuardGateway(guard *security.PrivateNetworkGuard) *NetworkGuardGateway {
	return &NetworkGuardGateway{guard: guard}
}

// Resolve returns the pinned target for u, a PrivateHost error when any
// resolved address is not public, or a Fetch error when resolution fails.
func (g *NetworkGuardGateway) Resolve(ctx context.Context, u *url.URL) (*domain.ResolvedTarget, error) {
	target, err := g.guard.Resolve(ctx, u)
	if err == nil {
		return target, nil
	}

	errCtx := map[string]interface{}{"host": u.Hostname()}
	if security.IsGuardRejection(err) {
		ReportRejection(ctx, u.Hostname(), err)
		return nil, errors.NewPrivateHostError("gateway", "NetworkGuardGateway", "Resolve", err, errCtx)
	}
	return nil, errors.NewFetchError("DNS resolution failed", "gateway", "NetworkGuardGateway", "Resolve", err, errCtx)
}

// ReportRejection logs and counts a refused destination.
func ReportRejection(ctx context.Context, host string, err error) {
	reason := "unknown"
	var vErr *security.ValidationError
	if stderrors.As(err, &vErr) {
		reason = vErr.Type
	}
	metrics.RecordGuardRejection(reason)
	logger.NewContextLogger(logger.Logger).Security(ctx, "private_host_blocked",
		"host", host,
		"reason", reason,
		"error", err.Error(),
	)
}
