package network_guard_port

import (
	"context"
	"feedcore/domain"
	"net/url"
)

//go:generate go run go.uber.org/mock/mockgen -source=network_guard_port.go -destination=../../mocks/mock_network_guard_port.go -package=mocks

// NetworkGuardPort resolves a URL's host and refuses non-public destinations.
type NetworkGuardPort interface {
	Resolve(ctx context.Context, u *url.URL) (*domain.ResolvedTarget, error)
}
