package upstream_fetch_port

import (
	"context"
	"feedcore/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=upstream_fetch_port.go -destination=../../mocks/mock_upstream_fetch_port.go -package=mocks

// UpstreamFetchPort performs one HTTP request against an already validated target.
type UpstreamFetchPort interface {
	Fetch(ctx context.Context, target *domain.ResolvedTarget, opts domain.FetchOptions) (*domain.UpstreamResponse, error)
}
