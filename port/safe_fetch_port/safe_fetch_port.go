package safe_fetch_port

import (
	"context"
	"feedcore/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=safe_fetch_port.go -destination=../../mocks/mock_safe_fetch_port.go -package=mocks

// SafeFetchPort fetches an untrusted URL, validating it and every redirect hop.
type SafeFetchPort interface {
	Fetch(ctx context.Context, rawURL string, opts domain.FetchOptions, hopCheck domain.HopCheck) (*domain.UpstreamResponse, error)
}
