package safe_fetch_usecase

import (
	"context"
	stderrors "errors"
	"feedcore/domain"
	"feedcore/port/network_guard_port"
	"feedcore/port/upstream_fetch_port"
	"feedcore/utils/errors"
	"feedcore/utils/otel"
	"feedcore/utils/security"
	"time"
)

const defaultMaxRedirects = 5

// SafeFetchUsecase runs every URL a fetch visits through the parser and the
// network guard before the pinned fetcher is allowed to touch it.
type SafeFetchUsecase struct {
	guard        network_guard_port.NetworkGuardPort
	fetcher      upstream_fetch_port.UpstreamFetchPort
	maxRedirects int
}

func NewSafeFetchUsecase(guard network_guard_port.NetworkGuardPort, fetcher upstream_fetch_port.UpstreamFetchPort, maxRedirects int) *SafeFetchUsecase {
	if maxRedirects < 0 {
		maxRedirects = defaultMaxRedirects
	}
	return &SafeFetchUsecase{
		guard:        guard,
		fetcher:      fetcher,
		maxRedirects: maxRedirects,
	}
}

// Fetch follows at most maxRedirects redirects. hopCheck may be nil.
func (u *SafeFetchUsecase) Fetch(ctx context.Context, rawURL string, opts domain.FetchOptions, hopCheck domain.HopCheck) (*domain.UpstreamResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	start := time.Now()
	current := rawURL
	for hop := 0; ; hop++ {
		target, err := u.validateHop(ctx, current, hopCheck)
		if err != nil {
			otel.RecordUpstreamFetch(ctx, "rejected", time.Since(start))
			return nil, err
		}

		resp, err := u.fetcher.Fetch(ctx, target, opts)
		if err != nil {
			otel.RecordUpstreamFetch(ctx, "error", time.Since(start))
			return nil, err
		}
		if !resp.IsRedirect() {
			otel.RecordUpstreamFetch(ctx, "ok", time.Since(start))
			return resp, nil
		}
		_ = resp.Body.Close()

		if hop >= u.maxRedirects {
			otel.RecordUpstreamFetch(ctx, "error", time.Since(start))
			return nil, errors.NewFetchError("too many redirects", "usecase", "SafeFetchUsecase", "follow_redirect", nil,
				map[string]interface{}{
					"url":           rawURL,
					"max_redirects": u.maxRedirects,
				})
		}
		current = resp.Location
	}
}

func (u *SafeFetchUsecase) validateHop(ctx context.Context, raw string, hopCheck domain.HopCheck) (*domain.ResolvedTarget, error) {
	parsed, err := security.ParseSafeURL(raw)
	if err != nil {
		return nil, errors.NewInvalidTargetError("usecase", "SafeFetchUsecase", "parse_url", err,
			map[string]interface{}{"url": truncate(raw)})
	}

	if hopCheck != nil {
		if err := hopCheck(parsed); err != nil {
			var appErr *errors.AppContextError
			if stderrors.As(err, &appErr) {
				return nil, err
			}
			return nil, errors.NewInvalidTargetError("usecase", "SafeFetchUsecase", "hop_check", err,
				map[string]interface{}{"url": parsed.String()})
		}
	}

	return u.guard.Resolve(ctx, parsed)
}

func truncate(raw string) string {
	if len(raw) > 256 {
		return raw[:256]
	}
	return raw
}
