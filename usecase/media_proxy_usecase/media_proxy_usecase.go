package media_proxy_usecase

import (
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/safe_fetch_port"
	"feedcore/usecase/feed_fetch_usecase"
	"feedcore/utils/errors"
	"feedcore/utils/logger"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const mediaAccept = "image/*, audio/*, video/*;q=0.9, */*;q=0.1"

// MediaProxyUsecase fetches media referenced by a feed. Every hop, the first
// one included, must stay on the feed's media allowlist.
type MediaProxyUsecase struct {
	sources feed_source_port.FeedSourcePort
	fetcher safe_fetch_port.SafeFetchPort
	timeout time.Duration
}

func NewMediaProxyUsecase(sources feed_source_port.FeedSourcePort, fetcher safe_fetch_port.SafeFetchPort, timeout time.Duration) *MediaProxyUsecase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MediaProxyUsecase{sources: sources, fetcher: fetcher, timeout: timeout}
}

// Execute returns the upstream media response. Body must be closed.
func (u *MediaProxyUsecase) Execute(ctx context.Context, feedID, rawURL string) (*domain.UpstreamResponse, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.NewValidationContextError("url is required", "usecase", "MediaProxyUsecase", "Execute", nil)
	}

	source, err := feed_fetch_usecase.FindSource(ctx, u.sources, feedID, "MediaProxyUsecase")
	if err != nil {
		return nil, err
	}

	allowlist := source.MediaAllowlist()
	hopCheck := func(target *url.URL) error {
		if allowlist.Allows(target.Hostname()) {
			return nil
		}
		logger.NewContextLogger(logger.Logger).Security(ctx, "media_host_not_allowed",
			"feed_id", source.ID,
			"host", target.Hostname(),
		)
		return errors.NewMediaHostNotAllowedError("usecase", "MediaProxyUsecase", "allowlist",
			map[string]interface{}{"feed_id": source.ID, "host": target.Hostname()})
	}

	headers := http.Header{}
	headers.Set("Accept", mediaAccept)
	resp, err := u.fetcher.Fetch(ctx, rawURL, domain.FetchOptions{Timeout: u.timeout, Method: http.MethodGet, Headers: headers}, hopCheck)
	if err != nil {
		return nil, err
	}

	if !IsMediaContentType(resp.ContentType) {
		_ = resp.Body.Close()
		return nil, errors.NewFetchError("upstream did not return media", "usecase", "MediaProxyUsecase", "check_content_type", nil,
			map[string]interface{}{"content_type": resp.ContentType})
	}
	return resp, nil
}

// IsMediaContentType accepts image, audio and video types plus octet-stream.
// Markup is never relayed from the proxy origin.
func IsMediaContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case mediaType == "image/svg+xml":
		return false
	case strings.HasPrefix(mediaType, "image/"),
		strings.HasPrefix(mediaType, "audio/"),
		strings.HasPrefix(mediaType, "video/"),
		mediaType == "application/octet-stream":
		return true
	default:
		return false
	}
}
