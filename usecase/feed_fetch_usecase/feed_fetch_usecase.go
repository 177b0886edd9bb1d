package feed_fetch_usecase

import (
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/safe_fetch_port"
	"feedcore/utils/errors"
	"net/http"
	"strings"
	"time"
)

// FeedAccept is sent with every feed request.
const FeedAccept = "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.1"

// FeedFetchUsecase resolves a feed id to its configured URL and fetches it
// through the safe fetch path. The caller relays the body.
type FeedFetchUsecase struct {
	sources feed_source_port.FeedSourcePort
	fetcher safe_fetch_port.SafeFetchPort
	timeout time.Duration
}

func NewFeedFetchUsecase(sources feed_source_port.FeedSourcePort, fetcher safe_fetch_port.SafeFetchPort, timeout time.Duration) *FeedFetchUsecase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FeedFetchUsecase{sources: sources, fetcher: fetcher, timeout: timeout}
}

// Execute returns the upstream response for feedID. Body must be closed.
func (u *FeedFetchUsecase) Execute(ctx context.Context, feedID string) (*domain.UpstreamResponse, error) {
	source, err := FindSource(ctx, u.sources, feedID, "FeedFetchUsecase")
	if err != nil {
		return nil, err
	}

	return u.fetcher.Fetch(ctx, source.RemoteURL, FeedFetchOptions(u.timeout), nil)
}

// FeedFetchOptions builds the options used for every feed request.
func FeedFetchOptions(timeout time.Duration) domain.FetchOptions {
	headers := http.Header{}
	headers.Set("Accept", FeedAccept)
	return domain.FetchOptions{Timeout: timeout, Method: http.MethodGet, Headers: headers}
}

// FindSource looks up feedID and rejects sources without a remote URL.
func FindSource(ctx context.Context, sources feed_source_port.FeedSourcePort, feedID, component string) (*domain.FeedSource, error) {
	feedID = strings.TrimSpace(feedID)
	if feedID == "" {
		return nil, errors.NewValidationContextError("feed id is required", "usecase", component, "find_source", nil)
	}

	source, err := sources.FindFeedSource(ctx, feedID)
	if err != nil {
		return nil, err
	}
	if source == nil || strings.TrimSpace(source.RemoteURL) == "" {
		return nil, errors.NewFeedNotFoundError("usecase", component, "find_source",
			map[string]interface{}{"feed_id": feedID, "reason": "no remote url"})
	}
	return source, nil
}
