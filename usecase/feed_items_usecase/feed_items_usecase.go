package feed_items_usecase

import (
	"bytes"
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/history_port"
	"feedcore/port/safe_fetch_port"
	"feedcore/usecase/feed_fetch_usecase"
	"feedcore/utils/errors"
	"feedcore/utils/feed_parser"
	"feedcore/utils/logger"
	"feedcore/utils/sanitizer"
	"io"
	"time"
)

type Options struct {
	Timeout     time.Duration
	MaxBytes    int64
	Retention   time.Duration
	DefaultMode domain.MediaMode
}

type Query struct {
	FeedID string
	Limit  int
	Offset int
	Mode   string
}

// FeedItemsUsecase combines a live fetch of a feed with its archive. The
// archive is read, never written, on this path.
type FeedItemsUsecase struct {
	sources feed_source_port.FeedSourcePort
	fetcher safe_fetch_port.SafeFetchPort
	history history_port.HistoryPort
	opts    Options
	now     func() time.Time
}

func NewFeedItemsUsecase(sources feed_source_port.FeedSourcePort, fetcher safe_fetch_port.SafeFetchPort, history history_port.HistoryPort, opts Options) *FeedItemsUsecase {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.Retention <= 0 {
		opts.Retention = 60 * 24 * time.Hour
	}
	if opts.DefaultMode == "" {
		opts.DefaultMode = domain.MediaModeProxy
	}
	return &FeedItemsUsecase{sources: sources, fetcher: fetcher, history: history, opts: opts, now: time.Now}
}

// Execute returns the merged, paginated items. Total counts the merged set.
func (u *FeedItemsUsecase) Execute(ctx context.Context, q Query) (*domain.HistoryPage, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, errors.NewValidationContextError("limit and offset must not be negative", "usecase", "FeedItemsUsecase", "Execute",
			map[string]interface{}{"limit": q.Limit, "offset": q.Offset})
	}

	source, err := feed_fetch_usecase.FindSource(ctx, u.sources, q.FeedID, "FeedItemsUsecase")
	if err != nil {
		return nil, err
	}

	fresh, err := u.fetchItems(ctx, source)
	if err != nil {
		return nil, err
	}

	cutoff := u.now().UTC().Add(-u.opts.Retention)
	archived, err := u.history.ListHistory(ctx, source.ID, cutoff, 0, 0)
	if err != nil {
		// The live feed is still useful without its archive.
		logger.NewContextLogger(logger.Logger).WithContext(ctx).WarnContext(ctx, "history unavailable, serving live items only",
			"feed_id", source.ID,
			"error", err,
		)
		archived = nil
	}

	merged := domain.MergeHistory(fresh, archived)
	page := domain.Paginate(merged, q.Limit, q.Offset)
	mode := domain.ParseMediaMode(q.Mode, u.opts.DefaultMode)

	items := make([]*domain.HistoryItem, 0, len(page))
	for _, item := range page {
		items = append(items, withMediaMode(item, source.ID, mode))
	}
	return &domain.HistoryPage{Items: items, Total: len(merged)}, nil
}

func (u *FeedItemsUsecase) fetchItems(ctx context.Context, source *domain.FeedSource) ([]*domain.HistoryItem, error) {
	resp, err := u.fetcher.Fetch(ctx, source.RemoteURL, feed_fetch_usecase.FeedFetchOptions(u.opts.Timeout), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ReadCapped(resp, u.opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	parsed, err := feed_parser.Parse(bytes.NewReader(body), source.ID)
	if err != nil {
		return nil, errors.NewMalformedUpstreamError("usecase", "FeedItemsUsecase", "parse_feed", err,
			map[string]interface{}{"feed_id": source.ID, "content_type": resp.ContentType})
	}

	items := make([]*domain.HistoryItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, sanitizer.SanitizeHistoryItem(item))
	}
	return items, nil
}

// ReadCapped reads the whole body, failing once more than maxBytes arrive.
func ReadCapped(resp *domain.UpstreamResponse, maxBytes int64) ([]byte, error) {
	if resp.ContentLength > maxBytes {
		return nil, errors.NewSizeLimitExceededError("usecase", "FeedItemsUsecase", "check_declared_length",
			map[string]interface{}{"declared": resp.ContentLength, "max_bytes": maxBytes})
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, errors.NewFetchError("failed to read upstream body", "usecase", "FeedItemsUsecase", "read_body", err, nil)
	}
	if int64(len(body)) > maxBytes {
		return nil, errors.NewSizeLimitExceededError("usecase", "FeedItemsUsecase", "read_body",
			map[string]interface{}{"max_bytes": maxBytes})
	}
	return body, nil
}

// withMediaMode returns a copy whose media references follow mode.
func withMediaMode(item *domain.HistoryItem, feedID string, mode domain.MediaMode) *domain.HistoryItem {
	out := *item
	if out.Thumbnail != "" {
		out.Thumbnail = domain.SelectURL(domain.NewMediaURLs(feedID, out.Thumbnail), mode)
	}
	if item.Enclosure != nil {
		enc := *item.Enclosure
		enc.URL = domain.SelectURL(domain.NewMediaURLs(feedID, enc.URL), mode)
		out.Enclosure = &enc
	}
	return &out
}
