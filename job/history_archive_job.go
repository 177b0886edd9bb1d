package job

import (
	"bytes"
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/safe_fetch_port"
	"feedcore/usecase/feed_fetch_usecase"
	"feedcore/usecase/feed_items_usecase"
	"feedcore/utils/errors"
	"feedcore/utils/feed_parser"
	"feedcore/utils/logger"
	"feedcore/utils/metrics"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ArchiveIdentity is the client identity archive writes are recorded under.
const ArchiveIdentity = "archive-job"

// HistoryWriter is the history upsert path.
type HistoryWriter interface {
	Execute(ctx context.Context, identity, feedID string, items []*domain.HistoryItem) (*domain.UpsertResult, error)
}

// HostPacer spaces out requests to the same upstream host.
type HostPacer interface {
	WaitForURL(ctx context.Context, urlStr string) error
}

type ArchiveOptions struct {
	Concurrency   int
	FetchTimeout  time.Duration
	MaxBytes      int64
	MaxBatchItems int
}

// HistoryArchiveJob fetches every configured feed through the safe fetch
// path and records its items, so the archive grows even when no client is
// reading.
type HistoryArchiveJob struct {
	sources feed_source_port.FeedSourcePort
	fetcher safe_fetch_port.SafeFetchPort
	writer  HistoryWriter
	pacer   HostPacer
	opts    ArchiveOptions
}

func NewHistoryArchiveJob(
	sources feed_source_port.FeedSourcePort,
	fetcher safe_fetch_port.SafeFetchPort,
	writer HistoryWriter,
	pacer HostPacer,
	opts ArchiveOptions,
) *HistoryArchiveJob {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.MaxBatchItems <= 0 {
		opts.MaxBatchItems = 200
	}
	return &HistoryArchiveJob{sources: sources, fetcher: fetcher, writer: writer, pacer: pacer, opts: opts}
}

// Run archives all feeds. Feeds are independent; one failing feed never
// stops the others. The returned error summarizes the failures.
func (j *HistoryArchiveJob) Run(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.RecordArchiveRun(time.Since(start).Seconds()) }()

	sources, err := j.sources.ListFeedSources(ctx)
	if err != nil {
		return fmt.Errorf("list feed sources: %w", err)
	}

	log := logger.NewContextLogger(logger.Logger).WithContext(ctx)
	var failed, added atomic.Int64

	var g errgroup.Group
	g.SetLimit(j.opts.Concurrency)
	for _, source := range sources {
		if source == nil || source.RemoteURL == "" {
			continue
		}
		g.Go(func() error {
			n, err := j.archiveFeed(ctx, source)
			if err != nil {
				failed.Add(1)
				log.WarnContext(ctx, "feed archive failed",
					"feed_id", source.ID,
					"error", err,
				)
				return nil
			}
			added.Add(int64(n))
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "history archive run finished",
		"feeds", len(sources),
		"failed", failed.Load(),
		"added", added.Load(),
		"duration", time.Since(start),
	)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d feeds failed to archive", n, len(sources))
	}
	return nil
}

func (j *HistoryArchiveJob) archiveFeed(ctx context.Context, source *domain.FeedSource) (int, error) {
	if j.pacer != nil {
		if err := j.pacer.WaitForURL(ctx, source.RemoteURL); err != nil {
			return 0, fmt.Errorf("rate limiting failed: %w", err)
		}
	}

	resp, err := j.fetcher.Fetch(ctx, source.RemoteURL, feed_fetch_usecase.FeedFetchOptions(j.opts.FetchTimeout), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := feed_items_usecase.ReadCapped(resp, j.opts.MaxBytes)
	if err != nil {
		return 0, err
	}

	parsed, err := feed_parser.Parse(bytes.NewReader(body), source.ID)
	if err != nil {
		return 0, errors.NewMalformedUpstreamError("job", "HistoryArchiveJob", "parse_feed", err,
			map[string]interface{}{"feed_id": source.ID})
	}

	added := 0
	for _, batch := range chunk(parsed.Items, j.opts.MaxBatchItems) {
		result, err := j.writer.Execute(ctx, ArchiveIdentity, source.ID, batch)
		if result != nil {
			added += result.Added
		}
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

func chunk(items []*domain.HistoryItem, size int) [][]*domain.HistoryItem {
	var out [][]*domain.HistoryItem
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
