package history_upsert_usecase

import (
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/history_port"
	"feedcore/port/rate_limiter_port"
	"feedcore/utils/errors"
	"feedcore/utils/logger"
	"feedcore/utils/metrics"
	"feedcore/utils/sanitizer"
	"strings"
	"time"
)

const (
	defaultRetention     = 60 * 24 * time.Hour
	defaultMaxBatchItems = 200
)

// HistoryUpsertUsecase records a batch of items into the archive. The store
// has no multi-statement transactions, so the order of steps matters: the
// sweep always runs before any insert, and each insert is independent.
type HistoryUpsertUsecase struct {
	limiter       rate_limiter_port.WriteRateLimiterPort
	sources       feed_source_port.FeedSourcePort
	history       history_port.HistoryPort
	retention     time.Duration
	maxBatchItems int
	now           func() time.Time
}

func NewHistoryUpsertUsecase(
	limiter rate_limiter_port.WriteRateLimiterPort,
	sources feed_source_port.FeedSourcePort,
	history history_port.HistoryPort,
	retention time.Duration,
	maxBatchItems int,
) *HistoryUpsertUsecase {
	if retention <= 0 {
		retention = defaultRetention
	}
	if maxBatchItems <= 0 {
		maxBatchItems = defaultMaxBatchItems
	}
	return &HistoryUpsertUsecase{
		limiter:       limiter,
		sources:       sources,
		history:       history,
		retention:     retention,
		maxBatchItems: maxBatchItems,
		now:           time.Now,
	}
}

// Execute upserts items for feedID on behalf of identity. A nil limiter
// disables throttling, which is how server-side callers use it.
func (u *HistoryUpsertUsecase) Execute(ctx context.Context, identity, feedID string, items []*domain.HistoryItem) (*domain.UpsertResult, error) {
	// 1. Rate limit
	if u.limiter != nil && u.limiter.ShouldThrottle(ctx, identity) {
		return nil, errors.NewRateLimitExceededError("usecase", "HistoryUpsertUsecase", "Execute",
			map[string]interface{}{"feed_id": feedID})
	}

	// 2. Batch ceiling
	if len(items) > u.maxBatchItems {
		return nil, errors.NewBatchTooLargeError("usecase", "HistoryUpsertUsecase", "Execute",
			map[string]interface{}{"items": len(items), "max_items": u.maxBatchItems})
	}

	// 3. Feed must exist
	feedID = strings.TrimSpace(feedID)
	if feedID == "" {
		return nil, errors.NewValidationContextError("feed id is required", "usecase", "HistoryUpsertUsecase", "Execute", nil)
	}
	if _, err := u.sources.FindFeedSource(ctx, feedID); err != nil {
		return nil, err
	}

	// 4. Sweep before insert
	now := u.now().UTC()
	cutoff := now.Add(-u.retention)
	expired, err := u.history.DeleteExpiredHistory(ctx, feedID, cutoff)
	if err != nil {
		return nil, err
	}

	// 5. Sequential insert-if-absent; one bad item never fails the batch
	log := logger.NewContextLogger(logger.Logger).WithContext(ctx)
	added, dropped, failed := 0, 0, 0
	for _, raw := range items {
		if ctx.Err() != nil {
			// Inserted rows stay stored, so their counts go back with the error.
			// Total is left at zero because it was never counted.
			metrics.RecordHistoryUpsert(added, expired, dropped, failed)
			return &domain.UpsertResult{Added: added, Expired: expired},
				errors.NewOperationTimeoutError("usecase", "HistoryUpsertUsecase", "insert_items", ctx.Err(),
					map[string]interface{}{"feed_id": feedID, "added": added})
		}
		if raw == nil {
			dropped++
			continue
		}

		scoped := *raw
		scoped.FeedID = feedID
		item := sanitizer.SanitizeHistoryItem(&scoped)
		if item.IdentityKey() == "" {
			dropped++
			continue
		}

		isNew, err := u.history.InsertHistoryItemIfAbsent(ctx, item, now)
		if err != nil {
			failed++
			log.WarnContext(ctx, "history item insert failed, skipping",
				"feed_id", feedID,
				"item_key", item.IdentityKey(),
				"error", err,
			)
			continue
		}
		if isNew {
			added++
		}
	}

	// 6. Total after the batch
	total, err := u.history.CountHistory(ctx, feedID, cutoff)
	if err != nil {
		return nil, err
	}

	metrics.RecordHistoryUpsert(added, expired, dropped, failed)
	log.InfoContext(ctx, "history upserted",
		"feed_id", feedID,
		"received", len(items),
		"added", added,
		"expired", expired,
		"dropped", dropped,
		"failed", failed,
		"total", total,
	)

	return &domain.UpsertResult{Added: added, Total: total, Expired: expired}, nil
}
