package history_read_usecase

import (
	"context"
	"feedcore/domain"
	"feedcore/port/feed_source_port"
	"feedcore/port/history_port"
	"feedcore/utils/errors"
	"strings"
	"time"
)

type HistoryReadUsecase struct {
	sources   feed_source_port.FeedSourcePort
	history   history_port.HistoryPort
	retention time.Duration
	now       func() time.Time
}

func NewHistoryReadUsecase(sources feed_source_port.FeedSourcePort, history history_port.HistoryPort, retention time.Duration) *HistoryReadUsecase {
	if retention <= 0 {
		retention = 60 * 24 * time.Hour
	}
	return &HistoryReadUsecase{sources: sources, history: history, retention: retention, now: time.Now}
}

// Execute returns one page of archived items and the full non-expired count.
// limit 0 means no cap.
func (u *HistoryReadUsecase) Execute(ctx context.Context, feedID string, limit, offset int) (*domain.HistoryPage, error) {
	if limit < 0 || offset < 0 {
		return nil, errors.NewValidationContextError("limit and offset must not be negative", "usecase", "HistoryReadUsecase", "Execute",
			map[string]interface{}{"limit": limit, "offset": offset})
	}
	feedID = strings.TrimSpace(feedID)
	if feedID == "" {
		return nil, errors.NewValidationContextError("feed id is required", "usecase", "HistoryReadUsecase", "Execute", nil)
	}
	if _, err := u.sources.FindFeedSource(ctx, feedID); err != nil {
		return nil, err
	}

	cutoff := u.now().UTC().Add(-u.retention)
	items, err := u.history.ListHistory(ctx, feedID, cutoff, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := u.history.CountHistory(ctx, feedID, cutoff)
	if err != nil {
		return nil, err
	}

	return &domain.HistoryPage{Items: items, Total: total}, nil
}
