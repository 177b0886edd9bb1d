package history_port

import (
	"context"
	"feedcore/domain"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -source=history_port.go -destination=../../mocks/mock_history_port.go -package=mocks

// HistoryPort is the archive of feed items. Every method is a single
// statement; callers sequence them.
type HistoryPort interface {
	// DeleteExpiredHistory removes rows last seen before cutoff and returns how many.
	DeleteExpiredHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error)
	// InsertHistoryItemIfAbsent reports whether the item was new. Existing rows
	// only get their last seen time refreshed.
	InsertHistoryItemIfAbsent(ctx context.Context, item *domain.HistoryItem, seenAt time.Time) (bool, error)
	CountHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error)
	// ListHistory pages by pub date descending. limit 0 returns every row.
	ListHistory(ctx context.Context, feedID string, cutoff time.Time, limit, offset int) ([]*domain.HistoryItem, error)
}
