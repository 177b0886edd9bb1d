package history_gateway

import (
	"context"
	"feedcore/domain"
	"feedcore/driver/history_db"
	"feedcore/utils/errors"
	"time"
)

// HistoryGateway maps driver failures onto database errors.
type HistoryGateway struct {
	db *history_db.HistoryDBRepository
}

func NewHistoryGateway(db *history_db.HistoryDBRepository) *HistoryGateway {
	return &HistoryGateway{db: db}
}

func (g *HistoryGateway) DeleteExpiredHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error) {
	deleted, err := g.db.DeleteExpiredHistory(ctx, feedID, cutoff)
	if err != nil {
		return 0, errors.NewDatabaseContextError("failed to delete expired history", "gateway", "HistoryGateway", "DeleteExpiredHistory", err,
			map[string]interface{}{"feed_id": feedID})
	}
	return deleted, nil
}

func (g *HistoryGateway) InsertHistoryItemIfAbsent(ctx context.Context, item *domain.HistoryItem, seenAt time.Time) (bool, error) {
	added, err := g.db.InsertHistoryItemIfAbsent(ctx, item, seenAt)
	if err != nil {
		return false, errors.NewDatabaseContextError("failed to insert history item", "gateway", "HistoryGateway", "InsertHistoryItemIfAbsent", err,
			map[string]interface{}{"feed_id": item.FeedID, "item_key": item.IdentityKey()})
	}
	return added, nil
}

func (g *HistoryGateway) CountHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error) {
	count, err := g.db.CountHistory(ctx, feedID, cutoff)
	if err != nil {
		return 0, errors.NewDatabaseContextError("failed to count history", "gateway", "HistoryGateway", "CountHistory", err,
			map[string]interface{}{"feed_id": feedID})
	}
	return count, nil
}

func (g *HistoryGateway) ListHistory(ctx context.Context, feedID string, cutoff time.Time, limit, offset int) ([]*domain.HistoryItem, error) {
	items, err := g.db.ListHistory(ctx, feedID, cutoff, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseContextError("failed to list history", "gateway", "HistoryGateway", "ListHistory", err,
			map[string]interface{}{"feed_id": feedID, "limit": limit, "offset": offset})
	}
	return items, nil
}
