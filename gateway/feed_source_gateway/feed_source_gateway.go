package feed_source_gateway

import (
	"context"
	"feedcore/domain"
	"feedcore/driver/history_db"
	"feedcore/utils/errors"
)

type FeedSourceGateway struct {
	db *history_db.HistoryDBRepository
}

func NewFeedSourceGateway(db *history_db.HistoryDBRepository) *FeedSourceGateway {
	return &FeedSourceGateway{db: db}
}

// FindFeedSource turns a missing row into a FeedNotFound error.
func (g *FeedSourceGateway) FindFeedSource(ctx context.Context, feedID string) (*domain.FeedSource, error) {
	source, err := g.db.FindFeedSource(ctx, feedID)
	if err != nil {
		return nil, errors.NewDatabaseContextError("failed to find feed source", "gateway", "FeedSourceGateway", "FindFeedSource", err,
			map[string]interface{}{"feed_id": feedID})
	}
	if source == nil {
		return nil, errors.NewFeedNotFoundError("gateway", "FeedSourceGateway", "FindFeedSource",
			map[string]interface{}{"feed_id": feedID})
	}
	return source, nil
}

func (g *FeedSourceGateway) ListFeedSources(ctx context.Context) ([]*domain.FeedSource, error) {
	sources, err := g.db.ListFeedSources(ctx)
	if err != nil {
		return nil, errors.NewDatabaseContextError("failed to list feed sources", "gateway", "FeedSourceGateway", "ListFeedSources", err, nil)
	}
	return sources, nil
}
