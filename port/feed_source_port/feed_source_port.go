package feed_source_port

import (
	"context"
	"feedcore/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=feed_source_port.go -destination=../../mocks/mock_feed_source_port.go -package=mocks

// FeedSourcePort reads configured feed sources.
type FeedSourcePort interface {
	// FindFeedSource returns a FeedNotFound error for unknown ids.
	FindFeedSource(ctx context.Context, feedID string) (*domain.FeedSource, error)
	ListFeedSources(ctx context.Context) ([]*domain.FeedSource, error)
}
