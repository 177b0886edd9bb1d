package history_db

import (
	"context"
	"errors"
	"feedcore/domain"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

const findFeedSourceQuery = `
	SELECT id, remote_url, allowed_media_hosts, sort_order
	FROM feed_sources
	WHERE id = $1
`

const listFeedSourcesQuery = `
	SELECT id, remote_url, allowed_media_hosts, sort_order
	FROM feed_sources
	ORDER BY sort_order ASC, id ASC
`

// FindFeedSource returns nil, nil when no source has the given id.
func (r *HistoryDBRepository) FindFeedSource(ctx context.Context, feedID string) (*domain.FeedSource, error) {
	if r.pool == nil {
		return nil, errNoPool
	}
	var source domain.FeedSource
	err := r.pool.QueryRow(ctx, findFeedSourceQuery, feedID).
		Scan(&source.ID, &source.RemoteURL, &source.AllowedMediaHosts, &source.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find feed source", "feed_id", feedID, "error", err)
		return nil, fmt.Errorf("find feed source: %w", err)
	}
	return &source, nil
}

func (r *HistoryDBRepository) ListFeedSources(ctx context.Context) ([]*domain.FeedSource, error) {
	if r.pool == nil {
		return nil, errNoPool
	}
	rows, err := r.pool.Query(ctx, listFeedSourcesQuery)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list feed sources", "error", err)
		return nil, fmt.Errorf("list feed sources: %w", err)
	}
	defer rows.Close()

	var sources []*domain.FeedSource
	for rows.Next() {
		var source domain.FeedSource
		if err := rows.Scan(&source.ID, &source.RemoteURL, &source.AllowedMediaHosts, &source.SortOrder); err != nil {
			return nil, fmt.Errorf("scan feed source: %w", err)
		}
		sources = append(sources, &source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed sources: %w", err)
	}
	return sources, nil
}
