package history_db

import (
	"context"
	"errors"
	"feedcore/domain"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const deleteExpiredQuery = `
	DELETE FROM feed_history_items
	WHERE feed_id = $1 AND last_seen_at < $2
`

// ON CONFLICT without a target covers the (feed_id, item_key) constraint and
// both partial unique indexes on guid and link.
const insertIfAbsentQuery = `
	INSERT INTO feed_history_items (
		feed_id, item_key, guid, link, title, pub_date, published_at,
		content, description, thumbnail, author,
		enclosure_url, enclosure_type, enclosure_length, feed_title, last_seen_at
	)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT DO NOTHING
	RETURNING id
`

const refreshLastSeenQuery = `
	UPDATE feed_history_items
	SET last_seen_at = GREATEST(last_seen_at, $5)
	WHERE feed_id = $1
	  AND (item_key = $2
	       OR (guid IS NOT NULL AND guid = NULLIF($3, ''))
	       OR (link IS NOT NULL AND link = NULLIF($4, '')))
`

const countHistoryQuery = `
	SELECT COUNT(*) FROM feed_history_items
	WHERE feed_id = $1 AND last_seen_at >= $2
`

const historyColumns = `
	feed_id, COALESCE(guid, ''), COALESCE(link, ''), title, pub_date,
	content, description, thumbnail, author,
	enclosure_url, enclosure_type, enclosure_length, feed_title, last_seen_at
`

const listHistoryQuery = `SELECT` + historyColumns + `
	FROM feed_history_items
	WHERE feed_id = $1 AND last_seen_at >= $2
	ORDER BY published_at DESC NULLS LAST, id DESC
	LIMIT $3 OFFSET $4
`

const listHistoryUnboundedQuery = `SELECT` + historyColumns + `
	FROM feed_history_items
	WHERE feed_id = $1 AND last_seen_at >= $2
	ORDER BY published_at DESC NULLS LAST, id DESC
	OFFSET $3
`

// DeleteExpiredHistory removes rows of feedID whose last_seen_at is before cutoff.
func (r *HistoryDBRepository) DeleteExpiredHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error) {
	if r.pool == nil {
		return 0, errNoPool
	}
	tag, err := r.pool.Exec(ctx, deleteExpiredQuery, feedID, cutoff)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete expired history", "feed_id", feedID, "error", err)
		return 0, fmt.Errorf("delete expired history: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// InsertHistoryItemIfAbsent inserts item unless a row with the same identity
// already exists. An existing row only gets its last_seen_at refreshed; its
// content is never overwritten. The returned bool is true for a new row.
func (r *HistoryDBRepository) InsertHistoryItemIfAbsent(ctx context.Context, item *domain.HistoryItem, seenAt time.Time) (bool, error) {
	if r.pool == nil {
		return false, errNoPool
	}
	key := item.IdentityKey()
	if key == "" {
		return false, errors.New("history item has neither guid nor link")
	}

	guid := strings.TrimSpace(item.GUID)
	link := strings.TrimSpace(item.Link)

	var publishedAt *time.Time
	if t, ok := domain.ParsePubDate(item.PubDate); ok {
		publishedAt = &t
	}

	var encURL, encType, encLength string
	if item.Enclosure != nil {
		encURL, encType, encLength = item.Enclosure.URL, item.Enclosure.Type, item.Enclosure.Length
	}

	var id int64
	err := r.pool.QueryRow(ctx, insertIfAbsentQuery,
		item.FeedID, key, guid, link, item.Title, item.PubDate, publishedAt,
		item.Content, item.Description, item.Thumbnail, item.Author,
		encURL, encType, encLength, item.FeedTitle, seenAt,
	).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		slog.ErrorContext(ctx, "failed to insert history item", "feed_id", item.FeedID, "item_key", key, "error", err)
		return false, fmt.Errorf("insert history item: %w", err)
	}

	if _, err := r.pool.Exec(ctx, refreshLastSeenQuery, item.FeedID, key, guid, link, seenAt); err != nil {
		slog.ErrorContext(ctx, "failed to refresh history item", "feed_id", item.FeedID, "item_key", key, "error", err)
		return false, fmt.Errorf("refresh history item: %w", err)
	}
	return false, nil
}

// CountHistory counts rows of feedID seen at or after cutoff.
func (r *HistoryDBRepository) CountHistory(ctx context.Context, feedID string, cutoff time.Time) (int, error) {
	if r.pool == nil {
		return 0, errNoPool
	}
	var count int
	if err := r.pool.QueryRow(ctx, countHistoryQuery, feedID, cutoff).Scan(&count); err != nil {
		slog.ErrorContext(ctx, "failed to count history", "feed_id", feedID, "error", err)
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// ListHistory returns one page of non-expired rows, newest publication first.
// A zero limit returns everything from offset on.
func (r *HistoryDBRepository) ListHistory(ctx context.Context, feedID string, cutoff time.Time, limit, offset int) ([]*domain.HistoryItem, error) {
	if r.pool == nil {
		return nil, errNoPool
	}
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.pool.Query(ctx, listHistoryQuery, feedID, cutoff, limit, offset)
	} else {
		rows, err = r.pool.Query(ctx, listHistoryUnboundedQuery, feedID, cutoff, offset)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to list history", "feed_id", feedID, "error", err)
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.HistoryItem, 0)
	for rows.Next() {
		var item domain.HistoryItem
		var encURL, encType, encLength string
		if err := rows.Scan(
			&item.FeedID, &item.GUID, &item.Link, &item.Title, &item.PubDate,
			&item.Content, &item.Description, &item.Thumbnail, &item.Author,
			&encURL, &encType, &encLength, &item.FeedTitle, &item.LastSeenAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if encURL != "" {
			item.Enclosure = &domain.Enclosure{URL: encURL, Type: encType, Length: encLength}
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return items, nil
}
