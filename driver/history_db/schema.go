package history_db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS feed_sources (
		id                  TEXT PRIMARY KEY,
		remote_url          TEXT NOT NULL DEFAULT '',
		allowed_media_hosts TEXT[] NOT NULL DEFAULT '{}',
		sort_order          INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS feed_history_items (
		id               BIGSERIAL PRIMARY KEY,
		feed_id          TEXT NOT NULL,
		item_key         TEXT NOT NULL,
		guid             TEXT,
		link             TEXT,
		title            TEXT NOT NULL DEFAULT '',
		pub_date         TEXT NOT NULL DEFAULT '',
		published_at     TIMESTAMPTZ,
		content          TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		thumbnail        TEXT NOT NULL DEFAULT '',
		author           TEXT NOT NULL DEFAULT '',
		enclosure_url    TEXT NOT NULL DEFAULT '',
		enclosure_type   TEXT NOT NULL DEFAULT '',
		enclosure_length TEXT NOT NULL DEFAULT '',
		feed_title       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_seen_at     TIMESTAMPTZ NOT NULL,
		CONSTRAINT feed_history_items_feed_key UNIQUE (feed_id, item_key)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS feed_history_items_feed_guid
		ON feed_history_items (feed_id, guid) WHERE guid IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS feed_history_items_feed_link
		ON feed_history_items (feed_id, link) WHERE link IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS feed_history_items_feed_seen
		ON feed_history_items (feed_id, last_seen_at)`,
	`CREATE INDEX IF NOT EXISTS feed_history_items_feed_order
		ON feed_history_items (feed_id, published_at DESC NULLS LAST, id DESC)`,
}

// EnsureSchema creates the tables and indexes if missing. Statements run one
// at a time and are each idempotent.
func (r *HistoryDBRepository) EnsureSchema(ctx context.Context) error {
	if r.pool == nil {
		return errNoPool
	}
	for i, stmt := range schemaStatements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
