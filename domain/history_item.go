package domain

import (
	"strings"
	"time"
)

// Enclosure is the media attachment of a feed item.
type Enclosure struct {
	URL    string `json:"url,omitempty"`
	Type   string `json:"type,omitempty"`
	Length string `json:"length,omitempty"`
}

// HistoryItem is one archived feed item.
type HistoryItem struct {
	FeedID      string     `json:"feed_id"`
	GUID        string     `json:"guid,omitempty"`
	Link        string     `json:"link,omitempty"`
	Title       string     `json:"title"`
	PubDate     string     `json:"pub_date"`
	Content     string     `json:"content,omitempty"`
	Description string     `json:"description,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Author      string     `json:"author,omitempty"`
	Enclosure   *Enclosure `json:"enclosure,omitempty"`
	FeedTitle   string     `json:"feed_title,omitempty"`
	LastSeenAt  time.Time  `json:"last_seen_at,omitzero"`
}

// IdentityKey returns the guid if present, else the link. An empty key means
// the item cannot be deduplicated and must be dropped.
func (h *HistoryItem) IdentityKey() string {
	if guid := strings.TrimSpace(h.GUID); guid != "" {
		return guid
	}
	return strings.TrimSpace(h.Link)
}

// HistoryPage is one page of archived items plus the full non-expired count.
type HistoryPage struct {
	Items []*HistoryItem `json:"items"`
	Total int            `json:"total"`
}

// UpsertResult reports the outcome of a history upsert.
type UpsertResult struct {
	Added   int `json:"added"`
	Total   int `json:"total"`
	Expired int `json:"expired"`
}
