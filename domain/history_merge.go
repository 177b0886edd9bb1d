package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// MergeHistory merges a freshly fetched batch with an archive batch keyed by
// identity. The fresh version of an item wins. Two items are the same when
// they share an identity key or a non-empty link, matching the store's unique
// indexes. Items without an identity key are dropped. The result is ordered by
// publication date descending; items whose date cannot be parsed sort last,
// and ties are broken by identity key.
func MergeHistory(fresh, archived []*HistoryItem) []*HistoryItem {
	merged := make([]*HistoryItem, 0, len(fresh)+len(archived))
	seenKeys := make(map[string]struct{}, len(fresh)+len(archived))
	seenLinks := make(map[string]struct{}, len(fresh)+len(archived))

	add := func(item *HistoryItem) {
		if item == nil {
			return
		}
		key := item.IdentityKey()
		if key == "" {
			return
		}
		if _, dup := seenKeys[key]; dup {
			return
		}
		link := strings.TrimSpace(item.Link)
		if link != "" {
			if _, dup := seenLinks[link]; dup {
				return
			}
			seenLinks[link] = struct{}{}
		}
		seenKeys[key] = struct{}{}
		merged = append(merged, item)
	}

	for _, item := range fresh {
		add(item)
	}
	for _, item := range archived {
		add(item)
	}

	SortByPubDateDesc(merged)
	return merged
}

// SortByPubDateDesc sorts items newest first in place.
func SortByPubDateDesc(items []*HistoryItem) {
	parsed := make(map[*HistoryItem]time.Time, len(items))
	for _, item := range items {
		if t, ok := ParsePubDate(item.PubDate); ok {
			parsed[item] = t
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := parsed[items[i]]
		tj, jok := parsed[items[j]]
		switch {
		case iok && jok && !ti.Equal(tj):
			return ti.After(tj)
		case iok != jok:
			return iok
		default:
			return items[i].IdentityKey() < items[j].IdentityKey()
		}
	})
}

// ParsePubDate parses the free-form dates found in RSS and Atom feeds.
func ParsePubDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Paginate returns the window [offset, offset+limit). A zero limit means no cap.
func Paginate(items []*HistoryItem, limit, offset int) []*HistoryItem {
	if offset >= len(items) {
		return []*HistoryItem{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
