package sanitizer

import (
	"feedcore/domain"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are safe for concurrent use once built.
var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// SanitizeHistoryItem returns a cleaned copy of item. Plain-text fields lose
// all markup, body fields keep user-generated-content markup only, and URL
// fields that are not absolute http(s) are cleared. GUID is left untouched
// because it is the identity key.
func SanitizeHistoryItem(item *domain.HistoryItem) *domain.HistoryItem {
	if item == nil {
		return nil
	}
	clean := *item
	clean.Title = plainText(item.Title)
	clean.Author = plainText(item.Author)
	clean.FeedTitle = plainText(item.FeedTitle)
	clean.PubDate = plainText(item.PubDate)
	clean.Content = ugcPolicy.Sanitize(item.Content)
	clean.Description = ugcPolicy.Sanitize(item.Description)
	clean.Link = httpURL(item.Link)
	clean.Thumbnail = httpURL(item.Thumbnail)

	if item.Enclosure != nil {
		enc := domain.Enclosure{
			URL:    httpURL(item.Enclosure.URL),
			Type:   plainText(item.Enclosure.Type),
			Length: plainText(item.Enclosure.Length),
		}
		clean.Enclosure = nil
		if enc.URL != "" {
			clean.Enclosure = &enc
		}
	}
	return &clean
}

// plainText strips tags and decodes the entities bluemonday leaves behind.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func httpURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return raw
	default:
		return ""
	}
}
