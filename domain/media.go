package domain

import (
	"fmt"
	"net/url"
)

// MediaMode selects how embedded media is referenced.
type MediaMode string

const (
	MediaModeProxy  MediaMode = "proxy"
	MediaModeDirect MediaMode = "direct"
)

// ParseMediaMode falls back to def on unknown values.
func ParseMediaMode(raw string, def MediaMode) MediaMode {
	switch MediaMode(raw) {
	case MediaModeProxy, MediaModeDirect:
		return MediaMode(raw)
	default:
		return def
	}
}

// MediaProxyPath is the route the proxied form points at.
const MediaProxyPath = "/v1/media/proxy"

// MediaURLs is the precomputed pair of references for one media URL.
type MediaURLs struct {
	Direct  string
	Proxied string
}

// NewMediaURLs builds both forms for a media URL discovered in feedID.
func NewMediaURLs(feedID, mediaURL string) MediaURLs {
	if mediaURL == "" {
		return MediaURLs{}
	}
	q := url.Values{}
	q.Set("feed", feedID)
	q.Set("url", mediaURL)
	return MediaURLs{
		Direct:  mediaURL,
		Proxied: fmt.Sprintf("%s?%s", MediaProxyPath, q.Encode()),
	}
}

// SelectURL picks the reference to render for the given mode.
func SelectURL(media MediaURLs, mode MediaMode) string {
	if mode == MediaModeDirect {
		return media.Direct
	}
	return media.Proxied
}
