package feed_parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ExtractImageURL extracts the best image URL from a gofeed Item.
// Priority: Item.Image > media:thumbnail > media:content (medium=image) >
// Enclosure (image/*) > first <img> in the item body.
// Only absolute http/https URLs are returned.
func ExtractImageURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		if isValidImageScheme(item.Image.URL) {
			return item.Image.URL
		}
	}

	if mediaExt, ok := item.Extensions["media"]; ok {
		if thumbnails, ok := mediaExt["thumbnail"]; ok {
			for _, thumb := range thumbnails {
				if u := thumb.Attrs["url"]; u != "" && isValidImageScheme(u) {
					return u
				}
			}
		}

		if contents, ok := mediaExt["content"]; ok {
			for _, content := range contents {
				if content.Attrs["medium"] == "image" {
					if u := content.Attrs["url"]; u != "" && isValidImageScheme(u) {
						return u
					}
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" && isValidImageScheme(enc.URL) {
			return enc.URL
		}
	}

	for _, body := range []string{item.Content, item.Description} {
		if u := firstImageInHTML(body, item.Link); u != "" {
			return u
		}
	}

	return ""
}

// firstImageInHTML resolves relative sources against base.
func firstImageInHTML(body, base string) string {
	if !strings.Contains(body, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	baseURL, _ := url.Parse(base)
	var found string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		ref, err := url.Parse(src)
		if err != nil {
			return true
		}
		if baseURL != nil && !ref.IsAbs() {
			ref = baseURL.ResolveReference(ref)
		}
		if isValidImageScheme(ref.String()) {
			found = ref.String()
			return false
		}
		return true
	})
	return found
}

func isValidImageScheme(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
