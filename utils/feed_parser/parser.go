package feed_parser

import (
	"feedcore/domain"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParsedFeed is a feed reduced to the fields the archive keeps.
type ParsedFeed struct {
	Title string
	Items []*domain.HistoryItem
}

// Parse reads an RSS, Atom or JSON feed. Items keep their upstream order.
func Parse(r io.Reader, feedID string) (*ParsedFeed, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(feed.Title)
	items := make([]*domain.HistoryItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, toHistoryItem(feedID, title, it))
	}
	return &ParsedFeed{Title: title, Items: items}, nil
}

func toHistoryItem(feedID, feedTitle string, it *gofeed.Item) *domain.HistoryItem {
	item := &domain.HistoryItem{
		FeedID:      feedID,
		GUID:        strings.TrimSpace(it.GUID),
		Link:        strings.TrimSpace(it.Link),
		Title:       strings.TrimSpace(it.Title),
		PubDate:     it.Published,
		Content:     it.Content,
		Description: it.Description,
		Thumbnail:   ExtractImageURL(it),
		FeedTitle:   feedTitle,
	}
	if item.PubDate == "" {
		item.PubDate = it.Updated
	}

	switch {
	case it.Author != nil && it.Author.Name != "":
		item.Author = it.Author.Name
	case len(it.Authors) > 0 && it.Authors[0] != nil:
		item.Author = it.Authors[0].Name
	}

	for _, enc := range it.Enclosures {
		if enc != nil && enc.URL != "" {
			item.Enclosure = &domain.Enclosure{URL: enc.URL, Type: enc.Type, Length: enc.Length}
			break
		}
	}
	return item
}
