package fetch

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

// FeedFetcher downloads the news source RSS directly and parses it locally.
type FeedFetcher struct {
	client
	newsURL string
	count   int
}

// NewFeedFetcher creates a FeedFetcher.
func NewFeedFetcher(opts Options) *FeedFetcher {
	count := opts.Count
	if count <= 0 {
		count = 10
	}
	return &FeedFetcher{
		client:  newClient(opts),
		newsURL: opts.NewsURL,
		count:   count,
	}
}

// Fetch implements Fetcher. At most count items are returned.
func (f *FeedFetcher) Fetch(ctx context.Context, topic string, region selection.Region) ([]news.Article, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	resp, err := f.get(ctx, SearchURL(f.newsURL, topic, region))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > f.count {
		items = items[:f.count]
	}

	raw := make([]news.Item, 0, len(items))
	for _, it := range items {
		raw = append(raw, convertFeedItem(it))
	}
	return news.NormalizeAll(raw, topic, region.Name), nil
}

// convertFeedItem maps a gofeed item onto a raw news item.
func convertFeedItem(it *gofeed.Item) news.Item {
	pubDate := it.Published
	if pubDate == "" {
		pubDate = it.Updated
	}
	return news.Item{
		Title:       it.Title,
		Link:        it.Link,
		PubDate:     pubDate,
		Description: it.Description,
	}
}
