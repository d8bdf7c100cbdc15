package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

// maxProxyBody bounds how much of a proxy response is read.
const maxProxyBody = 4 << 20

// proxyResponse is the RSS-to-JSON envelope.
type proxyResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Items   []proxyItem `json:"items"`
}

type proxyItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
}

// ProxyFetcher fetches articles through an RSS-to-JSON proxy.
type ProxyFetcher struct {
	client
	proxyURL string
	newsURL  string
	count    int
}

// NewProxyFetcher creates a ProxyFetcher.
func NewProxyFetcher(opts Options) *ProxyFetcher {
	count := opts.Count
	if count <= 0 {
		count = 10
	}
	return &ProxyFetcher{
		client:   newClient(opts),
		proxyURL: opts.ProxyURL,
		newsURL:  opts.NewsURL,
		count:    count,
	}
}

// Fetch implements Fetcher.
func (f *ProxyFetcher) Fetch(ctx context.Context, topic string, region selection.Region) ([]news.Article, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	resp, err := f.get(ctx, ProxyURL(f.proxyURL, f.newsURL, topic, region, f.count))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload proxyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProxyBody)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if payload.Status != "ok" {
		if payload.Message != "" {
			return nil, fmt.Errorf("%w: %q: %s", ErrStatus, payload.Status, payload.Message)
		}
		return nil, fmt.Errorf("%w: %q", ErrStatus, payload.Status)
	}

	raw := make([]news.Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		raw = append(raw, news.Item{
			Title:       it.Title,
			Link:        it.Link,
			PubDate:     it.PubDate,
			Description: it.Description,
		})
	}
	return news.NormalizeAll(raw, topic, region.Name), nil
}
