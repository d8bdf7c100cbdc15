// Package fetch retrieves articles for a single (topic, region) pair.
//
// Two backends exist: ProxyFetcher asks an RSS-to-JSON proxy and decodes its
// JSON envelope; FeedFetcher downloads the news source RSS and parses it with
// gofeed. Both produce normalized news.Article values.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

// ErrStatus is returned when the proxy answers with a non-"ok" status.
var ErrStatus = errors.New("proxy returned non-ok status")

// Fetcher retrieves articles for one topic in one region.
// Returned errors are per-pair; callers decide whether to swallow them.
type Fetcher interface {
	Fetch(ctx context.Context, topic string, region selection.Region) ([]news.Article, error)
}

// Options configure either backend.
type Options struct {
	ProxyURL  string
	NewsURL   string
	Count     int
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables pacing
	UserAgent string
}

// OptionsFromConfig maps the feed section of the config onto Options.
func OptionsFromConfig(cfg config.FeedConfig) Options {
	return Options{
		ProxyURL:  cfg.ProxyURL,
		NewsURL:   cfg.NewsURL,
		Count:     cfg.Count,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		UserAgent: cfg.UserAgent,
	}
}

// New creates the Fetcher for the configured backend.
func New(cfg config.FeedConfig) (Fetcher, error) {
	opts := OptionsFromConfig(cfg)
	switch cfg.Backend {
	case config.BackendProxy, "":
		return NewProxyFetcher(opts), nil
	case config.BackendDirect:
		return NewFeedFetcher(opts), nil
	default:
		return nil, fmt.Errorf("unknown feed backend %q", cfg.Backend)
	}
}

// client holds what both backends share: an HTTP client and a request pacer.
type client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newClient(opts Options) client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return client{
		http:      &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: opts.UserAgent,
	}
}

// get performs a paced GET and returns the response for a 200 status.
// The caller must close the body.
func (c client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}
