package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abelbrown/headlines/internal/config"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

const okPayload = `{
  "status": "ok",
  "feed": {"title": "\"SPORTS\" - Google News"},
  "items": [
    {"title": "Cup Final Tonight - Daily Sport", "link": "https://example.com/1", "pubDate": "2024-05-01 18:00:00", "description": "<a href=\"#\">Cup final</a>"},
    {"title": "No Source Here", "link": "https://example.com/2", "pubDate": "garbage"}
  ]
}`

// recorder keeps the requests a test server has received.
type recorder struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (r *recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
}

func (r *recorder) all() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*http.Request, len(r.reqs))
	copy(out, r.reqs)
	return out
}

func proxyServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func testOptions(proxyURL string) Options {
	return Options{
		ProxyURL:  proxyURL,
		NewsURL:   "https://news.example.com",
		Count:     10,
		Timeout:   5 * time.Second,
		UserAgent: "Headlines/test",
	}
}

func TestProxyFetcherFetch(t *testing.T) {
	server, seen := proxyServer(t, http.StatusOK, okPayload)
	f := NewProxyFetcher(testOptions(server.URL))

	articles, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "CUP FINAL TONIGHT" || first.Source != "DAILY SPORT" {
		t.Errorf("unexpected normalization %q / %q", first.Title, first.Source)
	}
	if first.PublishedAt != "MAY 1, 2024" {
		t.Errorf("unexpected date %q", first.PublishedAt)
	}
	if first.Topic != "SPORTS" || first.Region != "WORLDWIDE" {
		t.Errorf("unexpected topic/region %q/%q", first.Topic, first.Region)
	}
	if articles[1].Source != news.UnknownSource || articles[1].PublishedAt != news.InvalidDate {
		t.Errorf("unexpected fallbacks %q / %q", articles[1].Source, articles[1].PublishedAt)
	}

	req := seen.all()[0]
	if got := req.URL.Query().Get("rss_url"); !strings.HasPrefix(got, "https://news.example.com/rss/search?q=SPORTS&hl=en-US") {
		t.Errorf("unexpected rss_url %q", got)
	}
	if req.Header.Get("User-Agent") != "Headlines/test" {
		t.Errorf("unexpected user agent %q", req.Header.Get("User-Agent"))
	}
}

func TestProxyFetcherNonOKStatus(t *testing.T) {
	server, _ := proxyServer(t, http.StatusOK, `{"status":"error","message":"rss_url parameter is required.","items":[]}`)
	f := NewProxyFetcher(testOptions(server.URL))

	articles, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide)
	if !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}

func TestProxyFetcherMalformedJSON(t *testing.T) {
	server, _ := proxyServer(t, http.StatusOK, `{"status": "ok", "items": [`)
	f := NewProxyFetcher(testOptions(server.URL))

	if _, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide); err == nil {
		t.Error("expected decode error")
	}
}

func TestProxyFetcherHTTPError(t *testing.T) {
	server, _ := proxyServer(t, http.StatusTooManyRequests, `{}`)
	f := NewProxyFetcher(testOptions(server.URL))

	_, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected HTTP 429 error, got %v", err)
	}
}

func TestProxyFetcherUnreachable(t *testing.T) {
	f := NewProxyFetcher(testOptions("http://localhost:99999/nonexistent"))
	if _, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide); err == nil {
		t.Error("expected error for unreachable proxy")
	}
}

func TestProxyFetcherCancelledContext(t *testing.T) {
	server, seen := proxyServer(t, http.StatusOK, okPayload)
	f := NewProxyFetcher(testOptions(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Fetch(ctx, "SPORTS", selection.Worldwide); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(seen.all()) != 0 {
		t.Error("no request should be sent with a cancelled context")
	}
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"SPACE" - Google News</title>
    <item>
      <title>Probe Reaches Orbit - Space Weekly</title>
      <link>https://example.com/probe</link>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
      <description>&lt;a href="https://example.com/probe"&gt;Probe reaches orbit&lt;/a&gt;</description>
    </item>
    <item>
      <title>Second - Wire</title>
      <link>https://example.com/second</link>
      <pubDate>Mon, 01 Jan 2024 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Third - Wire</title>
      <link>https://example.com/third</link>
    </item>
  </channel>
</rss>`

func TestFeedFetcherFetch(t *testing.T) {
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFeed))
	}))
	defer server.Close()

	opts := testOptions("")
	opts.NewsURL = server.URL
	opts.Count = 2
	f := NewFeedFetcher(opts)

	region := selection.Region{Code: "IN", Language: "en-IN", Name: "INDIA"}
	articles, err := f.Fetch(context.Background(), "SPACE", region)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected count cap of 2, got %d", len(articles))
	}
	if articles[0].Title != "PROBE REACHES ORBIT" || articles[0].Source != "SPACE WEEKLY" {
		t.Errorf("unexpected article %+v", articles[0])
	}
	if articles[0].PublishedAt != "JAN 1, 2024" {
		t.Errorf("unexpected date %q", articles[0].PublishedAt)
	}
	if articles[0].Summary != "Probe reaches orbit" {
		t.Errorf("unexpected summary %q", articles[0].Summary)
	}
	if articles[0].Region != "INDIA" {
		t.Errorf("unexpected region %q", articles[0].Region)
	}
	if path := rec.all()[0].URL.RequestURI(); path != "/rss/search?q=SPACE&hl=en-IN&gl=IN&ceid=IN:en" {
		t.Errorf("unexpected request path %q", path)
	}
}

func TestFeedFetcherInvalidXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not valid xml"))
	}))
	defer server.Close()

	opts := testOptions("")
	opts.NewsURL = server.URL
	if _, err := NewFeedFetcher(opts).Fetch(context.Background(), "SPACE", selection.Worldwide); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.DefaultConfig().Feed

	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := f.(*ProxyFetcher); !ok {
		t.Errorf("expected *ProxyFetcher, got %T", f)
	}

	cfg.Backend = config.BackendDirect
	f, err = New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := f.(*FeedFetcher); !ok {
		t.Errorf("expected *FeedFetcher, got %T", f)
	}

	cfg.Backend = "telepathy"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRateLimiterPaces(t *testing.T) {
	server, seen := proxyServer(t, http.StatusOK, okPayload)
	opts := testOptions(server.URL)
	opts.RateLimit = 20 // one request every 50ms
	f := NewProxyFetcher(opts)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), "SPORTS", selection.Worldwide); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("expected pacing of ~100ms for 3 requests, took %s", elapsed)
	}
	if len(seen.all()) != 3 {
		t.Errorf("expected 3 requests, got %d", len(seen.all()))
	}
}
