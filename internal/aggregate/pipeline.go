// Package aggregate runs one aggregation: every topic against every region,
// merged in topic-major order and deduplicated by link.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/headlines/internal/fetch"
	"github.com/abelbrown/headlines/internal/logging"
	"github.com/abelbrown/headlines/internal/news"
	"github.com/abelbrown/headlines/internal/selection"
)

var (
	// ErrNoTopics is returned when a run is started without topics.
	ErrNoTopics = errors.New("no topics selected")

	// ErrNoRegions is returned when a run is started without regions.
	ErrNoRegions = errors.New("no regions selected")
)

// defaultPairTimeout bounds a single (topic, region) fetch.
const defaultPairTimeout = 30 * time.Second

// PairStatus records what one (topic, region) fetch produced.
// A failed pair has Err set and Count zero; an empty pair has neither.
type PairStatus struct {
	Topic  string
	Region string
	Count  int
	Err    error
}

// Result is the outcome of one aggregation run.
type Result struct {
	RunID    string
	Articles []news.Article
	Pairs    []PairStatus // topic-major order
	Topics   int
	Elapsed  time.Duration
}

// Summary returns the "<n> ARTICLES FROM <m> TOPICS" subtitle.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d ARTICLES FROM %d TOPICS", len(r.Articles), r.Topics)
}

// Failed returns the number of pairs whose fetch failed.
func (r *Result) Failed() int {
	n := 0
	for _, p := range r.Pairs {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Pipeline fans fetches out across topic/region pairs.
type Pipeline struct {
	fetcher     fetch.Fetcher
	concurrency int
	pairTimeout time.Duration
}

// New creates a Pipeline. concurrency below 1 means sequential.
// pairTimeout of zero uses a 30 second default.
func New(f fetch.Fetcher, concurrency int, pairTimeout time.Duration) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	if pairTimeout <= 0 {
		pairTimeout = defaultPairTimeout
	}
	return &Pipeline{fetcher: f, concurrency: concurrency, pairTimeout: pairTimeout}
}

// Run fetches every (topic, region) pair and returns the deduplicated merge.
//
// Per-pair failures never fail the run: the pair contributes zero articles
// and its error is kept in Result.Pairs. The run itself fails only for empty
// inputs or when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, topics []string, regions []selection.Region) (*Result, error) {
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	start := time.Now()
	runID := uuid.NewString()
	logging.Info("aggregate: run started", "run", runID, "topics", len(topics), "regions", len(regions), "concurrency", p.concurrency)

	// One slot per pair, indexed topic-major, so merge order does not
	// depend on completion order.
	slots := make([][]news.Article, len(topics)*len(regions))
	pairs := make([]PairStatus, len(slots))

	var (
		g       errgroup.Group
		skipped atomic.Bool
	)
	g.SetLimit(p.concurrency)

	for ti, topic := range topics {
		for ri, region := range regions {
			slot := ti*len(regions) + ri
			g.Go(func() error {
				if ctx.Err() != nil {
					skipped.Store(true)
					return nil
				}
				slots[slot], pairs[slot] = p.fetchPair(ctx, topic, region)
				return nil // never fail the group - errors reported per pair
			})
		}
	}

	_ = g.Wait()

	// A cancellation that lands after every pair finished keeps the result.
	if err := ctx.Err(); err != nil && (skipped.Load() || interrupted(pairs, err)) {
		logging.Warn("aggregate: run cancelled", "run", runID, "err", err)
		return nil, fmt.Errorf("aggregation cancelled: %w", err)
	}

	var merged []news.Article
	for _, s := range slots {
		merged = append(merged, s...)
	}

	result := &Result{
		RunID:    runID,
		Articles: news.Dedup(merged),
		Pairs:    pairs,
		Topics:   len(topics),
		Elapsed:  time.Since(start),
	}

	logging.Info("aggregate: run complete",
		"run", runID,
		"articles", len(result.Articles),
		"duplicates", len(merged)-len(result.Articles),
		"failed_pairs", result.Failed(),
		"elapsed", result.Elapsed.Round(time.Millisecond))
	return result, nil
}

// fetchPair fetches one pair with its own timeout, swallowing the error.
func (p *Pipeline) fetchPair(ctx context.Context, topic string, region selection.Region) ([]news.Article, PairStatus) {
	status := PairStatus{Topic: topic, Region: region.Name}

	pairCtx, cancel := context.WithTimeout(ctx, p.pairTimeout)
	defer cancel()

	articles, err := p.fetcher.Fetch(pairCtx, topic, region)
	if err != nil {
		status.Err = err
		logging.Warn("aggregate: pair failed", "topic", topic, "region", region.Code, "err", err)
		return nil, status
	}

	status.Count = len(articles)
	logging.Debug("aggregate: pair fetched", "topic", topic, "region", region.Code, "count", len(articles))
	return articles, status
}

// interrupted reports whether any pair failed because of the run's own
// cancellation.
func interrupted(pairs []PairStatus, cause error) bool {
	for _, p := range pairs {
		if p.Err != nil && errors.Is(p.Err, cause) {
			return true
		}
	}
	return false
}
