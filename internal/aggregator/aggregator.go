// Package aggregator fans a query out to every configured scraper and merges
// the results into a single bounded, interleaved response.
package aggregator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"printfind/internal/model"
	"printfind/internal/scraper"
)

const (
	DefaultPerSourceLimit = 5
	DefaultMaxResults     = 20
)

// Config bounds how much each source contributes and how much is returned.
type Config struct {
	PerSourceLimit int
	MaxResults     int
	// Fallback builds the response when no source yields anything.
	// Defaults to SearchLinks.
	Fallback FallbackStrategy
}

// Aggregator queries a fixed, ordered set of scrapers.
type Aggregator struct {
	cfg      Config
	scrapers []scraper.Scraper
}

// New returns an Aggregator over scrapers. Their order is the interleave
// order. Non-positive limits fall back to the defaults.
func New(cfg Config, scrapers ...scraper.Scraper) *Aggregator {
	if cfg.PerSourceLimit <= 0 {
		cfg.PerSourceLimit = DefaultPerSourceLimit
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Fallback == nil {
		cfg.Fallback = SearchLinks{}
	}
	return &Aggregator{cfg: cfg, scrapers: scrapers}
}

// Sources returns the configured sources in interleave order.
func (a *Aggregator) Sources() []model.Source {
	out := make([]model.Source, 0, len(a.scrapers))
	for _, s := range a.scrapers {
		out = append(out, s.Source())
	}
	return out
}

// Aggregate runs every scraper concurrently and merges their output. It never
// fails: sources that error or panic contribute nothing, and when nothing at
// all is found the fallback strategy supplies search links instead.
func (a *Aggregator) Aggregate(ctx context.Context, query string) *model.SearchResponse {
	perSource := a.collect(ctx, query)

	counts := make(map[model.Source]int, len(a.scrapers))
	for i, s := range a.scrapers {
		counts[s.Source()] = len(perSource[i])
	}

	merged := truncate(dedup(interleave(perSource)), a.cfg.MaxResults)
	resp := &model.SearchResponse{
		Results:     merged,
		SearchQuery: query,
		SourceCount: counts,
	}
	if len(merged) == 0 {
		resp = a.cfg.Fallback.Fallback(query, a.scrapers)
		if resp == nil {
			resp = SearchLinks{}.Fallback(query, a.scrapers)
		}
		resp.Results = truncate(resp.Results, a.cfg.MaxResults)
	}

	zap.L().Info("aggregated search",
		zap.String("query", query),
		zap.Int("results", len(resp.Results)),
		zap.Any("source_count", resp.SourceCount),
		zap.Bool("fallback", resp.Fallback),
	)
	return resp
}

// collect runs each scraper in its own goroutine. Slot i belongs to scraper
// i, so no locking is needed.
func (a *Aggregator) collect(ctx context.Context, query string) [][]model.ModelRecord {
	perSource := make([][]model.ModelRecord, len(a.scrapers))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range a.scrapers {
		g.Go(func() error {
			perSource[i] = a.searchOne(gctx, s, query)
			return nil
		})
	}
	_ = g.Wait()

	return perSource
}

func (a *Aggregator) searchOne(ctx context.Context, s scraper.Scraper, query string) (records []model.ModelRecord) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("scraper panicked",
				zap.Stringer("source", s.Source()),
				zap.String("panic", fmt.Sprint(r)),
			)
			records = nil
		}
	}()

	records = s.Search(ctx, query, a.cfg.PerSourceLimit)
	if len(records) > a.cfg.PerSourceLimit {
		records = records[:a.cfg.PerSourceLimit]
	}
	return records
}

// interleave takes the i-th record of every list before any (i+1)-th record,
// visiting lists in order and skipping exhausted ones.
func interleave(lists [][]model.ModelRecord) []model.ModelRecord {
	longest, total := 0, 0
	for _, l := range lists {
		longest = max(longest, len(l))
		total += len(l)
	}

	out := make([]model.ModelRecord, 0, total)
	for i := 0; i < longest; i++ {
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
			}
		}
	}
	return out
}

// dedup keeps the first record for each URL.
func dedup(records []model.ModelRecord) []model.ModelRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, r := range records {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}

func truncate(records []model.ModelRecord, n int) []model.ModelRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}
