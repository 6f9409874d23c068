package scraper

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"printfind/internal/fetcher"
	"printfind/internal/model"
)

// Adapter wraps fetch, extract and error isolation for one site.
type Adapter struct {
	site    Site
	fetcher fetcher.Fetcher
	log     *zap.Logger
}

var _ Scraper = (*Adapter)(nil)

// NewAdapter pairs a site with the fetcher used to download its pages.
func NewAdapter(site Site, f fetcher.Fetcher) *Adapter {
	return &Adapter{
		site:    site,
		fetcher: f,
		log:     zap.L().With(zap.String("source", site.Source().String())),
	}
}

// Adapters builds one Adapter per site, all sharing f.
func Adapters(sites []Site, f fetcher.Fetcher) []Scraper {
	out := make([]Scraper, 0, len(sites))
	for _, s := range sites {
		out = append(out, NewAdapter(s, f))
	}
	return out
}

func (a *Adapter) Source() model.Source { return a.site.Source() }

func (a *Adapter) SearchURL(query string) string { return a.site.SearchURL(query) }

// Search fetches the site's search page for query and extracts up to limit
// records. Any failure is logged and yields an empty list.
func (a *Adapter) Search(ctx context.Context, query string, limit int) (records []model.ModelRecord) {
	searchURL := a.site.SearchURL(query)

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("search panicked", zap.String("url", searchURL), zap.String("panic", fmt.Sprint(r)))
			records = nil
		}
	}()

	doc, err := a.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		fields := []zap.Field{zap.String("url", searchURL), zap.Error(err)}
		var fe *fetcher.FetchError
		if errors.As(err, &fe) {
			fields = append(fields, zap.Int("status", fe.StatusCode))
		}
		a.log.Warn("fetch failed", fields...)
		return nil
	}

	extracted := a.site.Extract(doc, query, limit)
	records = make([]model.ModelRecord, 0, len(extracted))
	for _, r := range extracted {
		if len(records) >= limit {
			break
		}
		if r.Source != a.site.Source() {
			a.log.Debug("dropping record from another source", zap.String("url", r.URL), zap.Stringer("record_source", r.Source))
			continue
		}
		if err := r.Validate(); err != nil {
			a.log.Debug("dropping invalid record", zap.String("url", r.URL), zap.Error(err))
			continue
		}
		records = append(records, r)
	}

	a.log.Debug("extracted records",
		zap.String("url", searchURL),
		zap.Int("bytes", len(doc)),
		zap.Int("records", len(records)),
	)
	return records
}
