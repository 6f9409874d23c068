package scraper

import (
	"context"

	"printfind/internal/model"
)

// Site knows one catalog: where its search page lives and how to read it.
type Site interface {
	Source() model.Source
	SearchURL(query string) string
	// Extract turns a fetched search page into at most limit records.
	// It must not fail; unrecognised markup yields no records.
	Extract(doc, query string, limit int) []model.ModelRecord
}

// Scraper searches one catalog. Search is total: failures surface as an
// empty result and a log entry, never as an error.
type Scraper interface {
	Source() model.Source
	// SearchURL is the catalog page a human would open for query.
	SearchURL(query string) string
	Search(ctx context.Context, query string, limit int) []model.ModelRecord
}
