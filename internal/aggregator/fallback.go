package aggregator

import (
	"printfind/internal/model"
	"printfind/internal/scraper"
)

// FallbackStrategy produces the response returned when every source came
// back empty.
type FallbackStrategy interface {
	Fallback(query string, scrapers []scraper.Scraper) *model.SearchResponse
}

// SearchLinks answers with one record per source pointing at that source's
// own search page for the query.
type SearchLinks struct{}

func (SearchLinks) Fallback(query string, scrapers []scraper.Scraper) *model.SearchResponse {
	resp := &model.SearchResponse{
		Results:     make([]model.ModelRecord, 0, len(scrapers)),
		SearchQuery: query,
		SourceCount: make(map[model.Source]int, len(scrapers)),
		Fallback:    true,
	}
	for _, s := range scrapers {
		src := s.Source()
		display := src.DisplayName()
		resp.Results = append(resp.Results, model.ModelRecord{
			Name:        display + ": " + query,
			URL:         s.SearchURL(query),
			Creator:     display,
			Description: "View search results on " + display,
			Source:      src,
		})
		resp.SourceCount[src] = 1
	}
	return resp
}
