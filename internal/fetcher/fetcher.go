// Package fetcher retrieves raw catalog search pages.
package fetcher

import (
	"context"
	"fmt"
)

// Fetcher returns the raw document served at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError reports a non-success HTTP status from a catalog.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Accept and AcceptLanguage accompany the User-Agent on every request.
// Several catalogs serve degraded markup without them.
const (
	Accept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	AcceptLanguage = "en-US,en;q=0.5"
)
