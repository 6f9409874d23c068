// Package model holds the records and responses produced by a model search.
package model

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// ModelRecord is one item discovered on a catalog's search page.
type ModelRecord struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Creator     string `json:"creator"`
	Likes       int    `json:"likes"`
	Description string `json:"description"`
	Source      Source `json:"source"`
}

// Validate checks the invariants every record handed to a caller must hold.
func (r ModelRecord) Validate() error {
	if !r.Source.Valid() {
		return eris.Errorf("model: unknown source %q", r.Source)
	}
	if strings.TrimSpace(r.Name) == "" {
		return eris.New("model: empty name")
	}
	if !IsAbsoluteURL(r.URL) {
		return eris.Errorf("model: url %q is not absolute", r.URL)
	}
	if r.Thumbnail != "" && !IsAbsoluteURL(r.Thumbnail) {
		return eris.Errorf("model: thumbnail %q is not absolute", r.Thumbnail)
	}
	return nil
}

// SearchResponse is the aggregate outcome of one query.
type SearchResponse struct {
	Results     []ModelRecord  `json:"results"`
	SearchQuery string         `json:"searchQuery"`
	SourceCount map[Source]int `json:"sourceCount"`
	// Fallback is set when Results are direct search links rather than items.
	Fallback bool `json:"fallback"`
}

// IsAbsoluteURL reports whether raw is an http(s) URL with a host.
func IsAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// NormalizeThumbnail turns an image reference found in markup into an
// absolute URL. Schemeless references get https:, root-relative ones are
// resolved against origin. Anything unusable becomes "".
func NormalizeThumbnail(raw, origin string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "", strings.HasPrefix(raw, "data:"):
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/") && origin != "":
		return strings.TrimRight(origin, "/") + raw
	}
	return ""
}
