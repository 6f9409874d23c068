// Package thangs reads Thangs search results.
package thangs

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const origin = "https://thangs.com"

// New returns the Thangs site. Identifiers are whole /m/ paths.
func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.Thangs,
		SearchFormat: origin + "/search/%s?scope=all",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^(/m/.+)$`),
			LoosePattern: regexp.MustCompile(`(/m/[A-Za-z0-9_-]+)`),
			Reject:       []string{"mythangs", "/search"},
			ImageHosts:   []string{"thangs-static", "thangs.com"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       300,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + id },
		DefaultName: func(string) string { return "3D Model from Thangs" },
	}
}
