// Package thingiverse reads Thingiverse search results.
package thingiverse

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const origin = "https://www.thingiverse.com"

// New returns the Thingiverse site. Items are identified by their numeric
// thing id, e.g. /thing:3161.
func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.Thingiverse,
		SearchFormat: origin + "/search?q=%s&type=things&sort=relevant",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^/thing:(\d+)`),
			LoosePattern: regexp.MustCompile(`/thing:(\d+)`),
			ImageHosts:   []string{"cdn.thingiverse.com", "thingiverse-production"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       500,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + "/thing:" + id },
		DefaultName: func(id string) string { return "3D Model #" + id },
	}
}
