// Package makerworld reads MakerWorld search results.
package makerworld

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const origin = "https://makerworld.com"

// New returns the MakerWorld site. Thumbnails are served from the Bambu Lab
// public CDN as well as makerworld.com itself.
func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.MakerWorld,
		SearchFormat: origin + "/en/search/models?keyword=%s",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^(/en/models/.+)$`),
			LoosePattern: regexp.MustCompile(`(/en/models/[A-Za-z0-9_-]+)`),
			Reject:       []string{"/user/", "/search"},
			ImageHosts:   []string{"makerworld", "bambulab", "public"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       600,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + id },
		DefaultName: func(string) string { return "MakerWorld Model" },
	}
}
