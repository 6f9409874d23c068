// Package cults3d reads Cults3D search results.
package cults3d

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const origin = "https://cults3d.com"

// New returns the Cults3D site. Item paths are /en/3d-model/<category>/<slug>;
// untitled items are named after their slug.
func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.Cults3D,
		SearchFormat: origin + "/en/search?q=%s",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^(/en/3d-model/[^/]+/[^/]+)/?$`),
			LoosePattern: regexp.MustCompile(`(/en/3d-model/[a-z0-9-]+/[A-Za-z0-9_-]+)`),
			ImageHosts:   []string{"images.cults3d.com", "cults3d"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       500,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + id },
		DefaultName: func(id string) string { return scraper.SlugTitle(id, "") },
	}
}
