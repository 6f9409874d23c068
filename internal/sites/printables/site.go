// Package printables reads Printables search results.
package printables

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const origin = "https://www.printables.com"

func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.Printables,
		SearchFormat: origin + "/search/models?q=%s",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^/model/(\d+)`),
			LoosePattern: regexp.MustCompile(`/model/(\d+)`),
			ImageHosts:   []string{"media.printables.com", "printables"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       400,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + "/model/" + id },
		DefaultName: func(id string) string { return "3D Model #" + id },
	}
}
