// Package myminifactory reads MyMiniFactory search results.
package myminifactory

import (
	"regexp"

	"printfind/internal/extract"
	"printfind/internal/model"
	"printfind/internal/scraper"
)

func init() {
	scraper.Register(New())
}

const (
	origin     = "https://www.myminifactory.com"
	slugPrefix = "3d-print-"
)

func New() *scraper.Catalog {
	return &scraper.Catalog{
		ID:           model.MyMiniFactory,
		SearchFormat: origin + "/search/?query=%s",
		Rules: extract.Rules{
			LinkPattern:  regexp.MustCompile(`^(/object/3d-print-[^/]+)$`),
			LoosePattern: regexp.MustCompile(`(/object/3d-print-[A-Za-z0-9_-]+)`),
			ImageHosts:   []string{"myminifactory"},
			ImageExclude: []string{"avatar", "logo", "icon"},
			Window:       500,
			Origin:       origin,
		},
		ItemURL:     func(id string) string { return origin + id },
		DefaultName: func(id string) string { return scraper.SlugTitle(id, slugPrefix) },
	}
}
