package scraper

import (
	"strings"
	"sync"

	"printfind/internal/model"
)

var (
	mu       sync.RWMutex
	registry = map[model.Source]Site{}
)

// Register makes a site available by its source name. Sites call it from init.
func Register(s Site) {
	mu.Lock()
	defer mu.Unlock()
	registry[s.Source()] = s
}

// Get looks a site up by name, case-insensitively.
func Get(name string) (Site, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[model.Source(strings.ToLower(strings.TrimSpace(name)))]
	return s, ok
}

// Sites returns the registered sites for srcs in canonical source order.
// With no arguments every registered site is returned.
func Sites(srcs ...model.Source) []Site {
	mu.RLock()
	defer mu.RUnlock()

	want := make(map[model.Source]bool, len(srcs))
	for _, s := range srcs {
		want[s] = true
	}

	var out []Site
	for _, s := range model.Sources {
		site, ok := registry[s]
		if !ok {
			continue
		}
		if len(srcs) == 0 || want[s] {
			out = append(out, site)
		}
	}
	return out
}
