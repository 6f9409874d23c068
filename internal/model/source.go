package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Source identifies the upstream catalog a record came from.
type Source string

const (
	Thingiverse   Source = "thingiverse"
	Thangs        Source = "thangs"
	Printables    Source = "printables"
	MakerWorld    Source = "makerworld"
	Cults3D       Source = "cults3d"
	MyMiniFactory Source = "myminifactory"
)

// Sources lists every known source in canonical (interleave) order.
var Sources = []Source{Thingiverse, Thangs, Printables, MakerWorld, Cults3D, MyMiniFactory}

var displayNames = map[Source]string{
	Thingiverse:   "Thingiverse",
	Thangs:        "Thangs",
	Printables:    "Printables",
	MakerWorld:    "MakerWorld",
	Cults3D:       "Cults3D",
	MyMiniFactory: "MyMiniFactory",
}

// DisplayName returns the human readable catalog name.
func (s Source) DisplayName() string {
	if n, ok := displayNames[s]; ok {
		return n
	}
	return string(s)
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

func (s Source) String() string { return string(s) }

// ParseSource resolves a source by name, case-insensitively.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", eris.Errorf("model: unknown source %q", name)
	}
	return s, nil
}

// ParseSources resolves a list of names, dropping duplicates and keeping the
// canonical order.
func ParseSources(names []string) ([]Source, error) {
	seen := make(map[Source]bool, len(names))
	for _, n := range names {
		s, err := ParseSource(n)
		if err != nil {
			return nil, err
		}
		seen[s] = true
	}
	out := make([]Source, 0, len(seen))
	for _, s := range Sources {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out, nil
}
