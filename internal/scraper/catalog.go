package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"printfind/internal/extract"
	"printfind/internal/model"
)

// Catalog is a Site described entirely by data: a search URL template,
// extraction rules and how identifiers become item URLs and fallback names.
type Catalog struct {
	ID model.Source
	// SearchFormat has a single %s for the encoded query.
	SearchFormat string
	Rules        extract.Rules
	// ItemURL builds the absolute item page URL for an identifier.
	ItemURL func(id string) string
	// DefaultName names an item when the page offers no title.
	DefaultName func(id string) string
}

var _ Site = (*Catalog)(nil)

func (c *Catalog) Source() model.Source { return c.ID }

func (c *Catalog) SearchURL(query string) string {
	return fmt.Sprintf(c.SearchFormat, EncodeQuery(query))
}

func (c *Catalog) Extract(doc, query string, limit int) []model.ModelRecord {
	items := extract.Extract(c.Rules, doc, limit)
	if len(items) == 0 {
		return nil
	}

	display := c.ID.DisplayName()
	records := make([]model.ModelRecord, 0, len(items))
	for _, it := range items {
		name := it.Title
		if name == "" && c.DefaultName != nil {
			name = c.DefaultName(it.ID)
		}
		if name == "" {
			name = display + " model"
		}
		records = append(records, model.ModelRecord{
			Name:        name,
			URL:         c.ItemURL(it.ID),
			Thumbnail:   it.Thumbnail,
			Creator:     display,
			Likes:       0,
			Description: fmt.Sprintf("%s model for \"%s\"", display, query),
			Source:      c.ID,
		})
	}
	return records
}

// EncodeQuery escapes a query for use in either a path segment or a query
// parameter. Spaces become %20.
func EncodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

var trailingID = regexp.MustCompile(`[-_]\d+$`)

// SlugTitle derives a readable name from the last path segment of id,
// dropping prefix and any trailing numeric identifier:
// "/object/3d-print-dragon-bust-12345" with prefix "3d-print-" gives "Dragon Bust".
func SlugTitle(id, prefix string) string {
	seg := strings.Trim(id, "/")
	if i := strings.LastIndexByte(seg, '/'); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.TrimPrefix(seg, prefix)
	seg = trailingID.ReplaceAllString(seg, "")
	if decoded, err := url.PathUnescape(seg); err == nil {
		seg = decoded
	}
	seg = strings.Join(strings.FieldsFunc(seg, func(r rune) bool { return r == '-' || r == '_' }), " ")
	if seg == "" {
		return ""
	}
	return cases.Title(language.English).String(seg)
}
