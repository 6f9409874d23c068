// Package extract pulls item identifiers, thumbnails and titles out of
// catalog search pages.
//
// Extraction runs in two phases. The primary phase parses the document once
// and walks anchors in document order, collecting identifiers from hrefs.
// Each qualifying image is then bound to the first identifier link found in
// its card: the nearest ancestor whose markup fits inside twice the source's
// proximity window. When the primary phase finds no identifiers at all, the
// secondary phase scans the raw text with a looser pattern and binds images
// by character distance instead.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"printfind/internal/model"
)

// Rules describe how one catalog marks up its search results.
type Rules struct {
	// LinkPattern is matched against anchor paths. Group 1 is the identifier.
	LinkPattern *regexp.Regexp
	// LoosePattern is matched against the raw document when LinkPattern finds
	// nothing. Group 1 is the identifier.
	LoosePattern *regexp.Regexp
	// Reject drops identifier paths containing any of these substrings.
	Reject []string
	// ImageHosts lists substrings one of which an image URL must contain.
	ImageHosts []string
	// ImageExclude drops avatars, logos and icons.
	ImageExclude []string
	// Window is the proximity window in characters.
	Window int
	// Origin resolves root-relative links and images, e.g. https://thangs.com.
	Origin string
}

// Item is one identified result before it is turned into a model.ModelRecord.
type Item struct {
	ID        string
	Title     string
	Thumbnail string
}

type image struct {
	src   string
	title string
}

// Extract returns at most limit items in document order. It never fails:
// malformed or unrecognised input yields an empty result.
func Extract(rules Rules, doc string, limit int) (items []Item) {
	if limit <= 0 || strings.TrimSpace(doc) == "" || rules.LinkPattern == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("extract: recovered from panic", zap.Any("panic", r))
			items = nil
		}
	}()

	if items = extractDOM(rules, doc, limit); len(items) > 0 {
		return items
	}
	return extractLoose(rules, doc, limit)
}

func extractDOM(rules Rules, raw string, limit int) []Item {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	var ids []string
	wanted := make(map[string]bool)
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(ids) >= limit {
			return false
		}
		id := rules.identify(a.AttrOr("href", ""))
		if id != "" && !wanted[id] {
			wanted[id] = true
			ids = append(ids, id)
		}
		return true
	})
	if len(ids) == 0 {
		return nil
	}

	bound := make(map[string]image, len(ids))
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if len(bound) == len(ids) {
			return
		}
		src := rules.imageURL(imageSource(img))
		if src == "" {
			return
		}
		id := rules.cardIdentifier(img)
		if id == "" || !wanted[id] {
			return
		}
		if _, ok := bound[id]; ok {
			return
		}
		bound[id] = image{src: src, title: imageTitle(img)}
	})

	return assemble(ids, bound)
}

// cardIdentifier walks up from img while the enclosing markup stays within
// twice the proximity window and returns the first identifier link found.
func (r Rules) cardIdentifier(img *goquery.Selection) string {
	limit := 2 * r.Window
	for node := img.Parent(); node.Length() > 0; node = node.Parent() {
		if !fitsWithin(node, limit) {
			return ""
		}
		if goquery.NodeName(node) == "a" {
			if id := r.identify(node.AttrOr("href", "")); id != "" {
				return id
			}
		}
		var found string
		node.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			found = r.identify(a.AttrOr("href", ""))
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// identify returns the identifier encoded in href, or "" when the link is
// not an item link for this catalog.
func (r Rules) identify(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host != "" && !r.sameSite(u.Host) {
		return ""
	}
	// Match the escaped form so identifiers stay valid URL paths, and treat
	// /m/1 and /m/1/ as the same item.
	p := u.EscapedPath()
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	m := r.LinkPattern.FindStringSubmatch(p)
	if len(m) < 2 || m[1] == "" {
		return ""
	}
	if containsAny(p, r.Reject) {
		return ""
	}
	return m[1]
}

func (r Rules) sameSite(host string) bool {
	if r.Origin == "" {
		return true
	}
	o, err := url.Parse(r.Origin)
	if err != nil || o.Host == "" {
		return true
	}
	site := strings.TrimPrefix(strings.ToLower(o.Hostname()), "www.")
	h := strings.ToLower(host)
	if i := strings.IndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}
	return h == site || strings.HasSuffix(h, "."+site)
}

// imageURL normalizes src and returns it only if it looks like a content
// image served by this catalog.
func (r Rules) imageURL(src string) string {
	abs := model.NormalizeThumbnail(src, r.Origin)
	if abs == "" {
		return ""
	}
	lower := strings.ToLower(abs)
	if len(r.ImageHosts) > 0 && !containsAny(lower, r.ImageHosts) {
		return ""
	}
	if containsAny(lower, r.ImageExclude) {
		return ""
	}
	return abs
}

func imageSource(img *goquery.Selection) string {
	if src := strings.TrimSpace(img.AttrOr("src", "")); src != "" && !strings.HasPrefix(src, "data:") {
		return src
	}
	if src := strings.TrimSpace(img.AttrOr("data-src", "")); src != "" {
		return src
	}
	if set := strings.TrimSpace(img.AttrOr("srcset", "")); set != "" {
		first := strings.TrimSpace(strings.Split(set, ",")[0])
		if f := strings.Fields(first); len(f) > 0 {
			return f[0]
		}
	}
	return ""
}

func imageTitle(img *goquery.Selection) string {
	if alt := strings.TrimSpace(img.AttrOr("alt", "")); alt != "" {
		return alt
	}
	return strings.TrimSpace(img.AttrOr("title", ""))
}

func assemble(ids []string, bound map[string]image) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		img := bound[id]
		items = append(items, Item{ID: id, Title: img.title, Thumbnail: img.src})
	}
	return items
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
