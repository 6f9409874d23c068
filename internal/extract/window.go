package extract

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

var (
	imgTagRe = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	srcAttr  = regexp.MustCompile(`(?is)\ssrc\s*=\s*["']([^"']+)["']`)
	altAttr  = regexp.MustCompile(`(?is)\salt\s*=\s*["']([^"']*)["']`)
)

var errTooLarge = errors.New("markup exceeds window")

// capWriter counts rendered bytes and aborts rendering once limit is passed.
type capWriter struct {
	n, limit int
}

func (w *capWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	if w.n > w.limit {
		return 0, errTooLarge
	}
	return len(p), nil
}

// fitsWithin reports whether the rendered markup of sel is at most limit bytes.
func fitsWithin(sel *goquery.Selection, limit int) bool {
	if limit <= 0 {
		return false
	}
	w := &capWriter{limit: limit}
	for _, n := range sel.Nodes {
		if err := nethtml.Render(w, n); err != nil {
			return false
		}
	}
	return true
}

// extractLoose is the secondary phase: identifiers anywhere in the raw text,
// images bound to the first identifier within Window characters of the tag.
func extractLoose(rules Rules, raw string, limit int) []Item {
	if rules.LoosePattern == nil {
		return nil
	}

	var ids []string
	wanted := make(map[string]bool)
	for _, m := range rules.LoosePattern.FindAllStringSubmatch(raw, -1) {
		if len(ids) >= limit {
			break
		}
		if len(m) < 2 || m[1] == "" || wanted[m[1]] || containsAny(m[0], rules.Reject) {
			continue
		}
		wanted[m[1]] = true
		ids = append(ids, m[1])
	}
	if len(ids) == 0 {
		return nil
	}

	bound := make(map[string]image, len(ids))
	for _, loc := range imgTagRe.FindAllStringIndex(raw, -1) {
		if len(bound) == len(ids) {
			break
		}
		tag := raw[loc[0]:loc[1]]
		sm := srcAttr.FindStringSubmatch(tag)
		if sm == nil {
			continue
		}
		src := rules.imageURL(html.UnescapeString(sm[1]))
		if src == "" {
			continue
		}

		start := max(0, loc[0]-rules.Window)
		end := min(len(raw), loc[0]+rules.Window)
		id := firstLooseID(rules, raw[start:end])
		if id == "" || !wanted[id] {
			continue
		}
		if _, ok := bound[id]; ok {
			continue
		}

		var title string
		if am := altAttr.FindStringSubmatch(tag); am != nil {
			title = strings.TrimSpace(html.UnescapeString(am[1]))
		}
		bound[id] = image{src: src, title: title}
	}

	return assemble(ids, bound)
}

func firstLooseID(rules Rules, window string) string {
	for _, m := range rules.LoosePattern.FindAllStringSubmatch(window, -1) {
		if len(m) < 2 || m[1] == "" || containsAny(m[0], rules.Reject) {
			continue
		}
		return m[1]
	}
	return ""
}
