// Package output renders a search response in the formats the CLI and the
// HTTP API expose.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/rotisserie/eris"

	"printfind/internal/model"
)

// ResponseContent wraps a SearchResponse and implements formatter.Content.
type ResponseContent struct {
	resp *model.SearchResponse
}

// NewResponseContent creates a new ResponseContent instance.
func NewResponseContent(resp *model.SearchResponse) *ResponseContent {
	if resp == nil {
		resp = &model.SearchResponse{}
	}
	return &ResponseContent{resp: resp}
}

func (c *ResponseContent) ToJSON() ([]byte, error) {
	b, err := json.MarshalIndent(c.resp, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "output: marshal json")
	}
	return b, nil
}

func (c *ResponseContent) ToText() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search: %s\n", c.resp.SearchQuery)
	if c.resp.Fallback {
		sb.WriteString("No models found. Search the catalogs directly:\n")
	}
	sb.WriteString("\n")
	for i, r := range c.resp.Results {
		fmt.Fprintf(&sb, "%d. %s [%s]\n   %s\n", i+1, r.Name, r.Source.DisplayName(), r.URL)
		if r.Thumbnail != "" {
			sb.WriteString("   " + r.Thumbnail + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Sources: " + c.counts() + "\n")
	return sb.String(), nil
}

func (c *ResponseContent) ToHTML() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>Search: %s</h1>\n", html.EscapeString(c.resp.SearchQuery))
	if c.resp.Fallback {
		sb.WriteString("<p>No models found. Search the catalogs directly:</p>\n")
	}
	sb.WriteString("<ol>\n")
	for _, r := range c.resp.Results {
		fmt.Fprintf(&sb, `  <li><a href="%s">%s</a> <em>%s</em>`,
			html.EscapeString(r.URL), html.EscapeString(r.Name), html.EscapeString(r.Source.DisplayName()))
		if r.Thumbnail != "" {
			fmt.Fprintf(&sb, `<br><img src="%s" alt="%s">`, html.EscapeString(r.Thumbnail), html.EscapeString(r.Name))
		}
		if r.Description != "" {
			sb.WriteString("<p>" + html.EscapeString(r.Description) + "</p>")
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ol>\n")

	sb.WriteString("<table>\n<thead><tr><th>Source</th><th>Results</th></tr></thead>\n<tbody>\n")
	for _, src := range c.sources() {
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%d</td></tr>\n", html.EscapeString(src.DisplayName()), c.resp.SourceCount[src])
	}
	sb.WriteString("</tbody>\n</table>\n")
	return sb.String(), nil
}

// ToMarkdown converts the HTML rendition, tables included.
func (c *ResponseContent) ToMarkdown() (string, error) {
	h, err := c.ToHTML()
	if err != nil {
		return "", err
	}
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	out, err := conv.ConvertString(h)
	if err != nil {
		return "", eris.Wrap(err, "output: convert html to markdown")
	}
	return out, nil
}

func (c *ResponseContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Name", "URL", "Thumbnail", "Creator", "Likes", "Description", "Source"})
	for _, r := range c.resp.Results {
		_ = w.Write([]string{r.Name, r.URL, r.Thumbnail, r.Creator, strconv.Itoa(r.Likes), r.Description, string(r.Source)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "output: write csv")
	}
	return buf.String(), nil
}

// sources lists the sources present in SourceCount in canonical order.
func (c *ResponseContent) sources() []model.Source {
	var out []model.Source
	for _, s := range model.Sources {
		if _, ok := c.resp.SourceCount[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (c *ResponseContent) counts() string {
	parts := make([]string, 0, len(c.resp.SourceCount))
	for _, s := range c.sources() {
		parts = append(parts, fmt.Sprintf("%s=%d", s, c.resp.SourceCount[s]))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
