package formatter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// Content is anything that can be rendered in every output format.
type Content interface {
	ToJSON() ([]byte, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToHTML() (string, error)
	ToCSV() (string, error)
}

// Formats lists the accepted format names.
var Formats = []string{"json", "text", "markdown", "html", "csv"}

func Format(content Content, format string) (string, error) {
	switch format {
	case "html":
		return content.ToHTML()
	case "text":
		return content.ToText()
	case "markdown":
		return content.ToMarkdown()
	case "csv":
		return content.ToCSV()
	case "json":
		b, err := content.ToJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", eris.Errorf("unsupported output format: %s", format)
	}
}

// Valid reports whether format is one of Formats.
func Valid(format string) bool {
	return slices.Contains(Formats, format)
}

// FromExtension infers the output format from a file name, or "" if the
// extension is not recognised.
func FromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".html", ".htm":
		return "html"
	case ".txt":
		return "text"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}
