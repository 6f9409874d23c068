package formatter

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct{ jsonErr error }

func (f fakeContent) ToJSON() ([]byte, error)   { return []byte(`{"ok":true}`), f.jsonErr }
func (fakeContent) ToText() (string, error)     { return "text", nil }
func (fakeContent) ToMarkdown() (string, error) { return "# md", nil }
func (fakeContent) ToHTML() (string, error)     { return "<p>html</p>", nil }
func (fakeContent) ToCSV() (string, error)      { return "a,b\n", nil }

func TestFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `{"ok":true}`},
		{"text", "text"},
		{"markdown", "# md"},
		{"html", "<p>html</p>"},
		{"csv", "a,b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Format(fakeContent{}, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, Valid(tt.format))
		})
	}
}

func TestFormat_Errors(t *testing.T) {
	_, err := Format(fakeContent{}, "yaml")
	assert.ErrorContains(t, err, "unsupported output format: yaml")
	assert.False(t, Valid("yaml"))

	_, err = Format(fakeContent{jsonErr: eris.New("boom")}, "json")
	assert.Error(t, err)
}

func TestFromExtension(t *testing.T) {
	assert.Equal(t, "markdown", FromExtension("out.MD"))
	assert.Equal(t, "json", FromExtension("/tmp/results.json"))
	assert.Equal(t, "html", FromExtension("page.htm"))
	assert.Equal(t, "text", FromExtension("notes.txt"))
	assert.Equal(t, "csv", FromExtension("r.csv"))
	assert.Equal(t, "", FromExtension("archive.tar.gz"))
	assert.Equal(t, "", FromExtension("noext"))
}
