package thangs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printfind/internal/model"
	"printfind/internal/scraper"
)

const searchPage = `<html><body>
<nav><a href="/m/mythangs/saved">My Thangs</a><a href="/m/search?q=dragon">Search</a></nav>
<div class="card"><a href="/m/1234567"><img src="https://thangs-static.s3.amazonaws.com/thumb/1234567.png" alt="Dragon"></a></div>
<div class="card"><a href="/m/98765?part=1#top">Gear</a></div>
</body></html>`

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://thangs.com/search/dragon%20egg?scope=all", New().SearchURL("dragon egg"))
}

func TestExtract(t *testing.T) {
	got := New().Extract(searchPage, "dragon", 5)
	require.Len(t, got, 2)

	assert.Equal(t, "Dragon", got[0].Name)
	assert.Equal(t, "https://thangs.com/m/1234567", got[0].URL)
	assert.Equal(t, "https://thangs-static.s3.amazonaws.com/thumb/1234567.png", got[0].Thumbnail)
	assert.Equal(t, model.Thangs, got[0].Source)

	assert.Equal(t, "3D Model from Thangs", got[1].Name)
	assert.Equal(t, "https://thangs.com/m/98765", got[1].URL)
	assert.Empty(t, got[1].Thumbnail)
}

func TestExtract_ImageOutsideCard(t *testing.T) {
	page := `<html><body><section><div><a href="/m/1">One</a><p>` + strings.Repeat("x", 700) +
		`</p></div><div><img src="https://thangs-static.s3.amazonaws.com/far.png"></div></section></body></html>`

	got := New().Extract(page, "one", 5)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Thumbnail)
}

func TestExtract_EscapedAndTrailingSlashPaths(t *testing.T) {
	page := `<html><body>
<a href="/m/dragon%20egg-123">Egg</a>
<a href="/m/555/">Gear</a>
<a href="/m/555">Gear again</a>
<a href="/m/café-9">Cafe</a>
</body></html>`

	got := New().Extract(page, "egg", 5)
	require.Len(t, got, 3)
	assert.Equal(t, "https://thangs.com/m/dragon%20egg-123", got[0].URL)
	assert.Equal(t, "https://thangs.com/m/555", got[1].URL)
	assert.Equal(t, "https://thangs.com/m/caf%C3%A9-9", got[2].URL)
	for _, r := range got {
		assert.NotContains(t, r.URL, " ")
		assert.NoError(t, r.Validate())
	}
}

func TestRegistered(t *testing.T) {
	s, ok := scraper.Get("THANGS")
	require.True(t, ok)
	assert.Equal(t, model.Thangs, s.Source())
}
