package printables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printfind/internal/model"
	"printfind/internal/scraper"
)

const searchPage = `<html><body>
<div class="card">
  <a href="/model/3161-3d-benchy"><img src="data:image/gif;base64,R0lGOD" data-src="https://media.printables.com/media/prints/3161/benchy.webp" alt="3DBenchy"></a>
</div>
<div class="card">
  <a href="/model/3161-3d-benchy/comments">Comments</a>
  <a href="/model/77-vase"><img srcset="https://media.printables.com/media/prints/77/vase_small.webp 1x, https://media.printables.com/media/prints/77/vase.webp 2x" title="Spiral Vase"></a>
</div>
<div class="card"><a href="/model/5-cube">Cube</a></div>
<div class="card"><a href="/model/6-sphere">Sphere</a></div>
</body></html>`

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.printables.com/search/models?q=benchy", New().SearchURL("benchy"))
}

func TestExtract(t *testing.T) {
	got := New().Extract(searchPage, "benchy", 3)
	require.Len(t, got, 3)

	assert.Equal(t, "3DBenchy", got[0].Name)
	assert.Equal(t, "https://www.printables.com/model/3161", got[0].URL)
	assert.Equal(t, "https://media.printables.com/media/prints/3161/benchy.webp", got[0].Thumbnail)

	assert.Equal(t, "Spiral Vase", got[1].Name)
	assert.Equal(t, "https://www.printables.com/model/77", got[1].URL)
	assert.Equal(t, "https://media.printables.com/media/prints/77/vase_small.webp", got[1].Thumbnail)

	assert.Equal(t, "3D Model #5", got[2].Name)
	assert.Equal(t, model.Printables, got[2].Source)
}

func TestExtract_NoResults(t *testing.T) {
	assert.Empty(t, New().Extract(`<html><body><p>No models found</p></body></html>`, "zzz", 5))
}

func TestRegistered(t *testing.T) {
	_, ok := scraper.Get("printables")
	assert.True(t, ok)
}
