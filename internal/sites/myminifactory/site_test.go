package myminifactory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printfind/internal/model"
	"printfind/internal/scraper"
)

const searchPage = `<html><body>
<a href="/users/bob">bob</a>
<div class="obj"><a href="https://www.myminifactory.com/object/3d-print-dragon-bust-12345"><img src="//dl.myminifactory.com/object-assets/12345/dragon.jpg" alt="Dragon Bust"></a></div>
<div class="obj"><a href="/object/3d-print-chess-set-777">Chess</a></div>
</body></html>`

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.myminifactory.com/search/?query=chess", New().SearchURL("chess"))
}

func TestExtract(t *testing.T) {
	got := New().Extract(searchPage, "dragon", 5)
	require.Len(t, got, 2)

	assert.Equal(t, "Dragon Bust", got[0].Name)
	assert.Equal(t, "https://www.myminifactory.com/object/3d-print-dragon-bust-12345", got[0].URL)
	assert.Equal(t, "https://dl.myminifactory.com/object-assets/12345/dragon.jpg", got[0].Thumbnail)

	assert.Equal(t, "Chess Set", got[1].Name)
	assert.Equal(t, model.MyMiniFactory, got[1].Source)
}

func TestExtract_EmbeddedData(t *testing.T) {
	page := `<script>{"objects":[{"url":"/object/3d-print-owl-55"}]}</script>`
	got := New().Extract(page, "owl", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Owl", got[0].Name)
	assert.Equal(t, "https://www.myminifactory.com/object/3d-print-owl-55", got[0].URL)
}

func TestExtract_TrailingSlashIsSameObject(t *testing.T) {
	page := `<a href="/object/3d-print-owl-55/">Owl</a><a href="/object/3d-print-owl-55">Owl</a>`
	got := New().Extract(page, "owl", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "https://www.myminifactory.com/object/3d-print-owl-55", got[0].URL)
	assert.Equal(t, "Owl", got[0].Name)
}

func TestRegistered(t *testing.T) {
	_, ok := scraper.Get("myminifactory")
	assert.True(t, ok)
}
