package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printfind/internal/model"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Search.PerSourceLimit)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, model.Sources, cfg.EnabledSources())
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, 15, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, int64(4<<20), cfg.Fetch.MaxBodyBytes)
	assert.InDelta(t, 0, cfg.Fetch.RatePerSecond, 0.0001)
	assert.False(t, cfg.Fetch.Render)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.RequestTimeoutSecs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
search:
  per_source_limit: 3
  sources: [printables, thingiverse]
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printfind.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Search.PerSourceLimit)
	assert.Equal(t, []model.Source{model.Thingiverse, model.Printables}, cfg.EnabledSources())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 20, cfg.Search.MaxResults)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  max_results: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Search.MaxResults)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	dir := chdirTemp(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printfind.yaml"), []byte("search:\n  max_results: 8\n"), 0o644))
	t.Setenv("PRINTFIND_SEARCH_MAX_RESULTS", "12")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Search.MaxResults)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Search: SearchConfig{PerSourceLimit: 5, MaxResults: 20, Sources: []string{"thangs"}}}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Search.PerSourceLimit = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Search.MaxResults = -1
	assert.Error(t, c.Validate())

	c = base()
	c.Search.Sources = nil
	assert.Error(t, c.Validate())

	c = base()
	c.Search.Sources = []string{"shapeways"}
	assert.Error(t, c.Validate())

	c = base()
	c.Fetch.RatePerSecond = -2
	assert.Error(t, c.Validate())
}

func TestInitLogger(t *testing.T) {
	orig := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(orig) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.NotNil(t, zap.L())

	assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "console"}))
}
