package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 256.0, cfg.Render.Size)
	assert.Equal(t, 8.0, cfg.Render.Padding)
	assert.Equal(t, 4.0, cfg.Render.CardPixelRatio)
	assert.Equal(t, DefaultMaxPixels, cfg.Render.MaxPixels)
	assert.Equal(t, DefaultMediaMaxPixels, cfg.Media.MaxPixels)
	assert.Equal(t, DefaultCacheEntries, cfg.Media.CacheEntries)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qrick.yaml")
	doc := "server:\n  addr: \":9000\"\nrender:\n  size: 300\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	t.Setenv("QRICK_RENDER_PADDING", "12")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr, "file wins over PORT")
	assert.Equal(t, 300.0, cfg.Render.Size)
	assert.Equal(t, 12.0, cfg.Render.Padding)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("QRICK_RENDER_SIZE", "-1")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsZeroPixelBudget(t *testing.T) {
	t.Setenv("QRICK_RENDER_MAXPIXELS", "0")
	_, err := Load("")
	assert.Error(t, err)
}
