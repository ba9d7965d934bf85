package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, 5, c.Lattice.Size)
	assert.Equal(t, 2.0, c.Lattice.Step)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 500, c.Mobile.Breakpoint)
	assert.Equal(t, 1.25, c.Mobile.DPRCap)
	assert.Equal(t, 0.6, c.Mobile.BloomScale)
	assert.Equal(t, 4.0, c.Logo.Size)
	assert.Equal(t, 3.0, c.Logo.MobileSize)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latticebg.yaml")
	c := Default()
	c.FPS = 30
	c.Lattice.Seed = 42
	c.Lattice.Palette = []string{"#ff0000"}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, got.FPS)
	assert.Equal(t, int64(42), got.Lattice.Seed)
	assert.Equal(t, []string{"#ff0000"}, got.Lattice.Palette)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 500, got.Mobile.Breakpoint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParsePalette(t *testing.T) {
	got, err := ParsePalette([]string{"#ff0000", "#00ff00", "#0000ff"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, float64(got[0].R), 1e-6)
	assert.InDelta(t, 1.0, float64(got[1].G), 1e-6)
	assert.InDelta(t, 1.0, float64(got[2].B), 1e-6)
}

func TestParsePaletteRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "ff0000", "#ff00", "#zzzzzz"} {
		_, err := ParsePalette([]string{bad})
		assert.Error(t, err, "input %q", bad)
	}
	_, err := ParsePalette(nil)
	assert.Error(t, err)
}
