package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1280
height = 720

[shadows]
resolution = 4096
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 4096, cfg.Shadows.Resolution)

	// Untouched sections keep their defaults.
	def := Default()
	assert.Equal(t, def.Window.Title, cfg.Window.Title)
	assert.Equal(t, def.Camera, cfg.Camera)
	assert.Equal(t, def.Shadows.Splits, cfg.Shadows.Splits)
	assert.Equal(t, def.Shadows.HalfExtents, cfg.Shadows.HalfExtents)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero window", "[window]\nwidth = 0\n"},
		{"fov out of range", "[camera]\nfov_degrees = 200.0\n"},
		{"inverted clip planes", "[camera]\nnear_plane = 10.0\nfar_plane = 1.0\n"},
		{"non-increasing half extents", "[shadows]\nhalf_extents = [10.0, 10.0, 90.0]\n"},
		{"zero noise texture", "[renderer]\nnoise_texture_size = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestCascadeSettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.Shadows.Resolution = 1024

	settings := cfg.CascadeSettings()
	assert.Equal(t, 1024, settings.Resolution)
	assert.Equal(t, cfg.Shadows.Splits, settings.Splits)
	assert.Equal(t, cfg.Shadows.HalfExtents, settings.HalfExtents)
}
