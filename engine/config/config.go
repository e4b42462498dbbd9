// package config loads engine settings from TOML files. Every field has a
// working default, so a missing file or a partial file still yields a usable
// configuration; callers pass the resolved Config into the engine and
// renderer builders instead of reading settings from package state.
package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/pelletier/go-toml/v2"
)

// WindowConfig holds the presentation surface settings.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// CameraConfig holds the default main camera settings.
type CameraConfig struct {
	FovDegrees float32    `toml:"fov_degrees"`
	NearPlane  float32    `toml:"near_plane"`
	FarPlane   float32    `toml:"far_plane"`
	ClearColor [4]float32 `toml:"clear_color"`
}

// ShadowConfig holds the cascaded shadow map settings.
type ShadowConfig struct {
	Resolution  int       `toml:"resolution"`
	Splits      []float32 `toml:"splits"`
	HalfExtents []float32 `toml:"half_extents"`
}

// RendererConfig holds render-path settings.
type RendererConfig struct {
	NoiseTextureSize int  `toml:"noise_texture_size"`
	EditorMode       bool `toml:"editor_mode"`
}

// Config is the full engine configuration tree.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Shadows  ShadowConfig   `toml:"shadows"`
	Renderer RendererConfig `toml:"renderer"`
}

// Default returns a Config populated with the engine defaults.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	shadow := light.DefaultCascadeSettings()
	return Config{
		Window: WindowConfig{
			Title:  "umbra",
			Width:  1920,
			Height: 1080,
			VSync:  true,
		},
		Camera: CameraConfig{
			FovDegrees: 60,
			NearPlane:  0.3,
			FarPlane:   1000,
			ClearColor: common.ColorBlack,
		},
		Shadows: ShadowConfig{
			Resolution:  shadow.Resolution,
			Splits:      shadow.Splits,
			HalfExtents: shadow.HalfExtents,
		},
		Renderer: RendererConfig{
			NoiseTextureSize: 256,
			EditorMode:       false,
		},
	}
}

// Load reads a TOML file over the defaults. Fields absent from the file keep
// their default values; a missing file is an error so typos in the path do
// not silently fall back.
//
// Parameters:
//   - path: the TOML file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed, or validated
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
//
// Returns:
//   - error: an error describing the first invalid field found
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180) degrees, got %g", c.Camera.FovDegrees)
	}
	if c.Camera.NearPlane <= 0 || c.Camera.FarPlane <= c.Camera.NearPlane {
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near %g far %g", c.Camera.NearPlane, c.Camera.FarPlane)
	}
	if c.Shadows.Resolution <= 0 {
		return fmt.Errorf("shadow resolution must be positive, got %d", c.Shadows.Resolution)
	}
	for i := 1; i < len(c.Shadows.HalfExtents); i++ {
		if c.Shadows.HalfExtents[i] <= c.Shadows.HalfExtents[i-1] {
			return fmt.Errorf("shadow half extents must strictly increase, got %v", c.Shadows.HalfExtents)
		}
	}
	if c.Renderer.NoiseTextureSize <= 0 {
		return fmt.Errorf("noise texture size must be positive, got %d", c.Renderer.NoiseTextureSize)
	}
	return nil
}

// CascadeSettings converts the shadow section into the settings consumed by
// the shadow cascade subsystem.
//
// Returns:
//   - light.CascadeSettings: the cascade settings
func (c Config) CascadeSettings() light.CascadeSettings {
	return light.CascadeSettings{
		Resolution:  c.Shadows.Resolution,
		Splits:      c.Shadows.Splits,
		HalfExtents: c.Shadows.HalfExtents,
	}
}
