package light

// DefaultShadowMapResolution is the default width and height in texels of each
// cascade's shadow depth texture.
const DefaultShadowMapResolution = 2048

// DirectionalCascadeCount is the number of shadow cascades a directional
// light renders, covering increasing distance bands from the camera.
const DirectionalCascadeCount = 3

// PointCascadeCount is the number of shadow faces a point light renders, one
// per cube face.
const PointCascadeCount = 6

// SpotCascadeCount is the number of shadow maps a spot light renders.
const SpotCascadeCount = 1

// CascadeSettings configures the shadow cascade tables for a light. The
// defaults reflect the engine's target scene scale; hosts tuning for a
// different scale supply their own tables through the scene configuration.
type CascadeSettings struct {
	// Resolution is the width and height in texels of each cascade's shadow map.
	Resolution int

	// Splits are the cascade transition depths as ascending fractions of the
	// camera's far plane. Length is DirectionalCascadeCount - 1.
	Splits []float32

	// HalfExtents are the orthographic half-sizes in world units of each
	// directional cascade, ascending with cascade index.
	HalfExtents []float32
}

// DefaultCascadeSettings returns the standard cascade configuration.
//
// Returns:
//   - CascadeSettings: resolution 2048, splits {0.01, 0.035}, half extents {10, 45, 90}
func DefaultCascadeSettings() CascadeSettings {
	return CascadeSettings{
		Resolution:  DefaultShadowMapResolution,
		Splits:      []float32{0.01, 0.035},
		HalfExtents: []float32{10, 45, 90},
	}
}
