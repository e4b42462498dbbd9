package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
	assert.Greater(t, l.Range(), float32(0))
}

func TestDirectionalRotationClamp(t *testing.T) {
	l := NewLight(LightTypeDirectional)

	// Pitch at or below 0 wraps to 179.
	l.SetRotation(0, 30, 0)
	assert.Equal(t, float32(179), l.Rotation()[0])
	l.SetRotation(-45, 30, 0)
	assert.Equal(t, float32(179), l.Rotation()[0])

	// Pitch at or above 180 wraps to 1.
	l.SetRotation(180, 30, 0)
	assert.Equal(t, float32(1), l.Rotation()[0])

	// In-range pitch passes through.
	l.SetRotation(90, 30, 0)
	assert.Equal(t, float32(90), l.Rotation()[0])
}

func TestPointLightRotationUnclamped(t *testing.T) {
	l := NewLight(LightTypePoint)
	l.SetRotation(-45, 0, 0)
	assert.Equal(t, float32(-45), l.Rotation()[0])
}

func TestDirectionFromRotation(t *testing.T) {
	l := NewLight(LightTypeDirectional)

	// Pitch 90, yaw 0 points straight down.
	l.SetRotation(90, 0, 0)
	dir := l.Direction()
	assert.InDelta(t, 0, dir[0], 1e-5)
	assert.InDelta(t, -1, dir[1], 1e-5)
	assert.InDelta(t, 0, dir[2], 1e-5)
}

func TestSpotConeStoresCosines(t *testing.T) {
	l := NewLight(LightTypeSpot)

	l.SetSpotCone(25, 35)
	assert.InDelta(t, 0.9063, l.InnerCone(), 1e-4)
	assert.InDelta(t, 0.8192, l.OuterCone(), 1e-4)
	assert.InDelta(t, 35*3.14159265/180, l.OuterConeAngle(), 1e-4)
}
