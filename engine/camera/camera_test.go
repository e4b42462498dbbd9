package camera

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"

	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.InDelta(t, 1.0471976, c.Fov(), 1e-6)
	assert.InDelta(t, 0.3, c.Near(), 1e-6)
	assert.InDelta(t, 1000.0, c.Far(), 1e-6)
	assert.Equal(t, common.ColorBlack, c.ClearColor())
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewCamera(
		WithPosition([3]float32{0, 0, -10}),
		WithTarget([3]float32{0, 0, 0}),
	)

	view := c.ViewMatrix()

	// The camera position maps to the view-space origin.
	x, y, z := common.TransformPoint(view[:], 0, 0, -10)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)

	// The target sits 10 units down the view-space -Z forward axis.
	_, _, tz := common.TransformPoint(view[:], 0, 0, 0)
	assert.InDelta(t, -10, tz, 1e-4)
}

func TestBaseViewMatrixIgnoresPlacement(t *testing.T) {
	a := NewCamera(
		WithPosition([3]float32{50, 20, -10}),
		WithTarget([3]float32{50, 20, 0}),
	)
	b := NewCamera(
		WithPosition([3]float32{-3, 0, 7}),
		WithTarget([3]float32{0, 1, 0}),
	)
	assert.Equal(t, a.BaseViewMatrix(), b.BaseViewMatrix())

	// The world origin lands one near distance down the view -Z axis, which
	// puts the z=0 quad plane on the orthographic near plane.
	base := a.BaseViewMatrix()
	x, y, z := common.TransformPoint(base[:], 0, 0, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, -0.3, z, 1e-5)
}

func TestSetAspectRecomputesProjection(t *testing.T) {
	c := NewCamera(WithAspect(1))
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	after := c.ProjectionMatrix()
	assert.NotEqual(t, before, after)
	assert.InDelta(t, before[0]/2, after[0], 1e-6)

	// Non-positive and repeated values are ignored.
	c.SetAspect(0)
	assert.Equal(t, after, c.ProjectionMatrix())
	c.SetAspect(2)
	assert.Equal(t, after, c.ProjectionMatrix())
}

func TestSettersMoveTheCamera(t *testing.T) {
	c := NewCamera(WithPosition([3]float32{0, 0, -5}))
	before := c.ViewMatrix()

	c.SetPosition([3]float32{0, 0, -20})
	assert.Equal(t, [3]float32{0, 0, -20}, c.Position())
	assert.NotEqual(t, before, c.ViewMatrix())
}

func TestOrthographicMatrixTracksSize(t *testing.T) {
	c := NewCamera()
	before := c.OrthographicMatrix()

	c.SetOrthographicSize(640, 480)
	assert.NotEqual(t, before, c.OrthographicMatrix())

	// Zero sizes are rejected.
	after := c.OrthographicMatrix()
	c.SetOrthographicSize(0, 480)
	assert.Equal(t, after, c.OrthographicMatrix())
}
