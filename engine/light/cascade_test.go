package light

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectionalCascades(t *testing.T) (CascadeSet, Light, *device.NullDevice) {
	t.Helper()
	dev := device.NewNullDevice(256, 256)
	l := NewLight(LightTypeDirectional, WithRotation(45, 0, 0), WithCastsShadows(true))
	set, err := NewCascadeSet(l, CascadeSettings{
		Resolution:  256,
		Splits:      []float32{0.01, 0.035},
		HalfExtents: []float32{10, 45, 90},
	}, dev)
	require.NoError(t, err)
	return set, l, dev
}

func TestCascadeCountsPerLightType(t *testing.T) {
	dev := device.NewNullDevice(256, 256)
	settings := DefaultCascadeSettings()
	settings.Resolution = 128

	cases := []struct {
		lightType LightType
		want      int
	}{
		{LightTypeDirectional, 3},
		{LightTypePoint, 6},
		{LightTypeSpot, 1},
	}
	for _, tc := range cases {
		l := NewLight(tc.lightType)
		set, err := NewCascadeSet(l, settings, dev)
		require.NoError(t, err)
		assert.Equal(t, tc.want, set.Count())

		// Every per-cascade resource exists for every index.
		for i := 0; i < set.Count(); i++ {
			assert.NotNil(t, set.Target(i))
			assert.NotNil(t, set.DepthStencil(i))
			assert.NotNil(t, set.Frustum(i))
		}
	}
}

func TestCascadeHalfExtentsMustIncrease(t *testing.T) {
	dev := device.NewNullDevice(256, 256)
	l := NewLight(LightTypeDirectional)

	_, err := NewCascadeSet(l, CascadeSettings{
		Resolution:  256,
		Splits:      []float32{0.01, 0.035},
		HalfExtents: []float32{45, 45, 90},
	}, dev)
	assert.Error(t, err)

	_, err = NewCascadeSet(l, CascadeSettings{
		Resolution:  256,
		Splits:      []float32{0.01, 0.035},
		HalfExtents: []float32{10, 45, 90},
	}, dev)
	assert.NoError(t, err)
}

func TestDefaultCascadeSettingsAreMonotonic(t *testing.T) {
	settings := DefaultCascadeSettings()
	require.Len(t, settings.HalfExtents, DirectionalCascadeCount)
	for i := 1; i < len(settings.HalfExtents); i++ {
		assert.Greater(t, settings.HalfExtents[i], settings.HalfExtents[i-1])
	}
	for i := 1; i < len(settings.Splits); i++ {
		assert.Greater(t, settings.Splits[i], settings.Splits[i-1])
	}
}

func TestSnapToTexelGridContainsOriginalBox(t *testing.T) {
	minCorner := [3]float32{-9.73, -10.11, 3.37}
	maxCorner := [3]float32{10.27, 9.89, 23.37}

	snapMin, snapMax := SnapToTexelGrid(minCorner, maxCorner, 10, 256)
	for axis := 0; axis < 3; axis++ {
		assert.LessOrEqual(t, snapMin[axis], minCorner[axis], "snapped min grew inward on axis %d", axis)
		assert.GreaterOrEqual(t, snapMax[axis], maxCorner[axis], "snapped max shrank on axis %d", axis)
	}
}

func TestSnapToTexelGridIsIdempotent(t *testing.T) {
	minCorner := [3]float32{-12.5, 7.25, -0.125}
	maxCorner := [3]float32{1.5, 27.25, 19.875}

	once1, once2 := SnapToTexelGrid(minCorner, maxCorner, 45, 1024)
	twice1, twice2 := SnapToTexelGrid(once1, once2, 45, 1024)
	assert.Equal(t, once1, twice1)
	assert.Equal(t, once2, twice2)
}

func TestDirectionalClampRotation(t *testing.T) {
	l := NewLight(LightTypeDirectional)

	l.SetRotation(-10, 0, 0)
	assert.Equal(t, float32(179), l.Rotation()[0])

	l.SetRotation(200, 0, 0)
	assert.Equal(t, float32(1), l.Rotation()[0])

	l.SetRotation(90, 30, 0)
	assert.Equal(t, [3]float32{90, 30, 0}, l.Rotation())

	// Point lights keep their rotation untouched.
	p := NewLight(LightTypePoint)
	p.SetRotation(-10, 0, 0)
	assert.Equal(t, float32(-10), p.Rotation()[0])
}

func TestCascadeUpdateRecomputesOnlyWhatMoved(t *testing.T) {
	set, l, _ := newDirectionalCascades(t)

	set.Update([3]float32{0, 0, 0})
	view := set.ViewMatrix()
	proj := set.Projection(0)

	// Nothing moved: everything is reused verbatim.
	set.Update([3]float32{0, 0, 0})
	assert.Equal(t, view, set.ViewMatrix())
	assert.Equal(t, proj, set.Projection(0))

	// Camera moved: projections recompute, the view matrix does not.
	set.Update([3]float32{50, 0, 0})
	assert.Equal(t, view, set.ViewMatrix())
	assert.NotEqual(t, proj, set.Projection(0))

	// Light rotated: the view matrix recomputes too.
	l.SetRotation(60, 10, 0)
	set.Update([3]float32{50, 0, 0})
	assert.NotEqual(t, view, set.ViewMatrix())
}

func TestCascadeProjectionCoversCamera(t *testing.T) {
	set, _, _ := newDirectionalCascades(t)

	cameraPos := [3]float32{12, 3, -7}
	set.Update(cameraPos)

	// The camera sits at every cascade's frustum center, so a small sphere
	// around it can never be culled.
	for i := 0; i < set.Count(); i++ {
		result := set.Frustum(i).CheckSphere(cameraPos, 1)
		assert.NotEqual(t, common.Outside, result, "cascade %d culled the camera position", i)
	}
}
