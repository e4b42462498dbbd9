package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testFrustum builds a frustum for a camera at the origin looking down +Z
// with a 60 degree vertical field of view and the given far plane.
func testFrustum(t *testing.T, far float32) *Frustum {
	t.Helper()

	var view, proj [16]float32
	LookAt(view[:], 0, 0, 0, 0, 0, 1, 0, 1, 0)
	Perspective(proj[:], 1.0471976, 1, 0.1, far)

	f := &Frustum{}
	f.Construct(view[:], proj[:], far)
	return f
}

func TestCheckSphereAheadOfCamera(t *testing.T) {
	f := testFrustum(t, 100)

	// A unit sphere well inside the view volume.
	assert.Equal(t, Inside, f.CheckSphere([3]float32{0, 0, 50}, 1))

	// The same sphere far beyond the far plane.
	assert.Equal(t, Outside, f.CheckSphere([3]float32{0, 0, 500}, 1))
}

func TestCheckSphereAtCameraOrigin(t *testing.T) {
	f := testFrustum(t, 100)

	// A sphere surrounding the camera straddles the near plane but is never
	// culled.
	assert.NotEqual(t, Outside, f.CheckSphere([3]float32{0, 0, 0}, 1))
}

func TestCheckSpherePerPlaneRejection(t *testing.T) {
	f := testFrustum(t, 100)

	// Entirely behind the camera.
	assert.Equal(t, Outside, f.CheckSphere([3]float32{0, 0, -50}, 1))

	// Far outside the side planes at a visible depth.
	assert.Equal(t, Outside, f.CheckSphere([3]float32{500, 0, 50}, 1))
	assert.Equal(t, Outside, f.CheckSphere([3]float32{-500, 0, 50}, 1))
	assert.Equal(t, Outside, f.CheckSphere([3]float32{0, 500, 50}, 1))
	assert.Equal(t, Outside, f.CheckSphere([3]float32{0, -500, 50}, 1))
}

func TestCheckSphereFarPlaneOverride(t *testing.T) {
	// The projection's own far plane is 1000, but Construct overrides it.
	var view, proj [16]float32
	LookAt(view[:], 0, 0, 0, 0, 0, 1, 0, 1, 0)
	Perspective(proj[:], 1.0471976, 1, 0.1, 1000)

	f := &Frustum{}
	f.Construct(view[:], proj[:], 100)

	assert.Equal(t, Outside, f.CheckSphere([3]float32{0, 0, 500}, 1))
	assert.Equal(t, Inside, f.CheckSphere([3]float32{0, 0, 50}, 1))
}

func TestCheckCube(t *testing.T) {
	f := testFrustum(t, 100)

	assert.Equal(t, Inside, f.CheckCube([3]float32{0, 0, 50}, [3]float32{1, 1, 1}))
	assert.Equal(t, Outside, f.CheckCube([3]float32{0, 0, 500}, [3]float32{1, 1, 1}))

	// A box straddling the far plane.
	assert.Equal(t, Intersects, f.CheckCube([3]float32{0, 0, 100}, [3]float32{1, 1, 5}))
}

func TestConstructRetainsMatrices(t *testing.T) {
	var view, proj [16]float32
	LookAt(view[:], 1, 2, 3, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], 1.0471976, 16.0/9.0, 0.3, 250)

	f := &Frustum{}
	f.Construct(view[:], proj[:], 250)

	assert.Equal(t, view, f.ViewMatrix())
	assert.Equal(t, proj, f.ProjectionMatrix())
}

func TestConstructSkipsRebuildWhenUnchanged(t *testing.T) {
	var view, proj [16]float32
	LookAt(view[:], 1, 2, 3, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], 1.0471976, 16.0/9.0, 0.3, 250)

	f := &Frustum{}
	f.Construct(view[:], proj[:], 250)

	// Scribble on the planes; a matching reconstruct must not touch them.
	sentinel := Plane{Normal: [3]float32{9, 9, 9}, Distance: 42}
	f.Planes[FrustumNear] = sentinel
	f.Construct(view[:], proj[:], 250)
	assert.Equal(t, sentinel, f.Planes[FrustumNear])

	// A changed view forces a rebuild.
	LookAt(view[:], 5, 2, 3, 0, 0, 0, 0, 1, 0)
	f.Construct(view[:], proj[:], 250)
	assert.NotEqual(t, sentinel, f.Planes[FrustumNear])

	// So does a changed far plane.
	f.Planes[FrustumNear] = sentinel
	f.Construct(view[:], proj[:], 100)
	assert.NotEqual(t, sentinel, f.Planes[FrustumNear])
}
