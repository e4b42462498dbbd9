package common

import (
	"github.com/chewxy/math32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Intersection classifies a bounding volume against a frustum.
type Intersection int

const (
	// Outside means the volume is entirely behind at least one frustum plane.
	Outside Intersection = iota
	// Intersects means the volume straddles at least one frustum plane.
	Intersects
	// Inside means the volume is entirely contained by all six planes.
	Inside
)

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
//
// A Frustum remembers the view and projection matrices it was constructed
// from so callers can detect staleness and rebuild only when the camera
// actually changed.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far

	built            bool
	viewMatrix       [16]float32
	projectionMatrix [16]float32
	farPlane         float32
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// Construct rebuilds the six frustum planes from a view and projection matrix,
// overriding the projection's far plane with farPlane when the projection is
// perspective. The matrices are retained for staleness checks via ViewMatrix
// and ProjectionMatrix.
//
// Plane extraction uses the Gribb/Hartmann method adjusted for the [0, 1]
// clip-space depth range used by WebGPU.
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - view: view matrix (16 float32 values, column-major)
//   - projection: projection matrix (16 float32 values, column-major)
//   - farPlane: far plane distance used for the far frustum plane
func (f *Frustum) Construct(view, projection []float32, farPlane float32) {
	if f.built && farPlane == f.farPlane &&
		matrixEquals(f.viewMatrix, view) && matrixEquals(f.projectionMatrix, projection) {
		return
	}

	f.built = true
	f.farPlane = farPlane
	copy(f.viewMatrix[:], view)
	copy(f.projectionMatrix[:], projection)

	var proj [16]float32
	copy(proj[:], projection)

	// Re-derive the depth terms of a perspective projection so the far
	// frustum plane sits at farPlane rather than the projection's own far.
	if proj[11] == -1.0 && proj[10] != 0 {
		near := proj[14] / proj[10]
		proj[10] = farPlane / (near - farPlane)
		proj[14] = (near * farPlane) / (near - farPlane)
	}

	var viewProj [16]float32
	Mul4(viewProj[:], proj[:], view)

	f.extract(viewProj[:])
}

// matrixEquals reports whether a stored matrix matches a candidate slice.
func matrixEquals(stored [16]float32, candidate []float32) bool {
	if len(candidate) < 16 {
		return false
	}
	for i := range 16 {
		if stored[i] != candidate[i] {
			return false
		}
	}
	return true
}

// ViewMatrix returns the view matrix the planes were last constructed from.
//
// Returns:
//   - [16]float32: the stored view matrix
func (f *Frustum) ViewMatrix() [16]float32 {
	return f.viewMatrix
}

// ProjectionMatrix returns the projection matrix the planes were last
// constructed from.
//
// Returns:
//   - [16]float32: the stored projection matrix
func (f *Frustum) ProjectionMatrix() [16]float32 {
	return f.projectionMatrix
}

// CheckSphere classifies a bounding sphere against the frustum.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius in world units
//
// Returns:
//   - Intersection: Outside, Intersects, or Inside
func (f *Frustum) CheckSphere(center [3]float32, radius float32) Intersection {
	result := Inside
	for i := range f.Planes {
		p := &f.Planes[i]
		dist := p.Normal[0]*center[0] + p.Normal[1]*center[1] + p.Normal[2]*center[2] + p.Distance
		if dist < -radius {
			return Outside
		}
		if dist < radius {
			result = Intersects
		}
	}
	return result
}

// CheckCube classifies an axis-aligned bounding box against the frustum
// using the box's projected radius per plane, a conservative test that
// never reports Outside for a visible box.
//
// Parameters:
//   - center: box center in world space
//   - extents: half-size of the box along each axis
//
// Returns:
//   - Intersection: Outside, Intersects, or Inside
func (f *Frustum) CheckCube(center, extents [3]float32) Intersection {
	result := Inside
	for i := range f.Planes {
		p := &f.Planes[i]
		dist := p.Normal[0]*center[0] + p.Normal[1]*center[1] + p.Normal[2]*center[2] + p.Distance
		r := math32.Abs(extents[0]*p.Normal[0]) +
			math32.Abs(extents[1]*p.Normal[1]) +
			math32.Abs(extents[2]*p.Normal[2])
		if dist < -r {
			return Outside
		}
		if dist < r {
			result = Intersects
		}
	}
	return result
}

// extract pulls the six planes out of a combined view-projection matrix.
// For column-major matrix M, element M[row][col] is at index col*4 + row.
// Clip-space conditions: -w <= x <= w, -w <= y <= w, 0 <= z <= w.
func (f *Frustum) extract(viewProj []float32) {
	// Left plane: row3 + row0
	f.Planes[FrustumLeft].Normal[0] = viewProj[3] + viewProj[0]
	f.Planes[FrustumLeft].Normal[1] = viewProj[7] + viewProj[4]
	f.Planes[FrustumLeft].Normal[2] = viewProj[11] + viewProj[8]
	f.Planes[FrustumLeft].Distance = viewProj[15] + viewProj[12]

	// Right plane: row3 - row0
	f.Planes[FrustumRight].Normal[0] = viewProj[3] - viewProj[0]
	f.Planes[FrustumRight].Normal[1] = viewProj[7] - viewProj[4]
	f.Planes[FrustumRight].Normal[2] = viewProj[11] - viewProj[8]
	f.Planes[FrustumRight].Distance = viewProj[15] - viewProj[12]

	// Bottom plane: row3 + row1
	f.Planes[FrustumBottom].Normal[0] = viewProj[3] + viewProj[1]
	f.Planes[FrustumBottom].Normal[1] = viewProj[7] + viewProj[5]
	f.Planes[FrustumBottom].Normal[2] = viewProj[11] + viewProj[9]
	f.Planes[FrustumBottom].Distance = viewProj[15] + viewProj[13]

	// Top plane: row3 - row1
	f.Planes[FrustumTop].Normal[0] = viewProj[3] - viewProj[1]
	f.Planes[FrustumTop].Normal[1] = viewProj[7] - viewProj[5]
	f.Planes[FrustumTop].Normal[2] = viewProj[11] - viewProj[9]
	f.Planes[FrustumTop].Distance = viewProj[15] - viewProj[13]

	// Near plane: row2 alone (z >= 0 in [0, 1] depth clip space)
	f.Planes[FrustumNear].Normal[0] = viewProj[2]
	f.Planes[FrustumNear].Normal[1] = viewProj[6]
	f.Planes[FrustumNear].Normal[2] = viewProj[10]
	f.Planes[FrustumNear].Distance = viewProj[14]

	// Far plane: row3 - row2
	f.Planes[FrustumFar].Normal[0] = viewProj[3] - viewProj[2]
	f.Planes[FrustumFar].Normal[1] = viewProj[7] - viewProj[6]
	f.Planes[FrustumFar].Normal[2] = viewProj[11] - viewProj[10]
	f.Planes[FrustumFar].Distance = viewProj[15] - viewProj[14]

	for i := range f.Planes {
		f.normalizePlane(i)
	}
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(
		p.Normal[0]*p.Normal[0] +
			p.Normal[1]*p.Normal[1] +
			p.Normal[2]*p.Normal[2],
	)

	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}
