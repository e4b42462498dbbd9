package light

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/chewxy/math32"
)

// cascadeSet is the implementation of the CascadeSet interface.
type cascadeSet struct {
	light    Light
	settings CascadeSettings
	count    int

	viewMatrix  [16]float32
	projections [][16]float32
	frustums    []*common.Frustum
	targets     []*device.RenderTarget
	depths      []*device.DepthStencil

	// Last observed transforms, compared on Update to decide what to
	// recompute.
	lastLightPosition [3]float32
	lastLightRotation [3]float32
	lastCameraPos     [3]float32
	computed          bool
}

// CascadeSet defines the interface for a light's shadow map set. A
// directional light renders three cascades of increasing world coverage, a
// point light renders six cube faces, and a spot light renders a single map.
// The per-cascade matrices, frustums, and shadow map targets are cached and
// recomputed only when the light or the observing camera moves: a light
// transform change recomputes the view matrix and every projection, while a
// camera move recomputes only the projections.
type CascadeSet interface {
	// Count returns the number of cascades, fixed by the light type at
	// construction.
	//
	// Returns:
	//   - int: the cascade count
	Count() int

	// ViewMatrix returns the light's view matrix as 16 floats (column-major).
	// Point lights have a distinct view per face; for them this returns the
	// first face's view and ViewMatrixAt should be used instead.
	//
	// Returns:
	//   - [16]float32: the light view matrix
	ViewMatrix() [16]float32

	// ViewMatrixAt returns the view matrix for one cascade. Directional and
	// spot lights share a single view across cascades.
	//
	// Parameters:
	//   - index: the cascade index
	//
	// Returns:
	//   - [16]float32: the cascade view matrix
	ViewMatrixAt(index int) [16]float32

	// Projection returns one cascade's projection matrix as 16 floats
	// (column-major).
	//
	// Parameters:
	//   - index: the cascade index
	//
	// Returns:
	//   - [16]float32: the cascade projection matrix
	Projection(index int) [16]float32

	// Frustum returns one cascade's view frustum for shadow-caster culling.
	//
	// Parameters:
	//   - index: the cascade index
	//
	// Returns:
	//   - *common.Frustum: the cascade frustum
	Frustum(index int) *common.Frustum

	// Target returns one cascade's shadow map render target. The target holds
	// linear depth in a single-channel float texture.
	//
	// Parameters:
	//   - index: the cascade index
	//
	// Returns:
	//   - *device.RenderTarget: the shadow map target
	Target(index int) *device.RenderTarget

	// DepthStencil returns one cascade's depth buffer.
	//
	// Parameters:
	//   - index: the cascade index
	//
	// Returns:
	//   - *device.DepthStencil: the cascade depth buffer
	DepthStencil(index int) *device.DepthStencil

	// Splits returns the cascade transition depths as fractions of the
	// camera far plane.
	//
	// Returns:
	//   - []float32: the split fractions
	Splits() []float32

	// Resolution returns the shadow map size in texels.
	//
	// Returns:
	//   - int: the shadow map resolution
	Resolution() int

	// Update recomputes stale matrices and frustums for the current light and
	// camera transforms. Called once per frame before the shadow pass reads
	// the set; when nothing moved it returns immediately.
	//
	// Parameters:
	//   - cameraPosition: the observing camera's world position
	Update(cameraPosition [3]float32)
}

var _ CascadeSet = &cascadeSet{}

// NewCascadeSet creates the shadow map set for a light, allocating one shadow
// map target and depth buffer per cascade.
//
// Parameters:
//   - l: the light the set belongs to
//   - settings: the cascade configuration tables
//   - dev: the device shadow map targets are created on
//
// Returns:
//   - CascadeSet: the new cascade set
//   - error: an error if the settings are invalid or target creation fails
func NewCascadeSet(l Light, settings CascadeSettings, dev device.Device) (CascadeSet, error) {
	if l == nil {
		return nil, fmt.Errorf("cascade set requires a light")
	}
	if settings.Resolution <= 0 {
		return nil, fmt.Errorf("shadow map resolution must be positive, got %d", settings.Resolution)
	}

	count := SpotCascadeCount
	switch l.Type() {
	case LightTypeDirectional:
		count = DirectionalCascadeCount
		if len(settings.HalfExtents) < count {
			return nil, fmt.Errorf("cascade settings supply %d half extents, need %d", len(settings.HalfExtents), count)
		}
		for i := 1; i < count; i++ {
			if settings.HalfExtents[i] <= settings.HalfExtents[i-1] {
				return nil, fmt.Errorf("cascade half extents must be strictly increasing, got %v", settings.HalfExtents[:count])
			}
		}
	case LightTypePoint:
		count = PointCascadeCount
	}

	s := &cascadeSet{
		light:       l,
		settings:    settings,
		count:       count,
		projections: make([][16]float32, count),
		frustums:    make([]*common.Frustum, count),
		targets:     make([]*device.RenderTarget, count),
		depths:      make([]*device.DepthStencil, count),
	}
	for i := 0; i < count; i++ {
		target, err := dev.CreateRenderTarget(settings.Resolution, settings.Resolution, device.FormatR32Float)
		if err != nil {
			return nil, fmt.Errorf("failed to create shadow map %d: %w", i, err)
		}
		depth, err := dev.CreateDepthStencil(settings.Resolution, settings.Resolution)
		if err != nil {
			return nil, fmt.Errorf("failed to create shadow depth buffer %d: %w", i, err)
		}
		s.targets[i] = target
		s.depths[i] = depth
		s.frustums[i] = &common.Frustum{}
	}
	return s, nil
}

func (s *cascadeSet) Count() int {
	return s.count
}

func (s *cascadeSet) ViewMatrix() [16]float32 {
	return s.viewMatrix
}

func (s *cascadeSet) ViewMatrixAt(index int) [16]float32 {
	if s.light.Type() == LightTypePoint {
		var view [16]float32
		s.pointFaceView(view[:], index)
		return view
	}
	return s.viewMatrix
}

func (s *cascadeSet) Projection(index int) [16]float32 {
	return s.projections[index]
}

func (s *cascadeSet) Frustum(index int) *common.Frustum {
	return s.frustums[index]
}

func (s *cascadeSet) Target(index int) *device.RenderTarget {
	return s.targets[index]
}

func (s *cascadeSet) DepthStencil(index int) *device.DepthStencil {
	return s.depths[index]
}

func (s *cascadeSet) Splits() []float32 {
	return s.settings.Splits
}

func (s *cascadeSet) Resolution() int {
	return s.settings.Resolution
}

func (s *cascadeSet) Update(cameraPosition [3]float32) {
	lightMoved := !s.computed ||
		s.light.Position() != s.lastLightPosition ||
		s.light.Rotation() != s.lastLightRotation
	cameraMoved := !s.computed || cameraPosition != s.lastCameraPos

	if !lightMoved && !cameraMoved {
		return
	}

	if lightMoved {
		s.computeViewMatrix()
	}
	s.computeProjections(cameraPosition)

	s.lastLightPosition = s.light.Position()
	s.lastLightRotation = s.light.Rotation()
	s.lastCameraPos = cameraPosition
	s.computed = true
}

// computeViewMatrix derives the light's view matrix from its own transform.
// The view is camera-independent so a camera move alone never touches it.
func (s *cascadeSet) computeViewMatrix() {
	pos := s.light.Position()
	dir := s.light.Direction()

	up := [3]float32{0, 1, 0}
	if math32.Abs(dir[1]) > 0.999 {
		up = [3]float32{0, 0, 1}
	}
	common.LookAt(s.viewMatrix[:],
		pos[0], pos[1], pos[2],
		pos[0]+dir[0], pos[1]+dir[1], pos[2]+dir[2],
		up[0], up[1], up[2])
}

// pointFaceView writes the view matrix for one cube face of a point light.
func (s *cascadeSet) pointFaceView(out []float32, face int) {
	pos := s.light.Position()
	dirs := [6][3]float32{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	ups := [6][3]float32{
		{0, 1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
		{0, 1, 0}, {0, 1, 0},
	}
	d := dirs[face]
	u := ups[face]
	common.LookAt(out,
		pos[0], pos[1], pos[2],
		pos[0]+d[0], pos[1]+d[1], pos[2]+d[2],
		u[0], u[1], u[2])
}

func (s *cascadeSet) computeProjections(cameraPosition [3]float32) {
	switch s.light.Type() {
	case LightTypeDirectional:
		for i := 0; i < s.count; i++ {
			s.computeDirectionalProjection(i, cameraPosition)
		}
	case LightTypePoint:
		for i := 0; i < s.count; i++ {
			common.Perspective(s.projections[i][:], math32.Pi/2, 1, 0.1, s.light.Range())
			var view [16]float32
			s.pointFaceView(view[:], i)
			s.frustums[i].Construct(view[:], s.projections[i][:], s.light.Range())
		}
	case LightTypeSpot:
		fov := 2 * s.light.OuterConeAngle()
		common.Perspective(s.projections[0][:], fov, 1, 0.1, s.light.Range())
		s.frustums[0].Construct(s.viewMatrix[:], s.projections[0][:], s.light.Range())
	}
}

// computeDirectionalProjection builds one cascade's orthographic projection:
// a cube of the cascade's half extent centered on the camera position in
// light view space, texel-snapped to the shadow map grid.
func (s *cascadeSet) computeDirectionalProjection(index int, cameraPosition [3]float32) {
	halfExtent := s.settings.HalfExtents[index]

	cx, cy, cz := common.TransformPoint(s.viewMatrix[:], cameraPosition[0], cameraPosition[1], cameraPosition[2])
	minCorner := [3]float32{cx - halfExtent, cy - halfExtent, cz - halfExtent}
	maxCorner := [3]float32{cx + halfExtent, cy + halfExtent, cz + halfExtent}

	minCorner, maxCorner = SnapToTexelGrid(minCorner, maxCorner, halfExtent, s.settings.Resolution)

	// The view looks down -Z, so the box z range converts to positive
	// near/far distances along the view direction.
	near := -maxCorner[2]
	far := -minCorner[2]
	common.OrthoOffCenter(s.projections[index][:],
		minCorner[0], maxCorner[0],
		minCorner[1], maxCorner[1],
		near, far)

	s.frustums[index].Construct(s.viewMatrix[:], s.projections[index][:], far)
}

// SnapToTexelGrid quantizes a shadow bounding box to whole shadow map texels.
// The minimum corner is floored and the maximum corner is ceiled, so the
// snapped box always contains the original box and snapping an already
// snapped box changes nothing. Quantizing to the texel grid stops shadow
// edges from shimmering as the camera moves in sub-texel steps.
//
// Parameters:
//   - minCorner: the minimum corner of the box in light view space
//   - maxCorner: the maximum corner of the box in light view space
//   - halfExtent: the cascade half extent in world units
//   - resolution: the shadow map size in texels
//
// Returns:
//   - [3]float32: the snapped minimum corner
//   - [3]float32: the snapped maximum corner
func SnapToTexelGrid(minCorner, maxCorner [3]float32, halfExtent float32, resolution int) ([3]float32, [3]float32) {
	worldUnitsPerTexel := (2 * halfExtent) / float32(resolution)
	if worldUnitsPerTexel <= 0 {
		return minCorner, maxCorner
	}
	for axis := 0; axis < 3; axis++ {
		minCorner[axis] = math32.Floor(minCorner[axis]/worldUnitsPerTexel) * worldUnitsPerTexel
		maxCorner[axis] = math32.Ceil(maxCorner[axis]/worldUnitsPerTexel) * worldUnitsPerTexel
	}
	return minCorner, maxCorner
}
