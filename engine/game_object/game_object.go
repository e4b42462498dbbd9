package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"
	"github.com/chewxy/math32"
)

var nextObjectID atomic.Uint64

// MeshFilter holds the geometry reference of a game object.
type MeshFilter struct {
	// Mesh is the geometry this object renders with, or nil.
	Mesh model.Mesh
}

// MeshRenderer holds the rendering configuration of a game object.
type MeshRenderer struct {
	// Material is the surface description this object renders with, or nil.
	Material material.Material

	// CastsShadows controls whether the object is drawn into shadow maps.
	CastsShadows bool

	// ReceivesShadows controls whether shadow maps are sampled when shading
	// the object.
	ReceivesShadows bool
}

// gameObject is the implementation of the GameObject interface.
type gameObject struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	enabled bool

	meshFilter   MeshFilter
	meshRenderer MeshRenderer

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	worldTransform  [16]float32
	boundingCenter  [3]float32
	boundingExtents [3]float32
	transformStale  bool
}

// GameObject defines the interface for a renderable scene entity. Geometry
// and rendering configuration live in typed fields resolved at construction,
// so the per-frame render loop never performs component lookups. The world
// transform and world-space bounding volume are cached and recomputed only
// when the transform changes.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// MeshFilter returns the geometry reference of this object.
	//
	// Returns:
	//   - MeshFilter: the mesh filter
	MeshFilter() MeshFilter

	// MeshRenderer returns the rendering configuration of this object.
	//
	// Returns:
	//   - MeshRenderer: the mesh renderer
	MeshRenderer() MeshRenderer

	// Position returns the world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// Rotation returns the rotation in radians per axis.
	//
	// Returns:
	//   - [3]float32: the rotation
	Rotation() [3]float32

	// SetRotation sets the rotation in radians per axis.
	//
	// Parameters:
	//   - rotation: the new rotation
	SetRotation(rotation [3]float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - [3]float32: the scale
	Scale() [3]float32

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - scale: the new scale
	SetScale(scale [3]float32)

	// WorldTransform returns the cached world matrix, rebuilding it if the
	// transform changed since the last query.
	//
	// Returns:
	//   - [16]float32: the column-major world matrix
	WorldTransform() [16]float32

	// BoundingCenter returns the world-space center of the object's bounding
	// volume. Zero if the object has no mesh.
	//
	// Returns:
	//   - [3]float32: the bounding center
	BoundingCenter() [3]float32

	// BoundingExtents returns the world-space half extents of the object's
	// bounding volume. Zero if the object has no mesh.
	//
	// Returns:
	//   - [3]float32: the bounding half extents
	BoundingExtents() [3]float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the provided options.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions to configure the object
//
// Returns:
//   - GameObject: a new GameObject instance
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:             &sync.RWMutex{},
		id:             nextObjectID.Add(1),
		enabled:        true,
		scale:          [3]float32{1, 1, 1},
		transformStale: true,
	}
	g.meshRenderer.CastsShadows = true
	g.meshRenderer.ReceivesShadows = true
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
}

func (g *gameObject) MeshFilter() MeshFilter {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.meshFilter
}

func (g *gameObject) MeshRenderer() MeshRenderer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.meshRenderer
}

func (g *gameObject) Position() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) SetPosition(position [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.position == position {
		return
	}
	g.position = position
	g.transformStale = true
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *gameObject) SetRotation(rotation [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rotation == rotation {
		return
	}
	g.rotation = rotation
	g.transformStale = true
}

func (g *gameObject) Scale() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale
}

func (g *gameObject) SetScale(scale [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.scale == scale {
		return
	}
	g.scale = scale
	g.transformStale = true
}

func (g *gameObject) WorldTransform() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refresh()
	return g.worldTransform
}

func (g *gameObject) BoundingCenter() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refresh()
	return g.boundingCenter
}

func (g *gameObject) BoundingExtents() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refresh()
	return g.boundingExtents
}

// refresh rebuilds the world matrix and world-space bounds if the transform
// changed since the last query. Callers must hold mu for writing because the
// cached matrix and bounds are rebuilt in place.
func (g *gameObject) refresh() {
	if !g.transformStale {
		return
	}
	g.transformStale = false

	common.BuildModelMatrix(g.worldTransform[:],
		g.position[0], g.position[1], g.position[2],
		g.rotation[0], g.rotation[1], g.rotation[2],
		g.scale[0], g.scale[1], g.scale[2])

	mesh := g.meshFilter.Mesh
	if mesh == nil {
		g.boundingCenter = [3]float32{}
		g.boundingExtents = [3]float32{}
		return
	}

	localCenter := mesh.BoundingCenter()
	localExtents := mesh.BoundingExtents()

	cx, cy, cz := common.TransformPoint(g.worldTransform[:], localCenter[0], localCenter[1], localCenter[2])
	g.boundingCenter = [3]float32{cx, cy, cz}

	// World extents of a rotated box come from the absolute value of the
	// upper 3x3, which keeps the volume conservative under rotation.
	for row := 0; row < 3; row++ {
		g.boundingExtents[row] = math32.Abs(g.worldTransform[row])*localExtents[0] +
			math32.Abs(g.worldTransform[4+row])*localExtents[1] +
			math32.Abs(g.worldTransform[8+row])*localExtents[2]
	}
}
