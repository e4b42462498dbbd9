package camera

import (
	"sync"

	"github.com/Carmen-Shannon/umbra-go/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	clearColor common.Color

	viewMatrix       [16]float32
	baseViewMatrix   [16]float32
	projectionMatrix [16]float32
	orthoMatrix      [16]float32
	orthoWidth       float32
	orthoHeight      float32
}

// Camera defines the interface for the camera system. The camera holds
// perspective settings and derives its matrices from position and target on
// every Update. The base view matrix is the view with translation removed,
// used for skybox rendering and full-screen passes.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the camera's world-space position and recomputes the
	// view matrices.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the look target
	Target() [3]float32

	// SetTarget sets the look target and recomputes the view matrices.
	//
	// Parameters:
	//   - target: the new look target
	SetTarget(target [3]float32)

	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ClearColor returns the color the frame is cleared to before rendering.
	//
	// Returns:
	//   - common.Color: the clear color
	ClearColor() common.Color

	// SetAspect sets the aspect ratio (width / height) and recomputes the
	// projection matrix.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetOrthographicSize sets the dimensions of the orthographic projection
	// used by full-screen passes and recomputes it.
	//
	// Parameters:
	//   - width: the viewport width in pixels
	//   - height: the viewport height in pixels
	SetOrthographicSize(width, height float32)

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// BaseViewMatrix returns the fixed screen-space view matrix used by the
	// full-screen passes, as 16 floats (column-major). Paired with the
	// orthographic projection it maps a screen-sized quad onto the near
	// plane.
	//
	// Returns:
	//   - [16]float32: the base view matrix
	BaseViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 perspective projection matrix
	// as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// OrthographicMatrix returns the current orthographic projection matrix
	// as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the orthographic projection matrix
	OrthographicMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera configured with the provided options.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		target:     [3]float32{0, 0, 1},
		up:         [3]float32{0, 1, 0},
		fov:        1.0471976, // 60 degrees
		aspect:     16.0 / 9.0,
		near:       0.3,
		far:        1000.0,
		clearColor: common.ColorBlack,
		orthoWidth: 1920, orthoHeight: 1080,
	}
	for _, opt := range options {
		opt(c)
	}
	c.recompute()
	return c
}

// recompute rebuilds every derived matrix. Callers must hold mu.
func (c *cameraImpl) recompute() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2])

	// Base view ignores camera placement entirely. The eye sits one near
	// distance behind the origin so a quad on the z=0 plane lands exactly
	// on the near plane of the orthographic projection below.
	common.LookAt(c.baseViewMatrix[:],
		0, 0, c.near,
		0, 0, 0,
		0, 1, 0)

	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Ortho(c.orthoMatrix[:], c.orthoWidth, c.orthoHeight, c.near, c.far)
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.position == position {
		return
	}
	c.position = position
	c.recompute()
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(target [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == target {
		return
	}
	c.target = target
	c.recompute()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ClearColor() common.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 || c.aspect == aspect {
		return
	}
	c.aspect = aspect
	c.recompute()
}

func (c *cameraImpl) SetOrthographicSize(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	if c.orthoWidth == width && c.orthoHeight == height {
		return
	}
	c.orthoWidth = width
	c.orthoHeight = height
	c.recompute()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) BaseViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseViewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) OrthographicMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthoMatrix
}
