package camera

import (
	"github.com/Carmen-Shannon/umbra-go/common"
)

// CameraBuilderOption is a function that configures a camera instance during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the camera's world-space position.
//
// Parameters:
//   - position: the camera position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a camera
func WithPosition(position [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithTarget is an option builder that sets the point the camera looks at.
//
// Parameters:
//   - target: the look target
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a camera
func WithTarget(target [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp is an option builder that sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a camera
func WithUp(up [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov is an option builder that sets the field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that applies the fov option to a camera
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if fov > 0 {
			c.fov = fov
		}
	}
}

// WithAspect is an option builder that sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: a function that applies the aspect option to a camera
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes is an option builder that sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip plane option to a camera
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near = near
			c.far = far
		}
	}
}

// WithClearColor is an option builder that sets the frame clear color.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - CameraBuilderOption: a function that applies the clear color option to a camera
func WithClearColor(color common.Color) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearColor = color
	}
}
