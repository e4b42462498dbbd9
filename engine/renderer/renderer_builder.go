package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/physics"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/pipeline_state"
	"github.com/Carmen-Shannon/umbra-go/engine/scene"
)

// RendererOption configures a Renderer during construction.
type RendererOption func(*renderer)

// NewRenderer creates a Renderer drawing through the given device. GPU
// resources are allocated lazily on the first Render call.
//
// Parameters:
//   - dev: the device to render through
//   - width: the initial output width in pixels
//   - height: the initial output height in pixels
//   - options: optional configuration functions
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if the device is nil or the dimensions are invalid
func NewRenderer(dev device.Device, width, height int, options ...RendererOption) (Renderer, error) {
	if dev == nil {
		return nil, fmt.Errorf("renderer requires a device")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer dimensions must be positive, got %dx%d", width, height)
	}

	r := &renderer{
		mu:           &sync.Mutex{},
		dev:          dev,
		state:        pipeline_state.NewPipelineState(dev),
		noiseSize:    256,
		width:        width,
		height:       height,
		shadowArrays: make(map[light.CascadeSet]*device.Texture),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// WithScene attaches the scene the renderer draws from.
//
// Parameters:
//   - s: the scene to attach
//
// Returns:
//   - RendererOption: the option function
func WithScene(s scene.Scene) RendererOption {
	return func(r *renderer) {
		r.scene = s
	}
}

// WithDebugDraw attaches a debug line source for the editor overlay.
//
// Parameters:
//   - d: the debug draw accumulator
//
// Returns:
//   - RendererOption: the option function
func WithDebugDraw(d physics.DebugDraw) RendererOption {
	return func(r *renderer) {
		r.debugDraw = d
	}
}

// WithEditorMode enables the debug overlay pass.
//
// Parameters:
//   - enabled: whether editor rendering is active
//
// Returns:
//   - RendererOption: the option function
func WithEditorMode(enabled bool) RendererOption {
	return func(r *renderer) {
		r.editorMode = enabled
	}
}

// WithNoiseTextureSize overrides the dither noise texture resolution.
//
// Parameters:
//   - size: the square texture size in pixels
//
// Returns:
//   - RendererOption: the option function
func WithNoiseTextureSize(size int) RendererOption {
	return func(r *renderer) {
		if size > 0 {
			r.noiseSize = size
		}
	}
}

// WithPreRenderHook appends a callback invoked at the start of every Render
// call, before any pass encodes.
//
// Parameters:
//   - hook: the callback to append
//
// Returns:
//   - RendererOption: the option function
func WithPreRenderHook(hook func()) RendererOption {
	return func(r *renderer) {
		if hook != nil {
			r.preRender = append(r.preRender, hook)
		}
	}
}

// WithPostRenderHook appends a callback invoked after every frame is
// presented.
//
// Parameters:
//   - hook: the callback to append
//
// Returns:
//   - RendererOption: the option function
func WithPostRenderHook(hook func()) RendererOption {
	return func(r *renderer) {
		if hook != nil {
			r.postRender = append(r.postRender, hook)
		}
	}
}
