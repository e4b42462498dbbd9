package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// gBuffer holds the geometry pass outputs. The four color channels use a
// 16-bit float format so normals and linear depth survive without banding;
// all channels share one depth stencil so the lighting pass reads a single
// coherent surface set.
type gBuffer struct {
	albedo   *device.RenderTarget
	normal   *device.RenderTarget
	depth    *device.RenderTarget
	material *device.RenderTarget

	depthStencil *device.DepthStencil

	width  int
	height int
}

// newGBuffer allocates all geometry pass surfaces at the given resolution.
// On resolution change the whole set is rebuilt rather than resized in place.
//
// Parameters:
//   - dev: the device to allocate on
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - *gBuffer: the allocated surface set
//   - error: an error if any surface fails to allocate
func newGBuffer(dev device.Device, width, height int) (*gBuffer, error) {
	g := &gBuffer{width: width, height: height}

	var err error
	if g.albedo, err = dev.CreateRenderTarget(width, height, device.FormatRGBA16Float); err != nil {
		return nil, fmt.Errorf("failed to create albedo target: %w", err)
	}
	if g.normal, err = dev.CreateRenderTarget(width, height, device.FormatRGBA16Float); err != nil {
		return nil, fmt.Errorf("failed to create normal target: %w", err)
	}
	if g.depth, err = dev.CreateRenderTarget(width, height, device.FormatRGBA16Float); err != nil {
		return nil, fmt.Errorf("failed to create depth target: %w", err)
	}
	if g.material, err = dev.CreateRenderTarget(width, height, device.FormatRGBA16Float); err != nil {
		return nil, fmt.Errorf("failed to create material target: %w", err)
	}
	if g.depthStencil, err = dev.CreateDepthStencil(width, height); err != nil {
		return nil, fmt.Errorf("failed to create geometry depth stencil: %w", err)
	}
	return g, nil
}

// targets returns the color channels in the order the geometry shader writes
// them: albedo, normal, depth, material.
func (g *gBuffer) targets() []*device.RenderTarget {
	return []*device.RenderTarget{g.albedo, g.normal, g.depth, g.material}
}

// textures returns the color channels as sampleable textures in the same
// order as targets.
func (g *gBuffer) textures() []*device.Texture {
	return []*device.Texture{g.albedo.Texture(), g.normal.Texture(), g.depth.Texture(), g.material.Texture()}
}
