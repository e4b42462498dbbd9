package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// fullscreenQuad is the shared screen-space geometry for the lighting and
// post-process passes. Vertices span the output resolution around the
// origin; the passes map them to clip space with the camera's base view and
// orthographic projection. Rebuilt whenever the resolution changes.
type fullscreenQuad struct {
	vertices *device.VertexBuffer
	indices  *device.IndexBuffer
}

// quadStride is the byte stride of a position + uv vertex.
const quadStride = 5 * 4

// newFullscreenQuad uploads a two-triangle quad sized to the output
// resolution, centered on the origin of the z=0 plane.
//
// Parameters:
//   - dev: the device to upload to
//   - width: output width in pixels
//   - height: output height in pixels
//
// Returns:
//   - *fullscreenQuad: the uploaded quad
//   - error: an error if buffer creation fails
func newFullscreenQuad(dev device.Device, width, height int) (*fullscreenQuad, error) {
	hw := float32(width) / 2
	hh := float32(height) / 2
	// x, y, z, u, v with v flipped so uv origin is top-left.
	verts := []float32{
		-hw, -hh, 0, 0, 1,
		hw, -hh, 0, 1, 1,
		hw, hh, 0, 1, 0,
		-hw, hh, 0, 0, 0,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	vb, err := dev.CreateVertexBuffer(common.SliceToBytes(verts), quadStride)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad vertex buffer: %w", err)
	}
	ib, err := dev.CreateIndexBuffer(indices)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad index buffer: %w", err)
	}
	return &fullscreenQuad{vertices: vb, indices: ib}, nil
}
