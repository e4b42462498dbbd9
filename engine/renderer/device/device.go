// Package device defines the graphics-device boundary consumed by the
// renderer. It exposes resource creation, ordered state-commit primitives,
// and command submission behind one interface so the frame orchestrator and
// pipeline state cache never touch a graphics API directly.
package device

import (
	"github.com/Carmen-Shannon/umbra-go/common"
)

// PrimitiveTopology identifies how vertices are assembled into primitives.
type PrimitiveTopology int

const (
	// TopologyTriangleList assembles every three vertices into a triangle.
	TopologyTriangleList PrimitiveTopology = iota
	// TopologyLineList assembles every two vertices into a line segment.
	TopologyLineList
)

// CullMode identifies which triangle faces are discarded during rasterization.
type CullMode int

const (
	// CullModeNone rasterizes both faces.
	CullModeNone CullMode = iota
	// CullModeBack discards back faces. The default for opaque geometry.
	CullModeBack
	// CullModeFront discards front faces. Used by the shadow depth pass to
	// reduce peter-panning on thin geometry.
	CullModeFront
)

// FillMode identifies how triangles are rasterized.
type FillMode int

const (
	// FillModeSolid rasterizes filled triangles.
	FillModeSolid FillMode = iota
	// FillModeWireframe rasterizes triangle edges only.
	FillModeWireframe
)

// InputLayout identifies a fixed vertex attribute layout. Layouts are a small
// closed set rather than reflected from shaders so the hot path compares a
// single integer.
type InputLayout int

const (
	// InputLayoutNone is the zero value; committing it is invalid.
	InputLayoutNone InputLayout = iota
	// InputLayoutStatic is position, normal, tangent, and texture coordinates.
	// Used by all mesh geometry.
	InputLayoutStatic
	// InputLayoutPositionTexture is position and texture coordinates only.
	// Used by the full-screen quad.
	InputLayoutPositionTexture
	// InputLayoutPositionColor is position and vertex color. Used by debug lines.
	InputLayoutPositionColor
)

// TargetFormat identifies the pixel format of a render target.
type TargetFormat int

const (
	// FormatRGBA8Unorm is 8 bits per channel, normalized. Ping-pong and
	// presentation targets.
	FormatRGBA8Unorm TargetFormat = iota
	// FormatRGBA16Float is 16-bit float per channel. G-buffer channels.
	FormatRGBA16Float
	// FormatR32Float is a single 32-bit float channel. Shadow map targets.
	FormatR32Float
)

// Viewport describes the rasterizer viewport rectangle and depth range.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// Shader is a compiled vertex/pixel shader program pair created through a
// Device. The zero value is not usable; obtain instances from CreateShader.
type Shader struct {
	name   string
	native any
}

// Name returns the identifier the shader was created with.
//
// Returns:
//   - string: the shader name
func (s *Shader) Name() string { return s.name }

// Texture is a sampleable GPU texture created through a Device.
type Texture struct {
	width, height uint32
	layers        int
	native        any
}

// Width returns the texture width in texels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() uint32 { return t.height }

// Layers returns the number of array layers, 1 for a plain 2D texture.
func (t *Texture) Layers() int { return t.layers }

// Sampler is a GPU sampler object created through a Device.
type Sampler struct {
	native any
}

// VertexBuffer is a GPU vertex buffer created through a Device.
type VertexBuffer struct {
	stride int
	count  int
	native any
}

// Stride returns the size in bytes of one vertex.
func (b *VertexBuffer) Stride() int { return b.stride }

// Count returns the number of vertices in the buffer.
func (b *VertexBuffer) Count() int { return b.count }

// IndexBuffer is a GPU index buffer created through a Device.
type IndexBuffer struct {
	count  int
	native any
}

// Count returns the number of indices in the buffer.
func (b *IndexBuffer) Count() int { return b.count }

// ConstantBuffer is a GPU uniform buffer created through a Device.
type ConstantBuffer struct {
	size   int
	native any
}

// Size returns the buffer capacity in bytes.
func (b *ConstantBuffer) Size() int { return b.size }

// DepthStencil is a depth buffer created through a Device. It can be shared
// by several render targets of the same dimensions.
type DepthStencil struct {
	width, height int
	native        any
}

// Width returns the depth buffer width in texels.
func (d *DepthStencil) Width() int { return d.width }

// Height returns the depth buffer height in texels.
func (d *DepthStencil) Height() int { return d.height }

// RenderTarget is a color target created through a Device. Its texture view
// can be sampled by later passes once the target is no longer bound for
// writing.
type RenderTarget struct {
	width, height int
	format        TargetFormat
	texture       *Texture
	backbuffer    bool
	native        any
}

// Width returns the target width in texels.
func (r *RenderTarget) Width() int { return r.width }

// Height returns the target height in texels.
func (r *RenderTarget) Height() int { return r.height }

// Format returns the target's pixel format.
func (r *RenderTarget) Format() TargetFormat { return r.format }

// Texture returns the sampleable view of the target, or nil for the
// backbuffer, which can never be sampled.
//
// Returns:
//   - *Texture: the target's texture view
func (r *RenderTarget) Texture() *Texture { return r.texture }

// IsBackbuffer reports whether this target is the swapchain backbuffer.
func (r *RenderTarget) IsBackbuffer() bool { return r.backbuffer }

// Device is the graphics-device abstraction the renderer drives. Implementations
// are single-writer: only the render thread may call into a Device, so no
// implementation needs internal locking for the commit and draw paths.
//
// State-commit primitives are invoked only by the pipeline state cache, which
// guarantees each distinct value is committed at most once between draws.
type Device interface {
	// CreateRenderTarget creates a color render target of the given size and
	// format, including a sampleable texture view.
	//
	// Parameters:
	//   - width: target width in texels (must be > 0)
	//   - height: target height in texels (must be > 0)
	//   - format: pixel format for the color attachment
	//
	// Returns:
	//   - *RenderTarget: the created target
	//   - error: an error if creation fails
	CreateRenderTarget(width, height int, format TargetFormat) (*RenderTarget, error)

	// CreateDepthStencil creates a depth buffer of the given size.
	//
	// Parameters:
	//   - width: depth buffer width in texels (must be > 0)
	//   - height: depth buffer height in texels (must be > 0)
	//
	// Returns:
	//   - *DepthStencil: the created depth buffer
	//   - error: an error if creation fails
	CreateDepthStencil(width, height int) (*DepthStencil, error)

	// CreateTexture creates a sampleable 2D texture from staging data, with
	// optional pre-generated mip levels ordered from largest to smallest.
	//
	// Parameters:
	//   - data: pixel data and dimensions for the base level
	//   - mips: additional mip level pixel data, may be nil
	//
	// Returns:
	//   - *Texture: the created texture
	//   - error: an error if creation fails
	CreateTexture(data common.TextureStagingData, mips [][]byte) (*Texture, error)

	// CreateTextureArray creates a single texture array resource from
	// equally sized layer textures. Binding one array is cheaper than
	// binding each layer individually.
	//
	// Parameters:
	//   - layers: the layer textures, all of identical dimensions
	//
	// Returns:
	//   - *Texture: the created array texture
	//   - error: an error if creation fails or the layers mismatch
	CreateTextureArray(layers []*Texture) (*Texture, error)

	// CreateSampler creates a sampler from staging data.
	//
	// Parameters:
	//   - data: the sampler configuration
	//
	// Returns:
	//   - *Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler(data common.SamplerStagingData) (*Sampler, error)

	// CreateVertexBuffer creates and fills a vertex buffer.
	//
	// Parameters:
	//   - data: raw vertex bytes
	//   - stride: size in bytes of one vertex (must be > 0)
	//
	// Returns:
	//   - *VertexBuffer: the created buffer
	//   - error: an error if creation fails
	CreateVertexBuffer(data []byte, stride int) (*VertexBuffer, error)

	// CreateIndexBuffer creates and fills a 32-bit index buffer.
	//
	// Parameters:
	//   - indices: the index values
	//
	// Returns:
	//   - *IndexBuffer: the created buffer
	//   - error: an error if creation fails
	CreateIndexBuffer(indices []uint32) (*IndexBuffer, error)

	// CreateConstantBuffer creates an empty uniform buffer of the given size.
	//
	// Parameters:
	//   - size: buffer capacity in bytes (must be > 0)
	//
	// Returns:
	//   - *ConstantBuffer: the created buffer
	//   - error: an error if creation fails
	CreateConstantBuffer(size int) (*ConstantBuffer, error)

	// UpdateConstantBuffer replaces the contents of a uniform buffer.
	//
	// Parameters:
	//   - buffer: the buffer to write (must not be nil)
	//   - data: the bytes to upload, at most the buffer's capacity
	//
	// Returns:
	//   - error: an error if the write fails
	UpdateConstantBuffer(buffer *ConstantBuffer, data []byte) error

	// UpdateVertexBuffer replaces the contents of a vertex buffer, growing it
	// if the new data is larger. Used by the debug-line pass which re-uploads
	// only when the physics collaborator reports new lines.
	//
	// Parameters:
	//   - buffer: the buffer to write (must not be nil)
	//   - data: the bytes to upload
	//
	// Returns:
	//   - error: an error if the write fails
	UpdateVertexBuffer(buffer *VertexBuffer, data []byte) error

	// CreateShader compiles a vertex/pixel program pair from one source module.
	//
	// Parameters:
	//   - name: identifier for error reporting and pipeline caching
	//   - source: the shader source
	//   - vertexEntry: vertex entry point name
	//   - pixelEntry: pixel entry point name, empty for depth-only shaders
	//
	// Returns:
	//   - *Shader: the compiled program pair
	//   - error: an error if compilation fails
	CreateShader(name, source, vertexEntry, pixelEntry string) (*Shader, error)

	// Backbuffer returns the render target representing the swapchain
	// backbuffer. The returned value is stable across frames; its dimensions
	// track the surface size.
	//
	// Returns:
	//   - *RenderTarget: the backbuffer target
	Backbuffer() *RenderTarget

	// CommitTopology applies the primitive topology to the device context.
	CommitTopology(topology PrimitiveTopology) error

	// CommitInputLayout applies the vertex input layout to the device context.
	CommitInputLayout(layout InputLayout) error

	// CommitRasterizer applies the cull and fill modes to the device context.
	CommitRasterizer(cull CullMode, fill FillMode) error

	// CommitSamplers applies the sampler set to the device context.
	CommitSamplers(samplers []*Sampler) error

	// CommitTextures applies the shader-resource texture set to the device
	// context. Nil entries are legal and bind an empty slot, keeping the
	// slot layout fixed for shaders that expect it.
	CommitTextures(textures []*Texture) error

	// CommitVertexBuffer applies the vertex buffer to the device context.
	CommitVertexBuffer(buffer *VertexBuffer) error

	// CommitIndexBuffer applies the index buffer to the device context.
	CommitIndexBuffer(buffer *IndexBuffer) error

	// CommitConstantBuffers applies the uniform buffer set to the device context.
	CommitConstantBuffers(buffers []*ConstantBuffer) error

	// CommitShaders applies the vertex and pixel shaders to the device
	// context. The pixel shader may be nil for depth-only rendering.
	CommitShaders(vertex, pixel *Shader) error

	// CommitRenderTargets applies the render target set and optional depth
	// buffer to the device context. Any previously bound targets become
	// sampleable again.
	CommitRenderTargets(targets []*RenderTarget, depth *DepthStencil) error

	// CommitViewport applies the rasterizer viewport to the device context.
	CommitViewport(viewport Viewport) error

	// Draw submits a non-indexed draw with the currently committed state.
	//
	// Parameters:
	//   - vertexCount: number of vertices to draw
	//
	// Returns:
	//   - error: an error if submission fails
	Draw(vertexCount int) error

	// DrawIndexed submits an indexed draw with the currently committed state.
	//
	// Parameters:
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if submission fails
	DrawIndexed(indexCount int) error

	// Clear fills a render target with a solid color.
	//
	// Parameters:
	//   - target: the target to clear (must not be nil)
	//   - color: the clear color
	//
	// Returns:
	//   - error: an error if the clear fails
	Clear(target *RenderTarget, color common.Color) error

	// ClearDepth resets a depth buffer to the maximum depth value.
	//
	// Parameters:
	//   - depth: the depth buffer to clear (must not be nil)
	//
	// Returns:
	//   - error: an error if the clear fails
	ClearDepth(depth *DepthStencil) error

	// Present displays the backbuffer and ends the frame's command stream.
	//
	// Returns:
	//   - error: an error if presentation fails
	Present() error

	// Resize reconfigures the backbuffer for a new surface size. Must only be
	// called between Present and the next frame's first commit.
	//
	// Parameters:
	//   - width: new surface width in pixels (must be > 0)
	//   - height: new surface height in pixels (must be > 0)
	//
	// Returns:
	//   - error: an error if reconfiguration fails
	Resize(width, height int) error
}
