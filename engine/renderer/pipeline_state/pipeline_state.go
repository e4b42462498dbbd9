package pipeline_state

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// Category identifies one group of GPU binding state tracked independently
// for dirty checking.
type Category int

const (
	// CategoryTopology covers the primitive topology.
	CategoryTopology Category = iota

	// CategoryInputLayout covers the vertex input layout.
	CategoryInputLayout

	// CategoryRasterizer covers cull mode and fill mode.
	CategoryRasterizer

	// CategorySamplers covers the bound sampler set.
	CategorySamplers

	// CategoryTextures covers the bound texture set.
	CategoryTextures

	// CategoryVertexBuffer covers the bound vertex buffer.
	CategoryVertexBuffer

	// CategoryIndexBuffer covers the bound index buffer.
	CategoryIndexBuffer

	// CategoryConstantBuffers covers the bound constant buffer set.
	CategoryConstantBuffers

	// CategoryShaders covers the vertex and pixel shader pair.
	CategoryShaders

	// CategoryRenderTargets covers the render target set and depth stencil.
	CategoryRenderTargets

	// CategoryViewport covers the viewport rectangle.
	CategoryViewport

	categoryCount
)

// pipelineState is the implementation of the PipelineState interface.
// It caches the desired binding state per category and commits only dirty
// categories to the device on Bind.
type pipelineState struct {
	device device.Device

	topology    device.PrimitiveTopology
	inputLayout device.InputLayout
	cullMode    device.CullMode
	fillMode    device.FillMode

	samplers        []*device.Sampler
	textures        []*device.Texture
	vertexBuffer    *device.VertexBuffer
	indexBuffer     *device.IndexBuffer
	constantBuffers []*device.ConstantBuffer

	vertexShader *device.Shader
	pixelShader  *device.Shader

	renderTargets []*device.RenderTarget
	depthStencil  *device.DepthStencil
	viewport      device.Viewport

	dirty [categoryCount]bool
}

var _ PipelineState = &pipelineState{}

// PipelineState tracks the desired GPU binding state and lazily commits it.
// Each setter is a no-op when the supplied value matches the cached value, so
// redundant calls across draws cost nothing beyond the comparison. Bind
// commits only the categories that changed since the previous Bind.
//
// A PipelineState is single-writer; only the owning render thread may call
// into it.
type PipelineState interface {
	// SetPrimitiveTopology sets the primitive topology for subsequent draws.
	//
	// Parameters:
	//   - topology: the topology to assemble vertices with
	SetPrimitiveTopology(topology device.PrimitiveTopology)

	// SetInputLayout sets the vertex input layout for subsequent draws.
	//
	// Parameters:
	//   - layout: the vertex layout, must not be InputLayoutNone
	//
	// Returns:
	//   - error: an error if the layout is InputLayoutNone
	SetInputLayout(layout device.InputLayout) error

	// SetRasterizerState sets the cull and fill modes for subsequent draws.
	//
	// Parameters:
	//   - cull: which faces to cull
	//   - fill: solid or wireframe rasterization
	SetRasterizerState(cull device.CullMode, fill device.FillMode)

	// SetSamplers sets the sampler set. Any element differing from the cached
	// set dirties the whole category.
	//
	// Parameters:
	//   - samplers: the samplers to bind, must be non-empty
	//
	// Returns:
	//   - error: an error if the set is empty
	SetSamplers(samplers []*device.Sampler) error

	// SetTextures sets the texture set. Nil entries are permitted and bind an
	// empty slot, which keeps shader slot layouts stable when an optional
	// texture is absent.
	//
	// Parameters:
	//   - textures: the textures to bind, must be non-empty
	//
	// Returns:
	//   - error: an error if the set is empty
	SetTextures(textures []*device.Texture) error

	// SetTexture sets a single-element texture set.
	//
	// Parameters:
	//   - texture: the texture to bind, must not be nil
	//
	// Returns:
	//   - error: an error if the texture is nil
	SetTexture(texture *device.Texture) error

	// SetVertexBuffer sets the vertex buffer for subsequent draws.
	//
	// Parameters:
	//   - buffer: the vertex buffer, must not be nil
	//
	// Returns:
	//   - error: an error if the buffer is nil
	SetVertexBuffer(buffer *device.VertexBuffer) error

	// SetIndexBuffer sets the index buffer for subsequent indexed draws.
	//
	// Parameters:
	//   - buffer: the index buffer, must not be nil
	//
	// Returns:
	//   - error: an error if the buffer is nil
	SetIndexBuffer(buffer *device.IndexBuffer) error

	// SetConstantBuffers sets the constant buffer set. Any element differing
	// from the cached set dirties the whole category.
	//
	// Parameters:
	//   - buffers: the constant buffers to bind, must be non-empty
	//
	// Returns:
	//   - error: an error if the set is empty
	SetConstantBuffers(buffers []*device.ConstantBuffer) error

	// SetShaders sets the vertex and pixel shader pair. A nil pixel shader is
	// permitted for depth-only rendering.
	//
	// Parameters:
	//   - vertex: the vertex shader, must not be nil
	//   - pixel: the pixel shader, or nil for depth-only passes
	//
	// Returns:
	//   - error: an error if the vertex shader is nil
	SetShaders(vertex, pixel *device.Shader) error

	// SetRenderTargets sets the render target set and depth stencil. A nil
	// depth stencil disables depth testing for the pass.
	//
	// Parameters:
	//   - targets: the color targets to bind
	//   - depth: the depth stencil to bind, or nil
	//
	// Returns:
	//   - error: an error if both the target set is empty and depth is nil
	SetRenderTargets(targets []*device.RenderTarget, depth *device.DepthStencil) error

	// SetViewport sets the viewport rectangle.
	//
	// Parameters:
	//   - viewport: the viewport, width and height must be positive
	//
	// Returns:
	//   - error: an error if the viewport has non-positive dimensions
	SetViewport(viewport device.Viewport) error

	// IsDirty reports whether a category has pending changes that the next
	// Bind will commit.
	//
	// Parameters:
	//   - category: the category to query
	//
	// Returns:
	//   - bool: true if the category will be committed on the next Bind
	IsDirty(category Category) bool

	// Bind commits every dirty category to the device in a fixed order and
	// clears the committed flags. On failure, categories committed before the
	// failing one stay committed and keep their cleared flags; the caller
	// should abandon the frame rather than retry.
	//
	// Returns:
	//   - error: the first commit error encountered, or nil
	Bind() error
}

// NewPipelineState creates a PipelineState committing to the given device.
//
// Parameters:
//   - dev: the device state commits are issued against
//
// Returns:
//   - PipelineState: the new pipeline state cache
func NewPipelineState(dev device.Device) PipelineState {
	return &pipelineState{device: dev}
}

func (p *pipelineState) SetPrimitiveTopology(topology device.PrimitiveTopology) {
	if p.topology == topology {
		return
	}
	p.topology = topology
	p.dirty[CategoryTopology] = true
}

func (p *pipelineState) SetInputLayout(layout device.InputLayout) error {
	if layout == device.InputLayoutNone {
		return fmt.Errorf("input layout must not be empty")
	}
	if p.inputLayout == layout {
		return nil
	}
	p.inputLayout = layout
	p.dirty[CategoryInputLayout] = true
	return nil
}

func (p *pipelineState) SetRasterizerState(cull device.CullMode, fill device.FillMode) {
	if p.cullMode == cull && p.fillMode == fill {
		return
	}
	p.cullMode = cull
	p.fillMode = fill
	p.dirty[CategoryRasterizer] = true
}

func (p *pipelineState) SetSamplers(samplers []*device.Sampler) error {
	if len(samplers) == 0 {
		return fmt.Errorf("sampler set must not be empty")
	}
	if sameSet(p.samplers, samplers) {
		return nil
	}
	p.samplers = append([]*device.Sampler(nil), samplers...)
	p.dirty[CategorySamplers] = true
	return nil
}

func (p *pipelineState) SetTextures(textures []*device.Texture) error {
	if len(textures) == 0 {
		return fmt.Errorf("texture set must not be empty")
	}
	if sameSet(p.textures, textures) {
		return nil
	}
	p.textures = append([]*device.Texture(nil), textures...)
	p.dirty[CategoryTextures] = true
	return nil
}

func (p *pipelineState) SetTexture(texture *device.Texture) error {
	if texture == nil {
		return fmt.Errorf("texture must not be nil")
	}
	return p.SetTextures([]*device.Texture{texture})
}

func (p *pipelineState) SetVertexBuffer(buffer *device.VertexBuffer) error {
	if buffer == nil {
		return fmt.Errorf("vertex buffer must not be nil")
	}
	if p.vertexBuffer == buffer {
		return nil
	}
	p.vertexBuffer = buffer
	p.dirty[CategoryVertexBuffer] = true
	return nil
}

func (p *pipelineState) SetIndexBuffer(buffer *device.IndexBuffer) error {
	if buffer == nil {
		return fmt.Errorf("index buffer must not be nil")
	}
	if p.indexBuffer == buffer {
		return nil
	}
	p.indexBuffer = buffer
	p.dirty[CategoryIndexBuffer] = true
	return nil
}

func (p *pipelineState) SetConstantBuffers(buffers []*device.ConstantBuffer) error {
	if len(buffers) == 0 {
		return fmt.Errorf("constant buffer set must not be empty")
	}
	if sameSet(p.constantBuffers, buffers) {
		return nil
	}
	p.constantBuffers = append([]*device.ConstantBuffer(nil), buffers...)
	p.dirty[CategoryConstantBuffers] = true
	return nil
}

func (p *pipelineState) SetShaders(vertex, pixel *device.Shader) error {
	if vertex == nil {
		return fmt.Errorf("vertex shader must not be nil")
	}
	if p.vertexShader == vertex && p.pixelShader == pixel {
		return nil
	}
	p.vertexShader = vertex
	p.pixelShader = pixel
	p.dirty[CategoryShaders] = true
	return nil
}

func (p *pipelineState) SetRenderTargets(targets []*device.RenderTarget, depth *device.DepthStencil) error {
	if len(targets) == 0 && depth == nil {
		return fmt.Errorf("render target set must include a color target or a depth stencil")
	}
	if sameSet(p.renderTargets, targets) && p.depthStencil == depth {
		return nil
	}
	p.renderTargets = append([]*device.RenderTarget(nil), targets...)
	p.depthStencil = depth
	p.dirty[CategoryRenderTargets] = true
	return nil
}

func (p *pipelineState) SetViewport(viewport device.Viewport) error {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return fmt.Errorf("viewport dimensions must be positive, got %.0fx%.0f", viewport.Width, viewport.Height)
	}
	if p.viewport == viewport {
		return nil
	}
	p.viewport = viewport
	p.dirty[CategoryViewport] = true
	return nil
}

func (p *pipelineState) IsDirty(category Category) bool {
	if category < 0 || category >= categoryCount {
		return false
	}
	return p.dirty[category]
}

// bindOrder is the fixed commit order. Targets and viewport come last so a
// pass's attachments are final before any draw state resolves against them.
var bindOrder = [categoryCount]Category{
	CategoryTopology,
	CategoryInputLayout,
	CategoryRasterizer,
	CategorySamplers,
	CategoryTextures,
	CategoryVertexBuffer,
	CategoryIndexBuffer,
	CategoryConstantBuffers,
	CategoryShaders,
	CategoryRenderTargets,
	CategoryViewport,
}

func (p *pipelineState) Bind() error {
	for _, category := range bindOrder {
		if !p.dirty[category] {
			continue
		}
		if err := p.commit(category); err != nil {
			return fmt.Errorf("failed to bind pipeline state: %w", err)
		}
		p.dirty[category] = false
	}
	return nil
}

func (p *pipelineState) commit(category Category) error {
	switch category {
	case CategoryTopology:
		return p.device.CommitTopology(p.topology)
	case CategoryInputLayout:
		return p.device.CommitInputLayout(p.inputLayout)
	case CategoryRasterizer:
		return p.device.CommitRasterizer(p.cullMode, p.fillMode)
	case CategorySamplers:
		return p.device.CommitSamplers(p.samplers)
	case CategoryTextures:
		return p.device.CommitTextures(p.textures)
	case CategoryVertexBuffer:
		return p.device.CommitVertexBuffer(p.vertexBuffer)
	case CategoryIndexBuffer:
		return p.device.CommitIndexBuffer(p.indexBuffer)
	case CategoryConstantBuffers:
		return p.device.CommitConstantBuffers(p.constantBuffers)
	case CategoryShaders:
		return p.device.CommitShaders(p.vertexShader, p.pixelShader)
	case CategoryRenderTargets:
		return p.device.CommitRenderTargets(p.renderTargets, p.depthStencil)
	case CategoryViewport:
		return p.device.CommitViewport(p.viewport)
	}
	return nil
}

// sameSet reports whether two resource sets hold identical elements in
// identical order.
func sameSet[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
