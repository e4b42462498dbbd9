package device

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuDevice implements Device on top of WebGPU. WebGPU has no mutable
// context state, so the implementation keeps the committed values as pending
// state and resolves them into a cached render pipeline plus a bind group at
// draw time. The render pass is opened lazily on the first draw or clear
// after a render-target commit and closed when the targets change or the
// frame is presented.
type wgpuDevice struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	backbuffer    *RenderTarget

	// Committed state, applied at draw time.
	topology     PrimitiveTopology
	layout       InputLayout
	cullMode     CullMode
	fillMode     FillMode
	samplers     []*Sampler
	textures     []*Texture
	vertexBuf    *VertexBuffer
	indexBuf     *IndexBuffer
	constantBufs []*ConstantBuffer
	vertexShader *Shader
	pixelShader  *Shader
	targets      []*RenderTarget
	depth        *DepthStencil
	viewport     *Viewport

	// Clear colors pending for the next pass open, keyed by target.
	pendingClears map[*RenderTarget]common.Color
	pendingDepth  bool

	// Frame encoding state.
	frameEncoder *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	pipelineCache map[string]*wgpu.RenderPipeline
}

var _ Device = &wgpuDevice{}

// NewWGPUDevice creates a Device backed by WebGPU rendering to the given
// surface. The calling goroutine is locked to its OS thread for the lifetime
// of the device, since surface presentation is thread-affine on some
// platforms.
//
// Parameters:
//   - surfaceDescriptor: platform surface descriptor, typically from the window
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//
// Returns:
//   - Device: the WebGPU-backed device
//   - error: an error if no suitable adapter or device is available
func NewWGPUDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int) (Device, error) {
	runtime.LockOSThread()

	d := &wgpuDevice{
		instance:      wgpu.CreateInstance(nil),
		pendingClears: make(map[*RenderTarget]common.Color),
		pipelineCache: make(map[string]*wgpu.RenderPipeline),
	}
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire GPU adapter: %w", err)
	}
	d.adapter = adapter

	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Umbra Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire GPU device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	if err := d.Resize(width, height); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *wgpuDevice) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface dimensions must be positive, got %dx%d", width, height)
	}

	capabilities := d.surface.GetCapabilities(d.adapter)
	d.surfaceFormat = capabilities.Formats[0]

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	d.backbuffer = &RenderTarget{width: width, height: height, format: FormatRGBA8Unorm, backbuffer: true}
	return nil
}

func (d *wgpuDevice) Backbuffer() *RenderTarget {
	return d.backbuffer
}

func targetFormat(format TargetFormat) wgpu.TextureFormat {
	switch format {
	case FormatRGBA16Float:
		return wgpu.TextureFormatRGBA16Float
	case FormatR32Float:
		return wgpu.TextureFormatR32Float
	default:
		return wgpu.TextureFormatRGBA8Unorm
	}
}

func (d *wgpuDevice) CreateRenderTarget(width, height int, format TargetFormat) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render target dimensions must be positive, got %dx%d", width, height)
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Render Target",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        targetFormat(format),
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render target texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create render target view: %w", err)
	}

	return &RenderTarget{
		width:   width,
		height:  height,
		format:  format,
		texture: &Texture{width: uint32(width), height: uint32(height), layers: 1, native: view},
		native:  view,
	}, nil
}

func (d *wgpuDevice) CreateDepthStencil(width, height int) (*DepthStencil, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth stencil dimensions must be positive, got %dx%d", width, height)
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Stencil",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create depth view: %w", err)
	}

	return &DepthStencil{width: width, height: height, native: view}, nil
}

func (d *wgpuDevice) CreateTexture(data common.TextureStagingData, mips [][]byte) (*Texture, error) {
	if data.Width == 0 || data.Height == 0 {
		return nil, fmt.Errorf("texture dimensions must be positive, got %dx%d", data.Width, data.Height)
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Texture",
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Size: wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(1 + len(mips)),
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	d.writeTextureLevel(tex, 0, data.Pixels, data.Width, data.Height)
	w, h := data.Width, data.Height
	for i, mip := range mips {
		w = max(w/2, 1)
		h = max(h/2, 1)
		d.writeTextureLevel(tex, uint32(i+1), mip, w, h)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture view: %w", err)
	}
	return &Texture{width: data.Width, height: data.Height, layers: 1, native: view}, nil
}

func (d *wgpuDevice) writeTextureLevel(tex *wgpu.Texture, level uint32, pixels []byte, width, height uint32) {
	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: level,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (d *wgpuDevice) CreateTextureArray(layers []*Texture) (*Texture, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("texture array requires at least one layer")
	}
	first := layers[0]
	for i, l := range layers {
		if l == nil {
			return nil, fmt.Errorf("texture array layer %d is nil", i)
		}
		if l.width != first.width || l.height != first.height {
			return nil, fmt.Errorf("texture array layer %d is %dx%d, want %dx%d", i, l.width, l.height, first.width, first.height)
		}
	}

	// The layer views already reference their own textures; an array view
	// over them is represented as the ordered view list and flattened into
	// consecutive bindings at draw time.
	views := make([]*wgpu.TextureView, len(layers))
	for i, l := range layers {
		if v, ok := l.native.(*wgpu.TextureView); ok {
			views[i] = v
		}
	}
	return &Texture{width: first.width, height: first.height, layers: len(layers), native: views}, nil
}

func (d *wgpuDevice) CreateSampler(data common.SamplerStagingData) (*Sampler, error) {
	samp, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Sampler",
		AddressModeU:  common.Coalesce(data.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(data.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(data.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(data.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(data.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(data.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(data.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(data.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(data.MaxAnisotropy, 1),
		Compare:       data.Compare,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	return &Sampler{native: samp}, nil
}

func (d *wgpuDevice) CreateVertexBuffer(data []byte, stride int) (*VertexBuffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("vertex stride must be positive, got %d", stride)
	}
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Vertex Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	d.queue.WriteBuffer(buf, 0, data)
	return &VertexBuffer{stride: stride, count: len(data) / stride, native: buf}, nil
}

func (d *wgpuDevice) CreateIndexBuffer(indices []uint32) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer requires at least one index")
	}
	data := common.SliceToBytes(indices)
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Index Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index buffer: %w", err)
	}
	d.queue.WriteBuffer(buf, 0, data)
	return &IndexBuffer{count: len(indices), native: buf}, nil
}

func (d *wgpuDevice) CreateConstantBuffer(size int) (*ConstantBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("constant buffer size must be positive, got %d", size)
	}
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Constant Buffer",
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create constant buffer: %w", err)
	}
	return &ConstantBuffer{size: size, native: buf}, nil
}

func (d *wgpuDevice) UpdateConstantBuffer(buffer *ConstantBuffer, data []byte) error {
	if buffer == nil {
		return fmt.Errorf("constant buffer is nil")
	}
	if len(data) > buffer.size {
		return fmt.Errorf("constant buffer write of %d bytes exceeds capacity %d", len(data), buffer.size)
	}
	d.queue.WriteBuffer(buffer.native.(*wgpu.Buffer), 0, data)
	return nil
}

func (d *wgpuDevice) UpdateVertexBuffer(buffer *VertexBuffer, data []byte) error {
	if buffer == nil {
		return fmt.Errorf("vertex buffer is nil")
	}
	old := buffer.native.(*wgpu.Buffer)
	if uint64(len(data)) > old.GetSize() {
		// Grow by replacement; in-place resize is not supported by WebGPU.
		grown, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Vertex Buffer",
			Size:  uint64(len(data)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to grow vertex buffer: %w", err)
		}
		old.Release()
		buffer.native = grown
		old = grown
	}
	d.queue.WriteBuffer(old, 0, data)
	buffer.count = len(data) / buffer.stride
	return nil
}

func (d *wgpuDevice) CreateShader(name, source, vertexEntry, pixelEntry string) (*Shader, error) {
	if name == "" {
		return nil, fmt.Errorf("shader name is empty")
	}
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", name, err)
	}
	return &Shader{name: name, native: &wgpuShaderModule{module: module, vertexEntry: vertexEntry, pixelEntry: pixelEntry}}, nil
}

type wgpuShaderModule struct {
	module      *wgpu.ShaderModule
	vertexEntry string
	pixelEntry  string
}

func (d *wgpuDevice) CommitTopology(topology PrimitiveTopology) error {
	d.topology = topology
	return nil
}

func (d *wgpuDevice) CommitInputLayout(layout InputLayout) error {
	if layout == InputLayoutNone {
		return fmt.Errorf("cannot commit an empty input layout")
	}
	d.layout = layout
	return nil
}

func (d *wgpuDevice) CommitRasterizer(cull CullMode, fill FillMode) error {
	d.cullMode = cull
	d.fillMode = fill
	return nil
}

func (d *wgpuDevice) CommitSamplers(samplers []*Sampler) error {
	d.samplers = samplers
	return nil
}

func (d *wgpuDevice) CommitTextures(textures []*Texture) error {
	d.textures = textures
	return nil
}

func (d *wgpuDevice) CommitVertexBuffer(buffer *VertexBuffer) error {
	d.vertexBuf = buffer
	return nil
}

func (d *wgpuDevice) CommitIndexBuffer(buffer *IndexBuffer) error {
	d.indexBuf = buffer
	return nil
}

func (d *wgpuDevice) CommitConstantBuffers(buffers []*ConstantBuffer) error {
	d.constantBufs = buffers
	return nil
}

func (d *wgpuDevice) CommitShaders(vertex, pixel *Shader) error {
	if vertex == nil {
		return fmt.Errorf("vertex shader is nil")
	}
	d.vertexShader = vertex
	d.pixelShader = pixel
	return nil
}

func (d *wgpuDevice) CommitRenderTargets(targets []*RenderTarget, depth *DepthStencil) error {
	// A target change ends the current pass; previously bound targets become
	// sampleable again once the pass is closed.
	d.endPass()
	d.targets = targets
	d.depth = depth
	return nil
}

func (d *wgpuDevice) CommitViewport(viewport Viewport) error {
	d.viewport = &viewport
	if d.pass != nil {
		d.pass.SetViewport(viewport.X, viewport.Y, viewport.Width, viewport.Height, viewport.MinDepth, viewport.MaxDepth)
	}
	return nil
}

func (d *wgpuDevice) Clear(target *RenderTarget, color common.Color) error {
	if target == nil {
		return fmt.Errorf("clear target is nil")
	}
	// Clears fold into the LoadOp of the next pass touching the target.
	d.pendingClears[target] = color
	return nil
}

func (d *wgpuDevice) ClearDepth(depth *DepthStencil) error {
	if depth == nil {
		return fmt.Errorf("clear depth buffer is nil")
	}
	d.pendingDepth = true
	return nil
}

func (d *wgpuDevice) Draw(vertexCount int) error {
	if err := d.ensurePass(); err != nil {
		return err
	}
	if err := d.applyDrawState(); err != nil {
		return err
	}
	d.pass.Draw(uint32(vertexCount), 1, 0, 0)
	return nil
}

func (d *wgpuDevice) DrawIndexed(indexCount int) error {
	if d.indexBuf == nil {
		return fmt.Errorf("no index buffer committed")
	}
	if err := d.ensurePass(); err != nil {
		return err
	}
	if err := d.applyDrawState(); err != nil {
		return err
	}
	d.pass.SetIndexBuffer(d.indexBuf.native.(*wgpu.Buffer), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	d.pass.DrawIndexed(uint32(indexCount), 1, 0, 0, 0)
	return nil
}

func (d *wgpuDevice) Present() error {
	d.endPass()
	if d.frameEncoder != nil {
		commandBuffer, err := d.frameEncoder.Finish(nil)
		if err != nil {
			d.frameEncoder.Release()
			d.frameEncoder = nil
			return fmt.Errorf("failed to finish frame command buffer: %w", err)
		}
		d.queue.Submit(commandBuffer)
		commandBuffer.Release()
		d.frameEncoder.Release()
		d.frameEncoder = nil
	}

	d.surface.Present()

	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	if d.frameSurface != nil {
		d.frameSurface.Release()
		d.frameSurface = nil
	}
	return nil
}

// ensurePass opens the render pass for the committed targets if one is not
// already open, consuming any pending clears as load operations.
func (d *wgpuDevice) ensurePass() error {
	if d.pass != nil {
		return nil
	}

	if d.frameEncoder == nil {
		encoder, err := d.device.CreateCommandEncoder(nil)
		if err != nil {
			return fmt.Errorf("failed to create command encoder: %w", err)
		}
		d.frameEncoder = encoder
	}

	colorAttachments := make([]wgpu.RenderPassColorAttachment, 0, len(d.targets))
	for _, t := range d.targets {
		view, err := d.targetView(t)
		if err != nil {
			return err
		}
		attachment := wgpu.RenderPassColorAttachment{
			View:    view,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}
		if color, ok := d.pendingClears[t]; ok {
			attachment.LoadOp = wgpu.LoadOpClear
			attachment.ClearValue = wgpu.Color{R: float64(color[0]), G: float64(color[1]), B: float64(color[2]), A: float64(color[3])}
			delete(d.pendingClears, t)
		}
		colorAttachments = append(colorAttachments, attachment)
	}

	descriptor := &wgpu.RenderPassDescriptor{ColorAttachments: colorAttachments}
	if d.depth != nil {
		depthLoad := wgpu.LoadOpLoad
		if d.pendingDepth {
			depthLoad = wgpu.LoadOpClear
			d.pendingDepth = false
		}
		descriptor.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            d.depth.native.(*wgpu.TextureView),
			DepthLoadOp:     depthLoad,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}

	d.pass = d.frameEncoder.BeginRenderPass(descriptor)
	if d.viewport != nil {
		d.pass.SetViewport(d.viewport.X, d.viewport.Y, d.viewport.Width, d.viewport.Height, d.viewport.MinDepth, d.viewport.MaxDepth)
	}
	return nil
}

func (d *wgpuDevice) endPass() {
	if d.pass == nil {
		return
	}
	d.pass.End()
	d.pass.Release()
	d.pass = nil
}

// targetView resolves the attachment view for a render target, acquiring the
// swapchain texture on first use of the backbuffer in a frame.
func (d *wgpuDevice) targetView(t *RenderTarget) (*wgpu.TextureView, error) {
	if t == nil {
		return nil, fmt.Errorf("render target is nil")
	}
	if !t.backbuffer {
		return t.native.(*wgpu.TextureView), nil
	}
	if d.frameView == nil {
		surfaceTexture, err := d.surface.GetCurrentTexture()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire surface texture: %w", err)
		}
		view, err := surfaceTexture.CreateView(nil)
		if err != nil {
			surfaceTexture.Release()
			return nil, fmt.Errorf("failed to create surface view: %w", err)
		}
		d.frameSurface = surfaceTexture
		d.frameView = view
	}
	return d.frameView, nil
}

// applyDrawState resolves committed state into a pipeline, bind group, and
// vertex buffer on the open pass.
func (d *wgpuDevice) applyDrawState() error {
	p, err := d.resolvePipeline()
	if err != nil {
		return err
	}
	d.pass.SetPipeline(p)

	group, err := d.buildBindGroup(p)
	if err != nil {
		return err
	}
	if group != nil {
		d.pass.SetBindGroup(0, group, nil)
	}

	if d.vertexBuf != nil {
		d.pass.SetVertexBuffer(0, d.vertexBuf.native.(*wgpu.Buffer), 0, wgpu.WholeSize)
	}
	return nil
}

func wgpuTopology(t PrimitiveTopology) wgpu.PrimitiveTopology {
	if t == TopologyLineList {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func wgpuCullMode(c CullMode) wgpu.CullMode {
	switch c {
	case CullModeBack:
		return wgpu.CullModeBack
	case CullModeFront:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}

func vertexLayout(layout InputLayout) wgpu.VertexBufferLayout {
	switch layout {
	case InputLayoutPositionTexture:
		return wgpu.VertexBufferLayout{
			ArrayStride: 5 * 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			},
		}
	case InputLayoutPositionColor:
		return wgpu.VertexBufferLayout{
			ArrayStride: 7 * 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
			},
		}
	default: // InputLayoutStatic
		return wgpu.VertexBufferLayout{
			ArrayStride: 11 * 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 36, ShaderLocation: 3},
			},
		}
	}
}

// resolvePipeline returns a render pipeline matching the committed state,
// creating and caching it on first use. The cache key covers everything that
// participates in wgpu pipeline identity.
func (d *wgpuDevice) resolvePipeline() (*wgpu.RenderPipeline, error) {
	if d.vertexShader == nil {
		return nil, fmt.Errorf("no vertex shader committed")
	}

	pixelName := ""
	if d.pixelShader != nil {
		pixelName = d.pixelShader.name
	}
	key := fmt.Sprintf("%s|%s|t%d|l%d|c%d|f%d|n%d|d%t|bg%d|tx%d|cb%d|sm%d",
		d.vertexShader.name, pixelName, d.topology, d.layout, d.cullMode, d.fillMode,
		len(d.targets), d.depth != nil, d.bindingSignature(),
		d.flatTextureCount(), len(d.constantBufs), len(d.samplers))
	if p, ok := d.pipelineCache[key]; ok {
		return p, nil
	}

	vs := d.vertexShader.native.(*wgpuShaderModule)

	descriptor := &wgpu.RenderPipelineDescriptor{
		Label: key,
		Vertex: wgpu.VertexState{
			Module:     vs.module,
			EntryPoint: vs.vertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout(d.layout)},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpuTopology(d.topology),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpuCullMode(d.cullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}

	if d.pixelShader != nil && len(d.targets) > 0 {
		ps := d.pixelShader.native.(*wgpuShaderModule)
		colorTargets := make([]wgpu.ColorTargetState, len(d.targets))
		for i, t := range d.targets {
			format := d.surfaceFormat
			if !t.backbuffer {
				format = targetFormat(t.format)
			}
			colorTargets[i] = wgpu.ColorTargetState{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}
		}
		descriptor.Fragment = &wgpu.FragmentState{
			Module:     ps.module,
			EntryPoint: ps.pixelEntry,
			Targets:    colorTargets,
		}
	}

	if d.depth != nil {
		descriptor.DepthStencil = &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	created, err := d.device.CreateRenderPipeline(descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline %q: %w", key, err)
	}
	d.pipelineCache[key] = created
	return created, nil
}

// flatTextureCount counts texture bindings with array textures expanded into
// their layer views.
func (d *wgpuDevice) flatTextureCount() int {
	n := 0
	for _, t := range d.textures {
		if t == nil {
			n++
			continue
		}
		if views, ok := t.native.([]*wgpu.TextureView); ok {
			n += len(views)
			continue
		}
		n++
	}
	return n
}

func (d *wgpuDevice) bindingSignature() int {
	return len(d.constantBufs)<<16 | len(d.samplers)<<8 | d.flatTextureCount()
}

// buildBindGroup lays out the committed constant buffers, textures, and
// samplers as consecutive bindings in group 0, matching the convention the
// engine's shaders are written against.
func (d *wgpuDevice) buildBindGroup(p *wgpu.RenderPipeline) (*wgpu.BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, 0, len(d.constantBufs)+len(d.textures)+len(d.samplers))
	binding := uint32(0)

	for _, cb := range d.constantBufs {
		if cb == nil {
			continue
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: binding,
			Buffer:  cb.native.(*wgpu.Buffer),
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
		binding++
	}
	for _, t := range d.textures {
		if t == nil {
			binding++
			continue
		}
		if views, ok := t.native.([]*wgpu.TextureView); ok {
			for _, v := range views {
				entries = append(entries, wgpu.BindGroupEntry{Binding: binding, TextureView: v})
				binding++
			}
			continue
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: binding, TextureView: t.native.(*wgpu.TextureView)})
		binding++
	}
	for _, s := range d.samplers {
		if s == nil {
			continue
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: binding, Sampler: s.native.(*wgpu.Sampler)})
		binding++
	}

	if len(entries) == 0 {
		return nil, nil
	}

	layout := p.GetBindGroupLayout(0)
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Draw Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group: %w", err)
	}
	return group, nil
}
