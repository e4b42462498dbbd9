package device

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// NullDevice is a headless Device implementation. It allocates plain Go
// resource objects, applies state commits to an internal record, and treats
// draws and presents as no-ops. Intended for tests, benchmarks, and running
// the engine on machines without a GPU.
//
// Every commit and submission is counted per category so callers can assert
// how much device traffic a frame produced.
type NullDevice struct {
	backbuffer *RenderTarget

	// Commit counters, keyed by category name.
	Commits map[string]int

	// Submission counters.
	Draws    int
	Clears   int
	Presents int

	// Ordered log of commit category names and submissions, in call order.
	Log []string

	// Last committed values, for state assertions.
	Topology        PrimitiveTopology
	Layout          InputLayout
	Cull            CullMode
	Fill            FillMode
	Samplers        []*Sampler
	Textures        []*Texture
	VertexBuf       *VertexBuffer
	IndexBuf        *IndexBuffer
	ConstantBufs    []*ConstantBuffer
	VertexShader    *Shader
	PixelShader     *Shader
	Targets         []*RenderTarget
	Depth           *DepthStencil
	CurrentViewport Viewport

	// ConstantWrites holds the most recent payload uploaded to each constant
	// buffer, for uniform content assertions.
	ConstantWrites map[*ConstantBuffer][]byte

	// FailCommits makes every Commit* call return an error when set. Used to
	// exercise the abort-pass error path.
	FailCommits bool
}

var _ Device = &NullDevice{}

// NewNullDevice creates a headless device with a backbuffer of the given size.
//
// Parameters:
//   - width: backbuffer width in pixels
//   - height: backbuffer height in pixels
//
// Returns:
//   - *NullDevice: the headless device
func NewNullDevice(width, height int) *NullDevice {
	return &NullDevice{
		backbuffer:     &RenderTarget{width: width, height: height, format: FormatRGBA8Unorm, backbuffer: true},
		Commits:        make(map[string]int),
		ConstantWrites: make(map[*ConstantBuffer][]byte),
	}
}

func (d *NullDevice) record(category string) error {
	if d.FailCommits {
		return fmt.Errorf("null device: forced %s commit failure", category)
	}
	d.Commits[category]++
	d.Log = append(d.Log, category)
	return nil
}

func (d *NullDevice) CreateRenderTarget(width, height int, format TargetFormat) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render target dimensions must be positive, got %dx%d", width, height)
	}
	return &RenderTarget{
		width:   width,
		height:  height,
		format:  format,
		texture: &Texture{width: uint32(width), height: uint32(height), layers: 1},
	}, nil
}

func (d *NullDevice) CreateDepthStencil(width, height int) (*DepthStencil, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth stencil dimensions must be positive, got %dx%d", width, height)
	}
	return &DepthStencil{width: width, height: height}, nil
}

func (d *NullDevice) CreateTexture(data common.TextureStagingData, mips [][]byte) (*Texture, error) {
	if data.Width == 0 || data.Height == 0 {
		return nil, fmt.Errorf("texture dimensions must be positive, got %dx%d", data.Width, data.Height)
	}
	return &Texture{width: data.Width, height: data.Height, layers: 1}, nil
}

func (d *NullDevice) CreateTextureArray(layers []*Texture) (*Texture, error) {
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
	return &Texture{width: first.width, height: first.height, layers: len(layers)}, nil
}

func (d *NullDevice) CreateSampler(data common.SamplerStagingData) (*Sampler, error) {
	return &Sampler{}, nil
}

func (d *NullDevice) CreateVertexBuffer(data []byte, stride int) (*VertexBuffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("vertex stride must be positive, got %d", stride)
	}
	return &VertexBuffer{stride: stride, count: len(data) / stride}, nil
}

func (d *NullDevice) CreateIndexBuffer(indices []uint32) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("index buffer requires at least one index")
	}
	return &IndexBuffer{count: len(indices)}, nil
}

func (d *NullDevice) CreateConstantBuffer(size int) (*ConstantBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("constant buffer size must be positive, got %d", size)
	}
	return &ConstantBuffer{size: size}, nil
}

func (d *NullDevice) UpdateConstantBuffer(buffer *ConstantBuffer, data []byte) error {
	if buffer == nil {
		return fmt.Errorf("constant buffer is nil")
	}
	if len(data) > buffer.size {
		return fmt.Errorf("constant buffer write of %d bytes exceeds capacity %d", len(data), buffer.size)
	}
	d.ConstantWrites[buffer] = append([]byte(nil), data...)
	return nil
}

func (d *NullDevice) UpdateVertexBuffer(buffer *VertexBuffer, data []byte) error {
	if buffer == nil {
		return fmt.Errorf("vertex buffer is nil")
	}
	buffer.count = len(data) / buffer.stride
	return nil
}

func (d *NullDevice) CreateShader(name, source, vertexEntry, pixelEntry string) (*Shader, error) {
	if name == "" {
		return nil, fmt.Errorf("shader name is empty")
	}
	return &Shader{name: name}, nil
}

func (d *NullDevice) Backbuffer() *RenderTarget {
	return d.backbuffer
}

func (d *NullDevice) CommitTopology(topology PrimitiveTopology) error {
	if err := d.record("topology"); err != nil {
		return err
	}
	d.Topology = topology
	return nil
}

func (d *NullDevice) CommitInputLayout(layout InputLayout) error {
	if err := d.record("input_layout"); err != nil {
		return err
	}
	d.Layout = layout
	return nil
}

func (d *NullDevice) CommitRasterizer(cull CullMode, fill FillMode) error {
	if err := d.record("rasterizer"); err != nil {
		return err
	}
	d.Cull = cull
	d.Fill = fill
	return nil
}

func (d *NullDevice) CommitSamplers(samplers []*Sampler) error {
	if err := d.record("samplers"); err != nil {
		return err
	}
	d.Samplers = samplers
	return nil
}

func (d *NullDevice) CommitTextures(textures []*Texture) error {
	if err := d.record("textures"); err != nil {
		return err
	}
	d.Textures = textures
	return nil
}

func (d *NullDevice) CommitVertexBuffer(buffer *VertexBuffer) error {
	if err := d.record("vertex_buffer"); err != nil {
		return err
	}
	d.VertexBuf = buffer
	return nil
}

func (d *NullDevice) CommitIndexBuffer(buffer *IndexBuffer) error {
	if err := d.record("index_buffer"); err != nil {
		return err
	}
	d.IndexBuf = buffer
	return nil
}

func (d *NullDevice) CommitConstantBuffers(buffers []*ConstantBuffer) error {
	if err := d.record("constant_buffers"); err != nil {
		return err
	}
	d.ConstantBufs = buffers
	return nil
}

func (d *NullDevice) CommitShaders(vertex, pixel *Shader) error {
	if err := d.record("shaders"); err != nil {
		return err
	}
	d.VertexShader = vertex
	d.PixelShader = pixel
	return nil
}

func (d *NullDevice) CommitRenderTargets(targets []*RenderTarget, depth *DepthStencil) error {
	if err := d.record("render_targets"); err != nil {
		return err
	}
	d.Targets = targets
	d.Depth = depth
	return nil
}

func (d *NullDevice) CommitViewport(viewport Viewport) error {
	if err := d.record("viewport"); err != nil {
		return err
	}
	d.CurrentViewport = viewport
	return nil
}

func (d *NullDevice) Draw(vertexCount int) error {
	d.Draws++
	d.Log = append(d.Log, "draw")
	return nil
}

func (d *NullDevice) DrawIndexed(indexCount int) error {
	d.Draws++
	d.Log = append(d.Log, "draw_indexed")
	return nil
}

func (d *NullDevice) Clear(target *RenderTarget, color common.Color) error {
	if target == nil {
		return fmt.Errorf("clear target is nil")
	}
	d.Clears++
	d.Log = append(d.Log, "clear")
	return nil
}

func (d *NullDevice) ClearDepth(depth *DepthStencil) error {
	if depth == nil {
		return fmt.Errorf("clear depth buffer is nil")
	}
	d.Clears++
	d.Log = append(d.Log, "clear_depth")
	return nil
}

func (d *NullDevice) Present() error {
	d.Presents++
	d.Log = append(d.Log, "present")
	return nil
}

func (d *NullDevice) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface dimensions must be positive, got %dx%d", width, height)
	}
	d.backbuffer = &RenderTarget{width: width, height: height, format: FormatRGBA8Unorm, backbuffer: true}
	return nil
}
