package pipeline_state

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTexture(t *testing.T, dev *device.NullDevice) *device.Texture {
	t.Helper()
	tex, err := dev.CreateTexture(common.TextureStagingData{
		Pixels: make([]byte, 4*4*4),
		Width:  4,
		Height: 4,
	}, nil)
	require.NoError(t, err)
	return tex
}

func TestSetTextureDirtiesOnceAcrossIdenticalCalls(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)
	tex := newTestTexture(t, dev)

	require.NoError(t, state.SetTexture(tex))
	assert.True(t, state.IsDirty(CategoryTextures))

	require.NoError(t, state.Bind())
	assert.False(t, state.IsDirty(CategoryTextures))
	assert.Equal(t, 1, dev.Commits["textures"])

	require.NoError(t, state.SetTexture(tex))
	assert.False(t, state.IsDirty(CategoryTextures), "identical set after bind must not dirty the category")

	require.NoError(t, state.Bind())
	assert.Equal(t, 1, dev.Commits["textures"], "redundant set must not produce a second commit")
}

func TestRedundantSettersAreNoOps(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)

	vb, err := dev.CreateVertexBuffer(make([]byte, 44), 44)
	require.NoError(t, err)
	ib, err := dev.CreateIndexBuffer([]uint32{0, 1, 2})
	require.NoError(t, err)
	cb, err := dev.CreateConstantBuffer(64)
	require.NoError(t, err)
	samp, err := dev.CreateSampler(common.SamplerStagingData{})
	require.NoError(t, err)
	vs, err := dev.CreateShader("depth", "", "vs_main", "")
	require.NoError(t, err)

	state.SetPrimitiveTopology(device.TopologyTriangleList)
	require.NoError(t, state.SetInputLayout(device.InputLayoutStatic))
	state.SetRasterizerState(device.CullModeBack, device.FillModeSolid)
	require.NoError(t, state.SetSamplers([]*device.Sampler{samp}))
	require.NoError(t, state.SetVertexBuffer(vb))
	require.NoError(t, state.SetIndexBuffer(ib))
	require.NoError(t, state.SetConstantBuffers([]*device.ConstantBuffer{cb}))
	require.NoError(t, state.SetShaders(vs, nil))
	require.NoError(t, state.SetViewport(device.Viewport{Width: 64, Height: 64, MaxDepth: 1}))
	require.NoError(t, state.Bind())

	// Re-apply everything with identical values.
	state.SetPrimitiveTopology(device.TopologyTriangleList)
	require.NoError(t, state.SetInputLayout(device.InputLayoutStatic))
	state.SetRasterizerState(device.CullModeBack, device.FillModeSolid)
	require.NoError(t, state.SetSamplers([]*device.Sampler{samp}))
	require.NoError(t, state.SetVertexBuffer(vb))
	require.NoError(t, state.SetIndexBuffer(ib))
	require.NoError(t, state.SetConstantBuffers([]*device.ConstantBuffer{cb}))
	require.NoError(t, state.SetShaders(vs, nil))
	require.NoError(t, state.SetViewport(device.Viewport{Width: 64, Height: 64, MaxDepth: 1}))

	for c := Category(0); c < categoryCount; c++ {
		assert.False(t, state.IsDirty(c), "category %d dirtied by an identical re-apply", c)
	}

	committed := len(dev.Log)
	require.NoError(t, state.Bind())
	assert.Equal(t, committed, len(dev.Log), "clean bind must not touch the device")
}

func TestCategoryIsolation(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)
	tex := newTestTexture(t, dev)

	require.NoError(t, state.SetTexture(tex))
	assert.True(t, state.IsDirty(CategoryTextures))
	assert.False(t, state.IsDirty(CategoryVertexBuffer))
	assert.False(t, state.IsDirty(CategoryConstantBuffers))
	assert.False(t, state.IsDirty(CategoryShaders))

	require.NoError(t, state.Bind())

	vb, err := dev.CreateVertexBuffer(make([]byte, 44), 44)
	require.NoError(t, err)
	require.NoError(t, state.SetVertexBuffer(vb))
	assert.True(t, state.IsDirty(CategoryVertexBuffer))
	assert.False(t, state.IsDirty(CategoryTextures), "buffer state must not dirty texture state")
}

func TestBindCommitsInFixedOrder(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)

	tex := newTestTexture(t, dev)
	vb, err := dev.CreateVertexBuffer(make([]byte, 44), 44)
	require.NoError(t, err)
	ib, err := dev.CreateIndexBuffer([]uint32{0, 1, 2})
	require.NoError(t, err)
	cb, err := dev.CreateConstantBuffer(64)
	require.NoError(t, err)
	samp, err := dev.CreateSampler(common.SamplerStagingData{})
	require.NoError(t, err)
	vs, err := dev.CreateShader("gbuffer", "", "vs_main", "ps_main")
	require.NoError(t, err)
	target, err := dev.CreateRenderTarget(64, 64, device.FormatRGBA16Float)
	require.NoError(t, err)

	// Set in a deliberately scrambled order; commit order must not follow it.
	require.NoError(t, state.SetViewport(device.Viewport{Width: 64, Height: 64, MaxDepth: 1}))
	require.NoError(t, state.SetShaders(vs, vs))
	require.NoError(t, state.SetRenderTargets([]*device.RenderTarget{target}, nil))
	require.NoError(t, state.SetConstantBuffers([]*device.ConstantBuffer{cb}))
	require.NoError(t, state.SetIndexBuffer(ib))
	require.NoError(t, state.SetVertexBuffer(vb))
	require.NoError(t, state.SetTexture(tex))
	require.NoError(t, state.SetSamplers([]*device.Sampler{samp}))
	state.SetRasterizerState(device.CullModeBack, device.FillModeSolid)
	require.NoError(t, state.SetInputLayout(device.InputLayoutStatic))
	state.SetPrimitiveTopology(device.TopologyLineList)

	require.NoError(t, state.Bind())

	assert.Equal(t, []string{
		"topology",
		"input_layout",
		"rasterizer",
		"samplers",
		"textures",
		"vertex_buffer",
		"index_buffer",
		"constant_buffers",
		"shaders",
		"render_targets",
		"viewport",
	}, dev.Log)
}

func TestInvalidArgumentsLeaveStateUntouched(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)

	assert.Error(t, state.SetInputLayout(device.InputLayoutNone))
	assert.Error(t, state.SetTexture(nil))
	assert.Error(t, state.SetTextures(nil))
	assert.Error(t, state.SetSamplers(nil))
	assert.Error(t, state.SetVertexBuffer(nil))
	assert.Error(t, state.SetIndexBuffer(nil))
	assert.Error(t, state.SetConstantBuffers(nil))
	assert.Error(t, state.SetShaders(nil, nil))
	assert.Error(t, state.SetRenderTargets(nil, nil))
	assert.Error(t, state.SetViewport(device.Viewport{Width: 0, Height: 64}))

	for c := Category(0); c < categoryCount; c++ {
		assert.False(t, state.IsDirty(c), "rejected setter dirtied category %d", c)
	}

	require.NoError(t, state.Bind())
	assert.Empty(t, dev.Log, "rejected setters must not commit anything")
}

func TestBindFailureKeepsEarlierCommits(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	state := NewPipelineState(dev)

	state.SetPrimitiveTopology(device.TopologyLineList)
	require.NoError(t, state.SetInputLayout(device.InputLayoutPositionColor))
	require.NoError(t, state.Bind())
	require.Len(t, dev.Log, 2)

	tex := newTestTexture(t, dev)
	require.NoError(t, state.SetTexture(tex))
	dev.FailCommits = true
	assert.Error(t, state.Bind())

	// Earlier categories stay committed and clean; the failing category
	// remains dirty so a later frame observes the pending change.
	assert.False(t, state.IsDirty(CategoryTopology))
	assert.False(t, state.IsDirty(CategoryInputLayout))
	assert.True(t, state.IsDirty(CategoryTextures))
	assert.Len(t, dev.Log, 2, "no rollback commits may be issued")
}
