package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/physics"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/pipeline_state"
	"github.com/Carmen-Shannon/umbra-go/engine/scene"
	"github.com/Carmen-Shannon/umbra-go/engine/texture"
)

// Post-process tuning constants.
const (
	fxaaStrength    = 0.75
	sharpenStrength = 0.35
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	dev   device.Device
	state pipeline_state.PipelineState

	scene      scene.Scene
	debugDraw  physics.DebugDraw
	editorMode bool
	noiseSize  int

	preRender  []func()
	postRender []func()

	width         int
	height        int
	pendingResize bool

	shaders map[string]*device.Shader

	gbuf  *gBuffer
	quad  *fullscreenQuad
	postA *device.RenderTarget
	postB *device.RenderTarget

	linearSampler *device.Sampler

	transformCB *device.ConstantBuffer
	materialCB  *device.ConstantBuffer
	frameCB     *device.ConstantBuffer
	lightsCB    *device.ConstantBuffer
	cascadesCB  *device.ConstantBuffer
	fxaaCB      *device.ConstantBuffer
	sharpenCB   *device.ConstantBuffer
	lineCB      *device.ConstantBuffer

	whiteTexture      *device.Texture
	flatNormalTexture *device.Texture
	noiseTexture      *device.Texture

	// One flattened binding per cascade set, built once and reused every
	// frame. Binding the whole set in a single call beats rebinding
	// individual maps per light on every backend we measured.
	shadowArrays map[light.CascadeSet]*device.Texture

	lineVertexBuffer *device.VertexBuffer

	meshesDrawn int
}

// Renderer drives the deferred frame sequence: shadow depth, geometry,
// lighting, post-process, debug overlay, present. All GPU state flows
// through a single PipelineState so redundant transitions are filtered
// centrally.
type Renderer interface {
	// Render draws one complete frame of the attached scene and presents it.
	// When the scene has no camera or nothing to draw, the backbuffer is
	// cleared and presented so the swapchain keeps cycling.
	//
	// Returns:
	//   - error: an error if any pass fails to encode or present
	Render() error

	// SetResolution changes the output resolution. Size-dependent resources
	// are rebuilt at the start of the next frame. Calls with a non-positive
	// dimension are ignored.
	//
	// Parameters:
	//   - width: the new output width in pixels
	//   - height: the new output height in pixels
	SetResolution(width, height int)

	// RenderedMeshesCount reports how many meshes survived culling and were
	// submitted during the most recent frame.
	//
	// Returns:
	//   - int: the mesh count for the last completed frame
	RenderedMeshesCount() int

	// Scene returns the scene the renderer draws from.
	//
	// Returns:
	//   - scene.Scene: the attached scene, or nil
	Scene() scene.Scene

	// SetScene attaches the scene the renderer draws from.
	//
	// Parameters:
	//   - s: the scene to attach
	SetScene(s scene.Scene)

	// SetDebugDraw attaches the debug line source drawn over the final image
	// when editor mode is active.
	//
	// Parameters:
	//   - d: the debug draw accumulator
	SetDebugDraw(d physics.DebugDraw)
}

var _ Renderer = &renderer{}

func (r *renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, hook := range r.preRender {
		hook()
	}

	if err := r.ensureResources(); err != nil {
		return err
	}

	ctx := buildFrameContext(r.scene, r.width, r.height)
	if ctx.camera == nil || len(ctx.renderables) == 0 {
		if err := r.renderEmptyFrame(ctx); err != nil {
			return err
		}
		r.meshesDrawn = 0
		for _, hook := range r.postRender {
			hook()
		}
		return nil
	}

	if err := r.renderShadowPass(ctx); err != nil {
		return fmt.Errorf("shadow pass failed: %w", err)
	}
	if err := r.renderGeometryPass(ctx); err != nil {
		return fmt.Errorf("geometry pass failed: %w", err)
	}
	if err := r.renderLightingPass(ctx); err != nil {
		return fmt.Errorf("lighting pass failed: %w", err)
	}
	if err := r.renderPostPass(ctx); err != nil {
		return fmt.Errorf("post-process pass failed: %w", err)
	}
	if err := r.renderDebugPass(ctx); err != nil {
		return fmt.Errorf("debug pass failed: %w", err)
	}

	if err := r.dev.Present(); err != nil {
		return fmt.Errorf("present failed: %w", err)
	}

	r.meshesDrawn = ctx.meshesDrawn
	for _, hook := range r.postRender {
		hook()
	}
	return nil
}

func (r *renderer) SetResolution(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return
	}
	r.width = width
	r.height = height
	r.pendingResize = true
}

func (r *renderer) RenderedMeshesCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meshesDrawn
}

func (r *renderer) Scene() scene.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scene
}

func (r *renderer) SetScene(s scene.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scene = s
}

func (r *renderer) SetDebugDraw(d physics.DebugDraw) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debugDraw = d
}

// renderEmptyFrame clears and presents without drawing. Used while the scene
// has no camera or no renderables so the window never shows stale frames.
func (r *renderer) renderEmptyFrame(ctx *renderPassContext) error {
	clearColor := common.ColorBlack
	if ctx.camera != nil {
		clearColor = ctx.clearColor
	}
	if err := r.dev.Clear(r.dev.Backbuffer(), clearColor); err != nil {
		return fmt.Errorf("failed to clear backbuffer: %w", err)
	}
	if err := r.dev.Present(); err != nil {
		return fmt.Errorf("present failed: %w", err)
	}
	return nil
}

// renderShadowPass draws shadow casters into each cascade of the first
// shadow-casting directional light.
func (r *renderer) renderShadowPass(ctx *renderPassContext) error {
	if ctx.shadowLight == nil || ctx.cascades == nil {
		return nil
	}
	cas := ctx.cascades
	cas.Update(ctx.cameraPosition)
	res := float32(cas.Resolution())

	r.state.SetPrimitiveTopology(device.TopologyTriangleList)
	if err := r.state.SetInputLayout(device.InputLayoutStatic); err != nil {
		return err
	}
	// Front-face culling moves self-shadowing artifacts behind the caster.
	r.state.SetRasterizerState(device.CullModeFront, device.FillModeSolid)
	if err := r.state.SetShaders(r.shaders["depth"], r.shaders["depth"]); err != nil {
		return err
	}
	if err := r.state.SetViewport(device.Viewport{Width: res, Height: res, MaxDepth: 1}); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.transformCB}); err != nil {
		return err
	}
	// The depth shader binds no surfaces; park the slots on nil so bindings
	// from the previous frame do not leak into this pass.
	if err := r.state.SetTextures([]*device.Texture{nil}); err != nil {
		return err
	}
	if err := r.state.SetSamplers([]*device.Sampler{nil}); err != nil {
		return err
	}

	for i := 0; i < cas.Count(); i++ {
		if err := r.dev.Clear(cas.Target(i), common.Color{1, 1, 1, 1}); err != nil {
			return err
		}
		if err := r.dev.ClearDepth(cas.DepthStencil(i)); err != nil {
			return err
		}
		if err := r.state.SetRenderTargets([]*device.RenderTarget{cas.Target(i)}, cas.DepthStencil(i)); err != nil {
			return err
		}

		view := cas.ViewMatrixAt(i)
		proj := cas.Projection(i)
		var viewProj [16]float32
		common.Mul4(viewProj[:], proj[:], view[:])
		frustum := cas.Frustum(i)

		for _, obj := range ctx.renderables {
			mf := obj.MeshFilter()
			mr := obj.MeshRenderer()
			if mf.Mesh == nil || !mr.CastsShadows {
				continue
			}
			if frustum != nil && frustum.CheckCube(obj.BoundingCenter(), obj.BoundingExtents()) == common.Outside {
				continue
			}
			if err := r.drawMesh(obj, viewProj); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderGeometryPass fills the geometry buffer with every visible opaque
// renderable. Renderables arrive pre-sorted by shader key and material, so
// state changes cluster.
func (r *renderer) renderGeometryPass(ctx *renderPassContext) error {
	for _, target := range r.gbuf.targets() {
		if err := r.dev.Clear(target, common.ColorBlack); err != nil {
			return err
		}
	}
	if err := r.dev.ClearDepth(r.gbuf.depthStencil); err != nil {
		return err
	}

	r.state.SetPrimitiveTopology(device.TopologyTriangleList)
	if err := r.state.SetInputLayout(device.InputLayoutStatic); err != nil {
		return err
	}
	if err := r.state.SetShaders(r.shaders["gbuffer"], r.shaders["gbuffer"]); err != nil {
		return err
	}
	if err := r.state.SetViewport(device.Viewport{Width: float32(r.width), Height: float32(r.height), MaxDepth: 1}); err != nil {
		return err
	}
	if err := r.state.SetSamplers([]*device.Sampler{r.linearSampler}); err != nil {
		return err
	}
	if err := r.state.SetRenderTargets(r.gbuf.targets(), r.gbuf.depthStencil); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.transformCB, r.materialCB}); err != nil {
		return err
	}

	for _, obj := range ctx.renderables {
		mf := obj.MeshFilter()
		mr := obj.MeshRenderer()
		if mf.Mesh == nil || mr.Material == nil {
			continue
		}
		mat := mr.Material
		// Transparent surfaces are excluded from the opaque geometry pass.
		if mat.Opacity() < 1 {
			continue
		}
		extents := obj.BoundingExtents()
		radius := max(extents[0], extents[1], extents[2])
		if ctx.frustum.CheckSphere(obj.BoundingCenter(), radius) == common.Outside {
			continue
		}

		r.state.SetRasterizerState(mat.FaceCullMode(), device.FillModeSolid)
		if err := r.state.SetTextures(r.materialTextures(mat)); err != nil {
			return err
		}
		params := material.ParamsFor(mat)
		if err := r.dev.UpdateConstantBuffer(r.materialCB, params.Marshal()); err != nil {
			return err
		}
		if err := r.drawMesh(obj, ctx.viewProjection); err != nil {
			return err
		}
		ctx.meshesDrawn++
	}
	return nil
}

// renderLightingPass composites the geometry buffer into lit color with one
// fullscreen draw over all lights.
func (r *renderer) renderLightingPass(ctx *renderPassContext) error {
	frame := GPUFrameParams{
		QuadTransform:  ctx.quadTransform,
		CameraPosition: ctx.cameraPosition,
		LightCount:     uint32(min(len(ctx.lights), light.MaxGPULights)),
		AmbientColor:   r.sceneAmbient(),
	}
	if err := r.dev.UpdateConstantBuffer(r.frameCB, frame.Marshal()); err != nil {
		return err
	}
	if err := r.dev.UpdateConstantBuffer(r.lightsCB, ctx.gpuLights()); err != nil {
		return err
	}
	if err := r.dev.UpdateConstantBuffer(r.cascadesCB, ctx.gpuCascades(ctx.camera.Far())); err != nil {
		return err
	}

	textures := r.gbuf.textures()
	shadow, err := r.shadowBinding(ctx)
	if err != nil {
		return err
	}
	textures = append(textures, shadow...)
	textures = append(textures, r.noiseTexture, r.environmentTexture())

	if err := r.dev.Clear(r.postA, ctx.clearColor); err != nil {
		return err
	}
	if err := r.state.SetRenderTargets([]*device.RenderTarget{r.postA}, nil); err != nil {
		return err
	}
	if err := r.state.SetShaders(r.shaders["lighting"], r.shaders["lighting"]); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.frameCB, r.lightsCB, r.cascadesCB}); err != nil {
		return err
	}
	if err := r.state.SetTextures(textures); err != nil {
		return err
	}
	return r.drawFullscreen()
}

// renderPostPass runs the post-process chain: anti-aliasing into the second
// ping-pong target, then sharpening into the backbuffer. Each stage clears
// its destination before drawing.
func (r *renderer) renderPostPass(ctx *renderPassContext) error {
	texel := [2]float32{1 / float32(r.width), 1 / float32(r.height)}

	fxaa := GPUPostParams{QuadTransform: ctx.quadTransform, TexelSize: texel, Strength: fxaaStrength}
	if err := r.dev.UpdateConstantBuffer(r.fxaaCB, fxaa.Marshal()); err != nil {
		return err
	}
	if err := r.dev.Clear(r.postB, ctx.clearColor); err != nil {
		return err
	}
	if err := r.state.SetRenderTargets([]*device.RenderTarget{r.postB}, nil); err != nil {
		return err
	}
	if err := r.state.SetShaders(r.shaders["fxaa"], r.shaders["fxaa"]); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.fxaaCB}); err != nil {
		return err
	}
	if err := r.state.SetTexture(r.postA.Texture()); err != nil {
		return err
	}
	if err := r.drawFullscreen(); err != nil {
		return err
	}

	sharpen := GPUPostParams{QuadTransform: ctx.quadTransform, TexelSize: texel, Strength: sharpenStrength}
	if err := r.dev.UpdateConstantBuffer(r.sharpenCB, sharpen.Marshal()); err != nil {
		return err
	}
	backbuffer := r.dev.Backbuffer()
	if err := r.dev.Clear(backbuffer, ctx.clearColor); err != nil {
		return err
	}
	if err := r.state.SetRenderTargets([]*device.RenderTarget{backbuffer}, nil); err != nil {
		return err
	}
	if err := r.state.SetShaders(r.shaders["sharpen"], r.shaders["sharpen"]); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.sharpenCB}); err != nil {
		return err
	}
	if err := r.state.SetTexture(r.postB.Texture()); err != nil {
		return err
	}
	return r.drawFullscreen()
}

// renderDebugPass overlays accumulated debug lines. Runs only in editor mode
// and only when new lines arrived since the last drain.
func (r *renderer) renderDebugPass(ctx *renderPassContext) error {
	if !r.editorMode || r.debugDraw == nil || !r.debugDraw.IsDirty() {
		return nil
	}
	lines := r.debugDraw.Lines()
	if len(lines) == 0 {
		return nil
	}

	verts := make([]float32, 0, len(lines)*14)
	for _, l := range lines {
		verts = append(verts, l.From[0], l.From[1], l.From[2], l.Color[0], l.Color[1], l.Color[2], l.Color[3])
		verts = append(verts, l.To[0], l.To[1], l.To[2], l.Color[0], l.Color[1], l.Color[2], l.Color[3])
	}
	data := common.SliceToBytes(verts)

	var err error
	if r.lineVertexBuffer == nil {
		r.lineVertexBuffer, err = r.dev.CreateVertexBuffer(data, 7*4)
	} else {
		err = r.dev.UpdateVertexBuffer(r.lineVertexBuffer, data)
	}
	if err != nil {
		return err
	}

	transform := GPUObjectTransform{WorldViewProjection: ctx.viewProjection}
	common.Identity(transform.World[:])
	if err := r.dev.UpdateConstantBuffer(r.lineCB, transform.Marshal()); err != nil {
		return err
	}

	r.state.SetPrimitiveTopology(device.TopologyLineList)
	if err := r.state.SetInputLayout(device.InputLayoutPositionColor); err != nil {
		return err
	}
	r.state.SetRasterizerState(device.CullModeNone, device.FillModeSolid)
	if err := r.state.SetShaders(r.shaders["line"], r.shaders["line"]); err != nil {
		return err
	}
	if err := r.state.SetRenderTargets([]*device.RenderTarget{r.dev.Backbuffer()}, r.gbuf.depthStencil); err != nil {
		return err
	}
	if err := r.state.SetConstantBuffers([]*device.ConstantBuffer{r.lineCB}); err != nil {
		return err
	}
	if err := r.state.SetVertexBuffer(r.lineVertexBuffer); err != nil {
		return err
	}
	if err := r.state.Bind(); err != nil {
		return err
	}
	return r.dev.Draw(len(lines) * 2)
}

// drawMesh uploads the object's mesh if needed, writes its transform, and
// submits an indexed draw through the shared pipeline state.
func (r *renderer) drawMesh(obj game_object.GameObject, viewProj [16]float32) error {
	mesh := obj.MeshFilter().Mesh
	if err := mesh.Upload(r.dev); err != nil {
		return err
	}

	world := obj.WorldTransform()
	transform := GPUObjectTransform{World: world}
	common.Mul4(transform.WorldViewProjection[:], viewProj[:], world[:])
	if obj.MeshRenderer().ReceivesShadows {
		transform.ReceivesShadows = 1
	}
	if err := r.dev.UpdateConstantBuffer(r.transformCB, transform.Marshal()); err != nil {
		return err
	}

	if err := r.state.SetVertexBuffer(mesh.VertexBuffer()); err != nil {
		return err
	}
	if err := r.state.SetIndexBuffer(mesh.IndexBuffer()); err != nil {
		return err
	}
	if err := r.state.Bind(); err != nil {
		return err
	}
	return r.dev.DrawIndexed(mesh.IndexCount())
}

// drawFullscreen submits the shared screen-sized quad with the state already
// configured for a screen-space pass. The pass uniform carries the base view
// and orthographic projection that place the quad.
func (r *renderer) drawFullscreen() error {
	r.state.SetPrimitiveTopology(device.TopologyTriangleList)
	if err := r.state.SetInputLayout(device.InputLayoutPositionTexture); err != nil {
		return err
	}
	r.state.SetRasterizerState(device.CullModeNone, device.FillModeSolid)
	if err := r.state.SetViewport(device.Viewport{Width: float32(r.width), Height: float32(r.height), MaxDepth: 1}); err != nil {
		return err
	}
	if err := r.state.SetSamplers([]*device.Sampler{r.linearSampler}); err != nil {
		return err
	}
	if err := r.state.SetVertexBuffer(r.quad.vertices); err != nil {
		return err
	}
	if err := r.state.SetIndexBuffer(r.quad.indices); err != nil {
		return err
	}
	if err := r.state.Bind(); err != nil {
		return err
	}
	return r.dev.DrawIndexed(6)
}

// materialTextures resolves the full slot layout for a material, substituting
// neutral fallbacks so the shader's binding count never varies.
func (r *renderer) materialTextures(mat material.Material) []*device.Texture {
	textures := make([]*device.Texture, material.SlotCount)
	for slot := material.TextureSlot(0); slot < material.SlotCount; slot++ {
		if tex := mat.Texture(slot); tex != nil {
			textures[slot] = tex
			continue
		}
		if slot == material.SlotNormal {
			textures[slot] = r.flatNormalTexture
		} else {
			textures[slot] = r.whiteTexture
		}
	}
	return textures
}

// shadowBinding returns the lighting pass shadow map bindings: the cascade
// set flattened into one array texture, or white fallbacks when no
// directional light casts shadows.
func (r *renderer) shadowBinding(ctx *renderPassContext) ([]*device.Texture, error) {
	if ctx.cascades == nil {
		fallback := make([]*device.Texture, light.DirectionalCascadeCount)
		for i := range fallback {
			fallback[i] = r.whiteTexture
		}
		return fallback, nil
	}
	if arr, ok := r.shadowArrays[ctx.cascades]; ok {
		return []*device.Texture{arr}, nil
	}
	layers := make([]*device.Texture, ctx.cascades.Count())
	for i := range layers {
		layers[i] = ctx.cascades.Target(i).Texture()
	}
	arr, err := r.dev.CreateTextureArray(layers)
	if err != nil {
		return nil, fmt.Errorf("failed to build shadow map array: %w", err)
	}
	r.shadowArrays[ctx.cascades] = arr
	return []*device.Texture{arr}, nil
}

// environmentTexture returns the skybox environment map, or the noise
// texture when the scene has none so the binding layout stays fixed.
func (r *renderer) environmentTexture() *device.Texture {
	if r.scene != nil {
		if sky := r.scene.Skybox(); sky != nil && sky.EnvironmentTexture != nil {
			return sky.EnvironmentTexture
		}
	}
	return r.noiseTexture
}

func (r *renderer) sceneAmbient() [3]float32 {
	if r.scene != nil {
		return r.scene.AmbientColor()
	}
	return [3]float32{}
}

// ensureResources creates frame-invariant resources on first use and
// rebuilds the size-dependent surfaces after a resolution change.
func (r *renderer) ensureResources() error {
	if r.shaders == nil {
		if err := r.createStaticResources(); err != nil {
			return err
		}
	}
	if r.gbuf != nil && !r.pendingResize {
		return nil
	}

	if r.pendingResize {
		if err := r.dev.Resize(r.width, r.height); err != nil {
			return fmt.Errorf("failed to resize device: %w", err)
		}
	}

	var err error
	if r.gbuf, err = newGBuffer(r.dev, r.width, r.height); err != nil {
		return err
	}
	if r.postA, err = r.dev.CreateRenderTarget(r.width, r.height, device.FormatRGBA16Float); err != nil {
		return fmt.Errorf("failed to create post-process target: %w", err)
	}
	if r.postB, err = r.dev.CreateRenderTarget(r.width, r.height, device.FormatRGBA16Float); err != nil {
		return fmt.Errorf("failed to create post-process target: %w", err)
	}
	if r.quad, err = newFullscreenQuad(r.dev, r.width, r.height); err != nil {
		return err
	}
	r.pendingResize = false
	return nil
}

// createStaticResources compiles shaders and allocates the resources that
// survive resolution changes.
func (r *renderer) createStaticResources() error {
	sources := map[string]string{
		"depth":    depthShaderSource,
		"gbuffer":  gbufferShaderSource,
		"lighting": lightingShaderSource,
		"fxaa":     fxaaShaderSource,
		"sharpen":  sharpenShaderSource,
		"line":     lineShaderSource,
	}
	r.shaders = make(map[string]*device.Shader, len(sources))
	for name, source := range sources {
		sh, err := r.dev.CreateShader(name, source, "vs_main", "fs_main")
		if err != nil {
			return fmt.Errorf("failed to compile %q shader: %w", name, err)
		}
		r.shaders[name] = sh
	}

	var err error
	if r.linearSampler, err = r.dev.CreateSampler(common.SamplerStagingData{}); err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	var transform GPUObjectTransform
	var matParams material.GPUMaterialParams
	var frame GPUFrameParams
	var cascades light.GPUShadowCascades
	var post GPUPostParams
	buffers := []struct {
		dst  **device.ConstantBuffer
		size int
	}{
		{&r.transformCB, transform.Size()},
		{&r.materialCB, matParams.Size()},
		{&r.frameCB, frame.Size()},
		{&r.lightsCB, light.MaxGPULights * 64},
		{&r.cascadesCB, cascades.Size()},
		{&r.fxaaCB, post.Size()},
		{&r.sharpenCB, post.Size()},
		{&r.lineCB, transform.Size()},
	}
	for _, b := range buffers {
		if *b.dst, err = r.dev.CreateConstantBuffer(b.size); err != nil {
			return fmt.Errorf("failed to create constant buffer: %w", err)
		}
	}

	if r.whiteTexture, err = r.solidTexture(255, 255, 255); err != nil {
		return err
	}
	// 128/128/255 decodes to the +Z tangent-space normal.
	if r.flatNormalTexture, err = r.solidTexture(128, 128, 255); err != nil {
		return err
	}
	if r.noiseTexture, err = texture.CreateNoiseTexture(r.dev, r.noiseSize); err != nil {
		return fmt.Errorf("failed to create noise texture: %w", err)
	}
	return nil
}

// solidTexture uploads a single-pixel texture of the given color.
func (r *renderer) solidTexture(red, green, blue byte) (*device.Texture, error) {
	data := common.TextureStagingData{
		Pixels: []byte{red, green, blue, 255},
		Width:  1,
		Height: 1,
	}
	tex, err := r.dev.CreateTexture(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback texture: %w", err)
	}
	return tex, nil
}
