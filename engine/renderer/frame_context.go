package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/camera"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/scene"
)

// renderPassContext is the per-frame snapshot every pass reads from. It is
// rebuilt at the top of each frame so passes never observe scene mutations
// mid-frame, and discarded after present.
type renderPassContext struct {
	camera         camera.Camera
	view           [16]float32
	projection     [16]float32
	viewProjection [16]float32
	quadTransform  [16]float32
	cameraPosition [3]float32
	clearColor     common.Color

	frustum common.Frustum

	renderables []game_object.GameObject

	lights      []light.Light
	shadowLight light.Light
	cascades    light.CascadeSet

	meshesDrawn int
}

// buildFrameContext snapshots the scene into a renderPassContext. Renderables
// are ordered by shader key then material so the geometry pass changes
// pipeline state as rarely as possible. The orthographic projection is kept
// in sync with the output resolution here, and combined with the base view
// into the transform the full-screen passes draw their quad with. The
// returned context has a nil camera when the scene cannot be rendered this
// frame.
func buildFrameContext(s scene.Scene, width, height int) *renderPassContext {
	ctx := &renderPassContext{}
	if s == nil {
		return ctx
	}

	cam := s.MainCamera()
	if cam == nil {
		return ctx
	}
	ctx.camera = cam
	ctx.view = cam.ViewMatrix()
	ctx.projection = cam.ProjectionMatrix()
	common.Mul4(ctx.viewProjection[:], ctx.projection[:], ctx.view[:])

	cam.SetOrthographicSize(float32(width), float32(height))
	baseView := cam.BaseViewMatrix()
	ortho := cam.OrthographicMatrix()
	common.Mul4(ctx.quadTransform[:], ortho[:], baseView[:])

	ctx.cameraPosition = cam.Position()
	ctx.clearColor = cam.ClearColor()
	ctx.frustum.Construct(ctx.view[:], ctx.projection[:], cam.Far())

	ctx.renderables = append([]game_object.GameObject(nil), s.Renderables()...)
	sort.SliceStable(ctx.renderables, func(i, j int) bool {
		a, b := ctx.renderables[i].MeshRenderer().Material, ctx.renderables[j].MeshRenderer().Material
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if a.ShaderKey() != b.ShaderKey() {
			return a.ShaderKey() < b.ShaderKey()
		}
		return a.ID() < b.ID()
	})

	for _, l := range s.DirectionalLights() {
		ctx.lights = append(ctx.lights, l)
		if ctx.shadowLight == nil && l.CastsShadows() {
			ctx.shadowLight = l
			ctx.cascades = s.ShadowCascades(l)
		}
	}
	ctx.lights = append(ctx.lights, s.PointLights()...)

	return ctx
}

// gpuLights marshals the snapshot's light list into the lighting pass buffer,
// capped at the GPU light limit.
func (ctx *renderPassContext) gpuLights() []byte {
	count := min(len(ctx.lights), light.MaxGPULights)
	buf := make([]byte, 0, count*64)
	for _, l := range ctx.lights[:count] {
		g := light.GPULightFor(l)
		buf = append(buf, g.Marshal()...)
	}
	// The GPU side is a fixed-size array; zero-fill the tail.
	buf = append(buf, make([]byte, (light.MaxGPULights-count)*64)...)
	return buf
}

// gpuCascades marshals the directional shadow cascade matrices for the
// lighting pass. Returns a zeroed block when no shadow-casting directional
// light exists.
func (ctx *renderPassContext) gpuCascades(farPlane float32) []byte {
	var g light.GPUShadowCascades
	if ctx.cascades != nil {
		splits := ctx.cascades.Splits()
		for i := 0; i < len(splits) && i < len(g.Splits); i++ {
			g.Splits[i] = splits[i] * farPlane
		}
		g.CascadeCount = uint32(min(ctx.cascades.Count(), light.DirectionalCascadeCount))
		for i := 0; i < int(g.CascadeCount); i++ {
			view := ctx.cascades.ViewMatrixAt(i)
			proj := ctx.cascades.Projection(i)
			common.Mul4(g.ViewProj[i][:], proj[:], view[:])
		}
	}
	return g.Marshal()
}
