package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/camera"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/physics"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"
	"github.com/Carmen-Shannon/umbra-go/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition([3]float32{0, 2, -8}),
		camera.WithTarget([3]float32{0, 0, 0}),
		camera.WithClipPlanes(0.3, 200),
	)
}

func testCube(position [3]float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithMesh(model.NewCubeMesh(1)),
		game_object.WithMaterial(material.NewMaterial()),
		game_object.WithPosition(position),
	)
}

func testScene(t *testing.T, dev device.Device, options ...scene.SceneBuilderOption) scene.Scene {
	t.Helper()
	s, err := scene.NewScene("test", dev, options...)
	require.NoError(t, err)
	return s
}

func countLog(log []string, entry string) int {
	n := 0
	for _, e := range log {
		if e == entry {
			n++
		}
	}
	return n
}

func TestRenderWithoutCameraClearsAndPresents(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev)
	s.Add(testCube([3]float32{0, 0, 0}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, 1, dev.Presents)
	assert.Zero(t, dev.Draws)
	assert.Zero(t, r.RenderedMeshesCount())
	assert.Equal(t, "present", dev.Log[len(dev.Log)-1])
}

func TestRenderWithoutRenderablesClearsAndPresents(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, 1, dev.Presents)
	assert.Zero(t, countLog(dev.Log, "draw_indexed"))
}

func TestRenderFullFrameDrawOrder(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))
	require.NoError(t, s.AddLight(light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true))))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	// One cube through three shadow cascades, the geometry pass, the
	// lighting quad, and two post-process quads.
	assert.Equal(t, 7, countLog(dev.Log, "draw_indexed"))
	assert.Equal(t, 1, dev.Presents)
	assert.Equal(t, "present", dev.Log[len(dev.Log)-1])
	assert.Equal(t, 1, r.RenderedMeshesCount())

	// Shadow cascades clear depth before the geometry pass does.
	assert.Equal(t, 4, countLog(dev.Log, "clear_depth"))
}

func TestRenderWithoutShadowLightSkipsShadowPass(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	// Geometry, lighting, and two post-process draws only.
	assert.Equal(t, 4, countLog(dev.Log, "draw_indexed"))
	assert.Equal(t, 1, countLog(dev.Log, "clear_depth"))
}

func TestRenderCullsMeshesOutsideFrustum(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))
	s.Add(testCube([3]float32{0, 0, -500}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Equal(t, 1, r.RenderedMeshesCount())
}

func TestRenderSkipsTransparentAndIncompleteObjects(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))
	s.Add(game_object.NewGameObject(
		game_object.WithMesh(model.NewCubeMesh(1)),
		game_object.WithMaterial(material.NewMaterial(material.WithOpacity(0.5))),
	))
	s.Add(game_object.NewGameObject(
		game_object.WithMaterial(material.NewMaterial()),
	))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Equal(t, 1, r.RenderedMeshesCount())
}

func TestSetResolutionIgnoresNonPositiveDimensions(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)

	r.SetResolution(0, 480)
	r.SetResolution(640, -1)
	require.NoError(t, r.Render())

	assert.Equal(t, float32(640), dev.CurrentViewport.Width)
	assert.Equal(t, float32(480), dev.CurrentViewport.Height)
}

func TestSetResolutionRebuildsTargets(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())
	quadBefore := r.(*renderer).quad

	r.SetResolution(1280, 720)
	require.NoError(t, r.Render())

	assert.Equal(t, float32(1280), dev.CurrentViewport.Width)
	assert.Equal(t, float32(720), dev.CurrentViewport.Height)
	assert.NotSame(t, quadBefore, r.(*renderer).quad)
}

func TestFullscreenPassesCarryQuadTransform(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	cam := testCamera()
	s := testScene(t, dev, scene.WithMainCamera(cam))
	s.Add(testCube([3]float32{0, 0, 0}))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	// The frame keeps the orthographic projection synced to the output size.
	ortho := cam.OrthographicMatrix()
	assert.InDelta(t, 2.0/640.0, ortho[0], 1e-6)

	base := cam.BaseViewMatrix()
	var want [16]float32
	common.Mul4(want[:], ortho[:], base[:])

	impl := r.(*renderer)
	for _, cb := range []*device.ConstantBuffer{impl.frameCB, impl.fxaaCB, impl.sharpenCB} {
		payload := dev.ConstantWrites[cb]
		require.GreaterOrEqual(t, len(payload), 64)
		for i := range 16 {
			got := math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
			assert.InDelta(t, want[i], got, 1e-6)
		}
	}
}

func TestDebugPassRunsOnlyWhenDirty(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	dd := physics.NewDebugDraw()
	r, err := NewRenderer(dev, 640, 480, WithScene(s), WithDebugDraw(dd), WithEditorMode(true))
	require.NoError(t, err)

	require.NoError(t, r.Render())
	assert.Zero(t, countLog(dev.Log, "draw"))

	dd.AddLine(common.LineSegment{From: [3]float32{0, 0, 0}, To: [3]float32{1, 1, 1}, Color: common.Color{1, 0, 0, 1}})
	require.NoError(t, r.Render())
	assert.Equal(t, 1, countLog(dev.Log, "draw"))

	// Drained lines do not redraw.
	require.NoError(t, r.Render())
	assert.Equal(t, 1, countLog(dev.Log, "draw"))
}

func TestDebugPassRequiresEditorMode(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	dd := physics.NewDebugDraw()
	dd.AddLine(common.LineSegment{To: [3]float32{1, 0, 0}, Color: common.Color{0, 1, 0, 1}})

	r, err := NewRenderer(dev, 640, 480, WithScene(s), WithDebugDraw(dd))
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Zero(t, countLog(dev.Log, "draw"))
}

func TestRenderHooksWrapTheFrame(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(testCube([3]float32{0, 0, 0}))

	var order []string
	r, err := NewRenderer(dev, 640, 480,
		WithScene(s),
		WithPreRenderHook(func() { order = append(order, "pre") }),
		WithPostRenderHook(func() { order = append(order, "post") }),
	)
	require.NoError(t, err)
	require.NoError(t, r.Render())

	assert.Equal(t, []string{"pre", "post"}, order)
	assert.Equal(t, 1, dev.Presents)
}

func TestNewRendererValidation(t *testing.T) {
	_, err := NewRenderer(nil, 640, 480)
	assert.Error(t, err)

	_, err = NewRenderer(device.NewNullDevice(1, 1), 0, 480)
	assert.Error(t, err)
}

func transformReceivesShadows(t *testing.T, dev *device.NullDevice, r Renderer) float32 {
	t.Helper()
	payload := dev.ConstantWrites[r.(*renderer).transformCB]
	require.Len(t, payload, 144)
	return math.Float32frombits(binary.LittleEndian.Uint32(payload[128:132]))
}

func TestGeometryPassEncodesReceivesShadows(t *testing.T) {
	dev := device.NewNullDevice(640, 480)
	s := testScene(t, dev, scene.WithMainCamera(testCamera()))
	s.Add(game_object.NewGameObject(
		game_object.WithMesh(model.NewCubeMesh(1)),
		game_object.WithMaterial(material.NewMaterial()),
		game_object.WithReceivesShadows(false),
	))

	r, err := NewRenderer(dev, 640, 480, WithScene(s))
	require.NoError(t, err)
	require.NoError(t, r.Render())
	assert.Equal(t, float32(0), transformReceivesShadows(t, dev, r))

	shadowed := device.NewNullDevice(640, 480)
	s2 := testScene(t, shadowed, scene.WithMainCamera(testCamera()))
	s2.Add(testCube([3]float32{0, 0, 0}))

	r2, err := NewRenderer(shadowed, 640, 480, WithScene(s2))
	require.NoError(t, err)
	require.NoError(t, r2.Render())
	assert.Equal(t, float32(1), transformReceivesShadows(t, shadowed, r2))
}
