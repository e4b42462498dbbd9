package scene

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/engine/camera"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene(t *testing.T) Scene {
	t.Helper()
	s, err := NewScene("test", device.NewNullDevice(64, 64))
	require.NoError(t, err)
	return s
}

func TestNewSceneRequiresDevice(t *testing.T) {
	_, err := NewScene("broken", nil)
	assert.Error(t, err)
}

func TestAddGetRemove(t *testing.T) {
	s := testScene(t)

	obj := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(model.NewCubeMesh(1)),
	)

	id := s.Add(obj)
	assert.Equal(t, obj.ID(), id)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, obj, s.Get(id))

	s.Remove(id)
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, s.Get(id))
}

func TestRenderablesSkipDisabledAndKeepOrder(t *testing.T) {
	s := testScene(t)

	first := game_object.NewGameObject(game_object.WithMesh(model.NewCubeMesh(1)))
	s.Add(first)

	disabled := game_object.NewGameObject(game_object.WithMesh(model.NewCubeMesh(1)))
	disabled.SetEnabled(false)
	s.Add(disabled)

	second := game_object.NewGameObject(game_object.WithMesh(model.NewCubeMesh(1)))
	s.Add(second)

	renderables := s.Renderables()
	require.Len(t, renderables, 2)
	assert.Equal(t, first.ID(), renderables[0].ID())
	assert.Equal(t, second.ID(), renderables[1].ID())
}

func TestLightRegistryBuildsCascades(t *testing.T) {
	s := testScene(t)

	sun := light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true))
	require.NoError(t, s.AddLight(sun))

	point := light.NewLight(light.LightTypePoint, light.WithPosition(1, 2, 3))
	require.NoError(t, s.AddLight(point))

	require.Len(t, s.DirectionalLights(), 1)
	require.Len(t, s.PointLights(), 1)

	set := s.ShadowCascades(sun)
	require.NotNil(t, set)
	assert.Equal(t, 3, set.Count())

	s.RemoveLight(sun)
	assert.Empty(t, s.DirectionalLights())
	assert.Nil(t, s.ShadowCascades(sun))
}

func TestMainCameraAndAmbient(t *testing.T) {
	cam := camera.NewCamera()
	s, err := NewScene("lit", device.NewNullDevice(64, 64),
		WithMainCamera(cam),
		WithAmbientColor([3]float32{0.1, 0.2, 0.3}),
	)
	require.NoError(t, err)

	assert.Equal(t, cam, s.MainCamera())
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, s.AmbientColor())
}

func TestClearDropsEverything(t *testing.T) {
	s := testScene(t)

	s.Add(game_object.NewGameObject(game_object.WithMesh(model.NewCubeMesh(1))))
	require.NoError(t, s.AddLight(light.NewLight(light.LightTypeDirectional)))

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.DirectionalLights())
}
