package game_object

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithName("thing"))

	assert.Equal(t, "thing", obj.Name())
	assert.True(t, obj.Enabled())
	assert.Equal(t, [3]float32{1, 1, 1}, obj.Scale())
	assert.True(t, obj.MeshRenderer().CastsShadows)
	assert.Nil(t, obj.MeshFilter().Mesh)
}

func TestIDsAreUnique(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestWorldTransformTranslates(t *testing.T) {
	obj := NewGameObject(WithPosition([3]float32{3, -1, 5}))

	m := obj.WorldTransform()
	assert.Equal(t, float32(3), m[12])
	assert.Equal(t, float32(-1), m[13])
	assert.Equal(t, float32(5), m[14])
}

func TestBoundingVolumeFollowsTransform(t *testing.T) {
	obj := NewGameObject(
		WithMesh(model.NewCubeMesh(2)),
		WithPosition([3]float32{10, 0, 0}),
		WithScale([3]float32{2, 2, 2}),
	)

	assert.Equal(t, [3]float32{10, 0, 0}, obj.BoundingCenter())

	ext := obj.BoundingExtents()
	for i := range 3 {
		assert.InDelta(t, 2, ext[i], 1e-5)
	}
}

func TestBoundingExtentsStayConservativeUnderRotation(t *testing.T) {
	obj := NewGameObject(
		WithMesh(model.NewCubeMesh(2)),
		WithRotation([3]float32{0, float32(math.Pi / 4), 0}),
	)

	ext := obj.BoundingExtents()
	// A unit-half-extent cube rotated 45 degrees spans sqrt(2) on X and Z.
	assert.InDelta(t, math.Sqrt2, ext[0], 1e-5)
	assert.InDelta(t, 1, ext[1], 1e-5)
	assert.InDelta(t, math.Sqrt2, ext[2], 1e-5)
}

func TestBoundingVolumeWithoutMeshIsZero(t *testing.T) {
	obj := NewGameObject(WithPosition([3]float32{4, 4, 4}))

	assert.Equal(t, [3]float32{}, obj.BoundingCenter())
	assert.Equal(t, [3]float32{}, obj.BoundingExtents())
}

func TestSettersInvalidateCachedTransform(t *testing.T) {
	obj := NewGameObject(WithMesh(model.NewCubeMesh(2)))
	require.Equal(t, [3]float32{0, 0, 0}, obj.BoundingCenter())

	obj.SetPosition([3]float32{0, 7, 0})
	assert.Equal(t, [3]float32{0, 7, 0}, obj.BoundingCenter())

	obj.SetScale([3]float32{3, 1, 1})
	assert.InDelta(t, 3, obj.BoundingExtents()[0], 1e-5)
}

func TestRendererComponentOptions(t *testing.T) {
	mat := material.NewMaterial(material.WithName("steel"))
	obj := NewGameObject(
		WithMaterial(mat),
		WithCastsShadows(false),
		WithReceivesShadows(false),
	)

	assert.Equal(t, mat, obj.MeshRenderer().Material)
	assert.False(t, obj.MeshRenderer().CastsShadows)
	assert.False(t, obj.MeshRenderer().ReceivesShadows)
}

func TestConcurrentTransformAccess(t *testing.T) {
	obj := NewGameObject(WithMesh(model.NewCubeMesh(2)))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			obj.SetRotation([3]float32{0, float32(i), 0})
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			_ = obj.WorldTransform()
			_ = obj.BoundingExtents()
		}
	}()
	wg.Wait()

	obj.SetRotation([3]float32{0, 0, 0})
	m := obj.WorldTransform()
	assert.InDelta(t, 1, m[0], 1e-5)
	assert.InDelta(t, 1, m[5], 1e-5)
}
