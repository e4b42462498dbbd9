package model

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshRequiresGeometry(t *testing.T) {
	_, err := NewMesh(WithName("empty"))
	assert.Error(t, err)

	_, err = NewMesh(WithVertices([]Vertex{{}}))
	assert.Error(t, err)
}

func TestMeshBoundsFromVertices(t *testing.T) {
	m, err := NewMesh(
		WithVertices([]Vertex{
			{Position: [3]float32{-1, 0, 2}},
			{Position: [3]float32{3, 4, 2}},
			{Position: [3]float32{1, -2, 6}},
		}),
		WithIndices([]uint32{0, 1, 2}),
	)
	require.NoError(t, err)

	assert.Equal(t, [3]float32{1, 1, 4}, m.BoundingCenter())
	assert.Equal(t, [3]float32{2, 3, 2}, m.BoundingExtents())
}

func TestCubeMeshGeometry(t *testing.T) {
	m := NewCubeMesh(2)

	assert.Len(t, m.Vertices(), 24)
	assert.Equal(t, 36, m.IndexCount())
	assert.Equal(t, [3]float32{0, 0, 0}, m.BoundingCenter())
	assert.Equal(t, [3]float32{1, 1, 1}, m.BoundingExtents())
}

func TestPlaneMeshGeometry(t *testing.T) {
	m := NewPlaneMesh(10, 4)

	assert.Len(t, m.Vertices(), 4)
	assert.Equal(t, 6, m.IndexCount())
	assert.Equal(t, [3]float32{5, 0, 2}, m.BoundingExtents())

	for _, v := range m.Vertices() {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}
}

func TestUploadIsIdempotent(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	m := NewCubeMesh(1)

	require.NoError(t, m.Upload(dev))
	vb := m.VertexBuffer()
	ib := m.IndexBuffer()
	require.NotNil(t, vb)
	require.NotNil(t, ib)

	// A second upload keeps the existing buffers.
	require.NoError(t, m.Upload(dev))
	assert.Same(t, vb, m.VertexBuffer())
	assert.Same(t, ib, m.IndexBuffer())
}
