package model

import (
	"fmt"

	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// Vertex is a single static mesh vertex. The field order matches the
// renderer's static input layout: position, normal, tangent, uv.
type Vertex struct {
	// Position is the model-space vertex position.
	Position [3]float32

	// Normal is the model-space surface normal.
	Normal [3]float32

	// Tangent is the model-space tangent used for normal mapping.
	Tangent [3]float32

	// UV is the texture coordinate.
	UV [2]float32
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 11 * 4

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name     string
	vertices []Vertex
	indices  []uint32

	boundingCenter  [3]float32
	boundingExtents [3]float32

	vertexBuffer *device.VertexBuffer
	indexBuffer  *device.IndexBuffer
}

// Mesh defines the interface for static triangle geometry. A Mesh holds the
// CPU-side vertex and index data, a model-space axis-aligned bounding volume
// derived from the vertices, and the GPU buffers created during Upload.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices retrieves the CPU-side vertex data.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices retrieves the CPU-side triangle indices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// IndexCount retrieves the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingCenter retrieves the model-space center of the axis-aligned
	// bounding box enclosing every vertex.
	//
	// Returns:
	//   - [3]float32: the bounding box center
	BoundingCenter() [3]float32

	// BoundingExtents retrieves the model-space half-size of the axis-aligned
	// bounding box along each axis.
	//
	// Returns:
	//   - [3]float32: the bounding box half extents
	BoundingExtents() [3]float32

	// Upload creates the GPU vertex and index buffers for this mesh. Calling
	// Upload again after a successful upload is a no-op.
	//
	// Parameters:
	//   - dev: the device to create buffers on
	//
	// Returns:
	//   - error: an error if buffer creation fails
	Upload(dev device.Device) error

	// VertexBuffer retrieves the GPU vertex buffer, or nil before Upload.
	//
	// Returns:
	//   - *device.VertexBuffer: the vertex buffer or nil
	VertexBuffer() *device.VertexBuffer

	// IndexBuffer retrieves the GPU index buffer, or nil before Upload.
	//
	// Returns:
	//   - *device.IndexBuffer: the index buffer or nil
	IndexBuffer() *device.IndexBuffer
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh instance configured with the provided options.
// The bounding volume is derived from the supplied vertices.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: a new Mesh instance
//   - error: an error if the mesh has no vertices or no indices
func NewMesh(options ...MeshBuilderOption) (Mesh, error) {
	m := &mesh{}
	for _, opt := range options {
		opt(m)
	}
	if len(m.vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices", m.name)
	}
	if len(m.indices) == 0 {
		return nil, fmt.Errorf("mesh %q has no indices", m.name)
	}
	m.computeBounds()
	return m, nil
}

func (m *mesh) computeBounds() {
	minC := m.vertices[0].Position
	maxC := minC
	for _, v := range m.vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Position[axis] < minC[axis] {
				minC[axis] = v.Position[axis]
			}
			if v.Position[axis] > maxC[axis] {
				maxC[axis] = v.Position[axis]
			}
		}
	}
	for axis := 0; axis < 3; axis++ {
		m.boundingCenter[axis] = (minC[axis] + maxC[axis]) * 0.5
		m.boundingExtents[axis] = (maxC[axis] - minC[axis]) * 0.5
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) BoundingCenter() [3]float32 {
	return m.boundingCenter
}

func (m *mesh) BoundingExtents() [3]float32 {
	return m.boundingExtents
}

func (m *mesh) Upload(dev device.Device) error {
	if m.vertexBuffer != nil && m.indexBuffer != nil {
		return nil
	}

	vb, err := dev.CreateVertexBuffer(common.SliceToBytes(m.vertices), VertexStride)
	if err != nil {
		return fmt.Errorf("failed to upload mesh %q vertices: %w", m.name, err)
	}
	ib, err := dev.CreateIndexBuffer(m.indices)
	if err != nil {
		return fmt.Errorf("failed to upload mesh %q indices: %w", m.name, err)
	}

	m.vertexBuffer = vb
	m.indexBuffer = ib
	return nil
}

func (m *mesh) VertexBuffer() *device.VertexBuffer {
	return m.vertexBuffer
}

func (m *mesh) IndexBuffer() *device.IndexBuffer {
	return m.indexBuffer
}
