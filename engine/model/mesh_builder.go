package model

// MeshBuilderOption is a function that configures a mesh instance during construction.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the name of the mesh.
//
// Parameters:
//   - name: the identifier for the mesh
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithVertices is an option builder that sets the vertex data of the mesh.
//
// Parameters:
//   - vertices: the mesh vertices
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex option to a mesh
func WithVertices(vertices []Vertex) MeshBuilderOption {
	return func(m *mesh) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle indices of the mesh.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - MeshBuilderOption: a function that applies the index option to a mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}
