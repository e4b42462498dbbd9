package model

// NewCubeMesh creates an axis-aligned cube mesh centered on the origin with
// the given edge length. Each face carries its own four vertices so normals
// stay hard.
//
// Parameters:
//   - size: the edge length of the cube in model units
//
// Returns:
//   - Mesh: the cube mesh
func NewCubeMesh(size float32) Mesh {
	h := size * 0.5

	faces := []struct {
		normal  [3]float32
		tangent [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, -1}, [3]float32{1, 0, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, 0, 1}, [3]float32{-1, 0, 0}, [4][3]float32{{h, -h, h}, {-h, -h, h}, {-h, h, h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, -1}, [4][3]float32{{-h, -h, h}, {-h, -h, -h}, {-h, h, -h}, {-h, h, h}}},
		{[3]float32{1, 0, 0}, [3]float32{0, 0, 1}, [4][3]float32{{h, -h, -h}, {h, -h, h}, {h, h, h}, {h, h, -h}}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, -h, -h}, {-h, -h, -h}}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [4][3]float32{{-h, h, -h}, {h, h, -h}, {h, h, h}, {-h, h, h}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range faces {
		base := uint32(len(vertices))
		for i, corner := range face.corners {
			vertices = append(vertices, Vertex{
				Position: corner,
				Normal:   face.normal,
				Tangent:  face.tangent,
				UV:       uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	m, _ := NewMesh(WithName("cube"), WithVertices(vertices), WithIndices(indices))
	return m
}

// NewPlaneMesh creates a flat quad mesh in the XZ plane centered on the
// origin, facing up.
//
// Parameters:
//   - width: the extent of the plane along X in model units
//   - depth: the extent of the plane along Z in model units
//
// Returns:
//   - Mesh: the plane mesh
func NewPlaneMesh(width, depth float32) Mesh {
	hw, hd := width*0.5, depth*0.5
	vertices := []Vertex{
		{Position: [3]float32{-hw, 0, -hd}, Normal: [3]float32{0, 1, 0}, Tangent: [3]float32{1, 0, 0}, UV: [2]float32{0, 0}},
		{Position: [3]float32{hw, 0, -hd}, Normal: [3]float32{0, 1, 0}, Tangent: [3]float32{1, 0, 0}, UV: [2]float32{1, 0}},
		{Position: [3]float32{hw, 0, hd}, Normal: [3]float32{0, 1, 0}, Tangent: [3]float32{1, 0, 0}, UV: [2]float32{1, 1}},
		{Position: [3]float32{-hw, 0, hd}, Normal: [3]float32{0, 1, 0}, Tangent: [3]float32{1, 0, 0}, UV: [2]float32{0, 1}},
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}

	m, _ := NewMesh(WithName("plane"), WithVertices(vertices), WithIndices(indices))
	return m
}
