package model

// NewCubeMesh builds a unit cube scaled by size, centered at the origin,
// with per-face normals and full-face texture coordinates.
//
// Parameters:
//   - size: edge length of the cube
//
// Returns:
//   - MeshData: 24 vertices and 36 indices
func NewCubeMesh(size float32) MeshData {
	h := size / 2
	faces := [6]struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	mesh := MeshData{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for i, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: c,
				Normal:   f.normal,
				UV:       uvs[i],
			})
		}
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3)
	}
	return mesh
}

// NewPlaneMesh builds a flat square in the XZ plane centered at the origin,
// facing up.
//
// Parameters:
//   - size: edge length of the plane
//
// Returns:
//   - MeshData: 4 vertices and 6 indices
func NewPlaneMesh(size float32) MeshData {
	h := size / 2
	return MeshData{
		Vertices: []Vertex{
			{Position: [3]float32{-h, 0, h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, 1}},
			{Position: [3]float32{h, 0, h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{1, 1}},
			{Position: [3]float32{h, 0, -h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{1, 0}},
			{Position: [3]float32{-h, 0, -h}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
