package kitchen3d

// VertexStride is the number of floats per vertex: position then normal.
const VertexStride = 6

// DefaultNormal is used for face corners that carry no usable normal.
var DefaultNormal = V3(0, 1, 0)

// Mesh is an interleaved vertex buffer with its index buffer. Meshes are
// immutable once built and may be shared by several scene objects.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) Vector3 {
	o := i * VertexStride
	return V3(m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2])
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) Vector3 {
	o := i*VertexStride + 3
	return V3(m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2])
}

// TriangleCount returns the number of index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// MeshBuilder accumulates corners into a Mesh. Every corner becomes its own
// vertex; nothing is deduplicated, so the index buffer is simply 0..n-1.
type MeshBuilder struct {
	vertices []float32
	indices  []uint32
}

func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{
		vertices: make([]float32, 0, 64*VertexStride),
		indices:  make([]uint32, 0, 64),
	}
}

// AddCorner appends one vertex and its sequential index.
func (b *MeshBuilder) AddCorner(position, normal Vector3) {
	b.vertices = append(b.vertices,
		position.X, position.Y, position.Z,
		normal.X, normal.Y, normal.Z)
	b.indices = append(b.indices, uint32(len(b.indices)))
}

// AddPolygon fan-triangulates the polygon from its first corner, emitting
// len(positions)-2 triangles. normals must be the same length as positions.
func (b *MeshBuilder) AddPolygon(positions, normals []Vector3) {
	for i := 1; i+1 < len(positions); i++ {
		b.AddCorner(positions[0], normals[0])
		b.AddCorner(positions[i], normals[i])
		b.AddCorner(positions[i+1], normals[i+1])
	}
}

// AddFlatPolygon fan-triangulates a polygon using its face normal for
// every corner.
func (b *MeshBuilder) AddFlatPolygon(positions []Vector3) {
	if len(positions) < 3 {
		return
	}
	n := FaceNormal(positions[0], positions[1], positions[2])
	normals := make([]Vector3, len(positions))
	for i := range normals {
		normals[i] = n
	}
	b.AddPolygon(positions, normals)
}

// AddLine appends a two-vertex line segment, as used by the floor grid.
func (b *MeshBuilder) AddLine(from, to, normal Vector3) {
	b.AddCorner(from, normal)
	b.AddCorner(to, normal)
}

func (b *MeshBuilder) Build() *Mesh {
	return &Mesh{Vertices: b.vertices, Indices: b.indices}
}

// FaceNormal returns the unit normal of the triangle p1, p2, p3 under
// counter-clockwise winding, or DefaultNormal for a degenerate triangle.
func FaceNormal(p1, p2, p3 Vector3) Vector3 {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Length() <= epsilon {
		return DefaultNormal
	}
	return n.Normalize()
}
