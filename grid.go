package kitchen3d

// GridColor is the floor grid's blue-grey.
var GridColor = V3(0.25, 0.28, 0.35)

// NewGrid builds a square floor grid of size cells on each side, spacing
// apart, centred on the origin at y = 0. It is a line list and is not
// pickable.
func NewGrid(size int, spacing float32) *SceneObject {
	half := float32(size) * spacing / 2
	up := V3(0, 1, 0)

	b := NewMeshBuilder()
	for i := -size / 2; i <= size/2; i++ {
		p := float32(i) * spacing
		b.AddLine(V3(-half, 0, p), V3(half, 0, p), up)
		b.AddLine(V3(p, 0, -half), V3(p, 0, half), up)
	}

	grid := NewSceneObject("Grid", b.Build())
	grid.Kind = "Grid"
	grid.Lines = true
	grid.Pickable = false
	grid.Color = GridColor
	return grid
}
