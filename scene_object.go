package kitchen3d

import (
	"fmt"
	"log/slog"
)

// KindImported is the Kind of objects loaded from a user-supplied file.
const KindImported = "Imported"

// SceneObject is one placeable piece of furniture. Its mesh and local bounds
// are fixed at construction; the transform, colour and animation change over
// its lifetime.
type SceneObject struct {
	ID   uint64
	Name string
	Kind string

	Vertices []float32
	Indices  []uint32
	// Lines marks a line-list mesh (the floor grid) rather than triangles.
	Lines bool

	Position Vector3
	// Rotation holds Euler angles in radians, applied X then Y then Z.
	Rotation Vector3
	Scale    Vector3
	Color    Vector3

	// Pickable is false for scenery such as the grid.
	Pickable bool

	localBounds  Bounds
	anim         *Animating
	handle       MeshHandle
	uploaded     bool
	uploadFailed bool
}

// NewSceneObject wraps a mesh in an object at the origin with unit scale.
func NewSceneObject(name string, mesh *Mesh) *SceneObject {
	return &SceneObject{
		Name:        name,
		Vertices:    mesh.Vertices,
		Indices:     mesh.Indices,
		Scale:       V3(1, 1, 1),
		Color:       V3(0.7, 0.7, 0.7),
		Pickable:    true,
		localBounds: BoundsFromVertices(mesh.Vertices),
	}
}

// LocalBounds returns the mesh-space bounding box computed at construction.
func (o *SceneObject) LocalBounds() Bounds {
	return o.localBounds
}

// WorldBounds places the local bounds at the object's position and scale.
// Rotation is ignored.
func (o *SceneObject) WorldBounds() Bounds {
	return o.localBounds.Place(o.Position, o.Scale)
}

// PickBounds is WorldBounds inflated by PickPadding.
func (o *SceneObject) PickBounds() Bounds {
	return o.WorldBounds().Expand(PickPadding)
}

// ModelMatrix returns T·Rx·Ry·Rz·S for the current transform.
func (o *SceneObject) ModelMatrix() Matrix4 {
	return ModelMatrix(o.Position, o.Rotation, o.Scale)
}

func (o *SceneObject) String() string {
	return fmt.Sprintf("%s#%d(%s at %v)", o.Name, o.ID, o.Kind, o.Position)
}

// LogValue implements slog.LogValuer.
func (o *SceneObject) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", o.ID),
		slog.String("name", o.Name),
		slog.String("kind", o.Kind),
	)
}
