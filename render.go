package kitchen3d

// MeshHandle identifies a mesh a Renderer has taken ownership of.
type MeshHandle uint64

// Renderer is the graphics backend. Upload is called once per object, before
// its first Draw; the object's vertex and index buffers do not change after
// that. Draw receives the model matrix and flat colour for one frame.
type Renderer interface {
	Upload(obj *SceneObject) (MeshHandle, error)
	Draw(handle MeshHandle, model Matrix4, color Vector3, selected bool)
}

// Releaser is implemented by renderers that free mesh resources when an
// object leaves the scene.
type Releaser interface {
	Release(handle MeshHandle)
}
