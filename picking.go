package kitchen3d

// PickPadding inflates every object's bounds on each axis so thin objects
// are easier to hit.
const PickPadding float32 = 0.2

// PickObject tests r against one object's padded world bounds and returns
// the entry distance or NoHit.
func PickObject(r Ray, obj *SceneObject) float32 {
	if !obj.Pickable {
		return NoHit
	}
	return obj.PickBounds().IntersectRay(r)
}

// PickNearest returns the object with the smallest strictly positive hit
// distance along r, and that distance. Ties go to the earlier object.
// It returns nil, NoHit when nothing is hit.
func PickNearest(r Ray, objects []*SceneObject) (*SceneObject, float32) {
	var closest *SceneObject
	closestT := NoHit
	for _, obj := range objects {
		t := PickObject(r, obj)
		// also rejects NaN from a degenerate ray
		if !(t > 0) {
			continue
		}
		if closest == nil || t < closestT {
			closest = obj
			closestT = t
		}
	}
	return closest, closestT
}
