package kitchen3d

import "github.com/chewxy/math32"

// Plane is Ax + By + Cz + D = 0.
type Plane struct {
	A, B, C, D float32
}

// NewPlane builds the plane with the given normal passing through point.
func NewPlane(normal, point Vector3) Plane {
	p := Plane{A: normal.X, B: normal.Y, C: normal.Z}
	p.D = -(p.A*point.X + p.B*point.Y + p.C*point.Z)
	return p
}

// GroundPlane returns the horizontal plane y = height.
func GroundPlane(height float32) Plane {
	return NewPlane(WorldUp, V3(0, height, 0))
}

func (p Plane) Normal() Vector3 {
	return V3(p.A, p.B, p.C)
}

// PointOnPlane returns the signed (unnormalised) distance of pt from the plane.
func (p Plane) PointOnPlane(pt Vector3) float32 {
	return p.A*pt.X + p.B*pt.Y + p.C*pt.Z + p.D
}

// IntersectRay returns the ray parameter at which r meets the plane. A ray
// parallel to the plane yields ±Inf or NaN, which callers reject.
func (p Plane) IntersectRay(r Ray) float32 {
	return -p.PointOnPlane(r.Origin) / p.Normal().Dot(r.Direction)
}

// RayHit returns the intersection point and whether it is finite.
func (p Plane) RayHit(r Ray) (Vector3, bool) {
	t := p.IntersectRay(r)
	if math32.IsInf(t, 0) || math32.IsNaN(t) {
		return Vector3{}, false
	}
	return r.At(t), true
}
