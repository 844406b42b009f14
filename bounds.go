package kitchen3d

import "github.com/chewxy/math32"

// NoHit is returned by ray tests that miss.
const NoHit float32 = -1

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vector3
	Max Vector3
}

// BoundsFromVertices scans an interleaved position+normal buffer (stride
// VertexStride) for the extents of its positions. An empty buffer gives
// inverted infinite bounds which no ray can hit.
func BoundsFromVertices(vertices []float32) Bounds {
	b := Bounds{
		Min: V3Scalar(math32.MaxFloat32),
		Max: V3Scalar(-math32.MaxFloat32),
	}
	for i := 0; i+2 < len(vertices); i += VertexStride {
		x, y, z := vertices[i], vertices[i+1], vertices[i+2]
		b.Min.X = math32.Min(b.Min.X, x)
		b.Min.Y = math32.Min(b.Min.Y, y)
		b.Min.Z = math32.Min(b.Min.Z, z)
		b.Max.X = math32.Max(b.Max.X, x)
		b.Max.Y = math32.Max(b.Max.Y, y)
		b.Max.Z = math32.Max(b.Max.Z, z)
	}
	return b
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Place scales and then translates the box. Rotation is not applied;
// picking works on unrotated bounds.
func (b Bounds) Place(position, scale Vector3) Bounds {
	return Bounds{
		Min: b.Min.Mul(scale).Add(position),
		Max: b.Max.Mul(scale).Add(position),
	}
}

// Expand grows the box by pad on every side.
func (b Bounds) Expand(pad float32) Bounds {
	p := V3Scalar(pad)
	return Bounds{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// Contains reports whether pt lies inside or on the box.
func (b Bounds) Contains(pt Vector3) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// IntersectRay runs the slab test and returns the entry parameter, or
// NoHit when the per-axis intervals are disjoint. Zero direction components
// produce infinities that fall out of the comparisons as IEEE semantics
// dictate. A ray starting inside the box returns a negative entry value.
func (b Bounds) IntersectRay(r Ray) float32 {
	tmin := (b.Min.X - r.Origin.X) / r.Direction.X
	tmax := (b.Max.X - r.Origin.X) / r.Direction.X
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}

	tymin := (b.Min.Y - r.Origin.Y) / r.Direction.Y
	tymax := (b.Max.Y - r.Origin.Y) / r.Direction.Y
	if tymin > tymax {
		tymin, tymax = tymax, tymin
	}

	if tmin > tymax || tymin > tmax {
		return NoHit
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin := (b.Min.Z - r.Origin.Z) / r.Direction.Z
	tzmax := (b.Max.Z - r.Origin.Z) / r.Direction.Z
	if tzmin > tzmax {
		tzmin, tzmax = tzmax, tzmin
	}

	if tmin > tzmax || tzmin > tmax {
		return NoHit
	}
	if tzmin > tmin {
		tmin = tzmin
	}

	return tmin
}
