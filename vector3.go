package kitchen3d

import (
	"fmt"

	"github.com/chewxy/math32"
)

// epsilon guards normalisation, perspective division and matrix inversion.
const epsilon = 1e-5

// Vector3 is a point or a free direction, depending on context.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

func V3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// V3Scalar returns a vector with all components set to s.
func V3Scalar(s float32) Vector3 {
	return Vector3{X: s, Y: s, Z: s}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Mul multiplies componentwise.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns v scaled to unit length. Vectors of length 1e-5 or
// less are returned unchanged.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length <= epsilon {
		return v
	}
	inv := 1 / length
	return Vector3{v.X * inv, v.Y * inv, v.Z * inv}
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector3) DistanceTo(o Vector3) float32 {
	return v.Sub(o).Length()
}

// Lerp interpolates linearly from v towards o.
func (v Vector3) Lerp(o Vector3, t float32) Vector3 {
	return Vector3{
		lerp(v.X, o.X, t),
		lerp(v.Y, o.Y, t),
		lerp(v.Z, o.Z, t),
	}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func lerp(start, end, t float32) float32 {
	return start + t*(end-start)
}
