package kitchen3d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vector4 is a homogeneous coordinate.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

func V4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// MulMatrix transforms v by m (m·v with m stored column-major).
func (v Vector4) MulMatrix(m Matrix4) Vector4 {
	r := mgl32.Mat4(m).Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, v.W})
	return Vector4{r[0], r[1], r[2], r[3]}
}

// DivideByW performs the perspective divide. When |W| is 1e-5 or less the
// vector is returned unmodified.
func (v Vector4) DivideByW() Vector4 {
	if math32.Abs(v.W) <= epsilon {
		return v
	}
	inv := 1 / v.W
	return Vector4{v.X * inv, v.Y * inv, v.Z * inv, 1}
}

// XYZ drops the w component.
func (v Vector4) XYZ() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", v.X, v.Y, v.Z, v.W)
}
