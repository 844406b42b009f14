package kitchen3d

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix4 is a 4x4 transform stored column-major, element (row, col) at
// index col*4+row. The layout is identical to mgl32.Mat4, which does the
// heavy lifting.
//
//	m[0]  m[4]  m[8]  m[12]
//	m[1]  m[5]  m[9]  m[13]
//	m[2]  m[6]  m[10] m[14]
//	m[3]  m[7]  m[11] m[15]
type Matrix4 [16]float32

func Identity4() Matrix4 {
	return Matrix4(mgl32.Ident4())
}

func (m Matrix4) mgl() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// At returns the element in the given row and column.
func (m Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns m·other.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	return Matrix4(m.mgl().Mul4(other.mgl()))
}

// Translate post-multiplies m by a translation.
func (m Matrix4) Translate(v Vector3) Matrix4 {
	return Matrix4(m.mgl().Mul4(mgl32.Translate3D(v.X, v.Y, v.Z)))
}

// RotateX post-multiplies m by an elementary rotation about X.
func (m Matrix4) RotateX(angle float32) Matrix4 {
	return Matrix4(m.mgl().Mul4(mgl32.HomogRotate3DX(angle)))
}

// RotateY post-multiplies m by an elementary rotation about Y.
func (m Matrix4) RotateY(angle float32) Matrix4 {
	return Matrix4(m.mgl().Mul4(mgl32.HomogRotate3DY(angle)))
}

// RotateZ post-multiplies m by an elementary rotation about Z.
func (m Matrix4) RotateZ(angle float32) Matrix4 {
	return Matrix4(m.mgl().Mul4(mgl32.HomogRotate3DZ(angle)))
}

// Scale post-multiplies m by a per-axis scale.
func (m Matrix4) Scale(v Vector3) Matrix4 {
	return Matrix4(m.mgl().Mul4(mgl32.Scale3D(v.X, v.Y, v.Z)))
}

// Perspective builds a symmetric-frustum projection. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	return Matrix4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt builds a view matrix. The basis is derived as
// forward = normalize(eye-target), right = normalize(cross(up, forward)),
// camUp = cross(forward, right); degenerate inputs fall through the
// Normalize no-op rather than producing NaNs.
func LookAt(eye, target, up Vector3) Matrix4 {
	forward := eye.Sub(target).Normalize()
	right := up.Cross(forward).Normalize()
	camUp := forward.Cross(right)

	return Matrix4{
		right.X, camUp.X, forward.X, 0,
		right.Y, camUp.Y, forward.Y, 0,
		right.Z, camUp.Z, forward.Z, 0,
		-right.Dot(eye), -camUp.Dot(eye), -forward.Dot(eye), 1,
	}
}

// ModelMatrix composes T·Rx·Ry·Rz·S.
func ModelMatrix(position, rotation, scale Vector3) Matrix4 {
	return Identity4().
		Translate(position).
		RotateX(rotation.X).
		RotateY(rotation.Y).
		RotateZ(rotation.Z).
		Scale(scale)
}

// Determinant returns det(m).
func (m Matrix4) Determinant() float32 {
	return m.mgl().Det()
}

// Inverse returns the inverse of m. When |det| < 1e-5 the identity is
// returned together with ok == false.
func (m Matrix4) Inverse() (inv Matrix4, ok bool) {
	if math32.Abs(m.Determinant()) < epsilon {
		return Identity4(), false
	}
	return Matrix4(m.mgl().Inv()), true
}

// Invert returns the inverse of m, or the identity if m is (near) singular.
func (m Matrix4) Invert() Matrix4 {
	inv, _ := m.Inverse()
	return inv
}

// MulPoint transforms p as a point (w = 1) and applies the perspective divide.
func (m Matrix4) MulPoint(p Vector3) Vector3 {
	return V4(p.X, p.Y, p.Z, 1).MulMatrix(m).DivideByW().XYZ()
}

// ApproxEqual compares element-wise within tol.
func (m Matrix4) ApproxEqual(other Matrix4, tol float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

func (m Matrix4) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%8.3f", m.At(row, col)))
		}
	}
	return sb.String()
}
