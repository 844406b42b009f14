package kitchen3d

import (
	"github.com/chewxy/math32"
)

const (
	MinPitch    = -85.0
	MaxPitch    = 85.0
	MinDistance = 1.0
	MaxDistance = 50.0

	// orbitSensitivity converts pixels of pointer motion into degrees.
	orbitSensitivity = 0.5
	// zoomSensitivity converts wheel units into world units of distance.
	zoomSensitivity = 0.5
	// frameMargin scales a box diagonal into a viewing distance.
	frameMargin = 1.5
)

// WorldUp is the up direction used for every view matrix.
var WorldUp = V3(0, 1, 0)

// OrbitCamera orbits Target at Distance. Yaw, Pitch and FOV are in degrees.
type OrbitCamera struct {
	Yaw      float32
	Pitch    float32
	Distance float32
	Target   Vector3
	FOV      float32
	Near     float32
	Far      float32
}

// NewOrbitCamera returns a camera with the editor's start-up view.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Yaw:      45,
		Pitch:    30,
		Distance: 8,
		FOV:      60,
		Near:     0.1,
		Far:      100,
	}
}

// Position converts the spherical coordinates into a world position.
func (c *OrbitCamera) Position() Vector3 {
	pitch := degreesToRadians(c.Pitch)
	yaw := degreesToRadians(c.Yaw)

	x := c.Distance * math32.Cos(pitch) * math32.Sin(yaw)
	y := c.Distance * math32.Sin(pitch)
	z := c.Distance * math32.Cos(pitch) * math32.Cos(yaw)

	return V3(x, y, z).Add(c.Target)
}

// Orbit applies a pointer drag of (dx, dy) pixels.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.Yaw -= dx * orbitSensitivity
	c.Pitch = clamp(c.Pitch+dy*orbitSensitivity, MinPitch, MaxPitch)
}

// Zoom applies a scroll-wheel delta.
func (c *OrbitCamera) Zoom(wheelDelta float32) {
	c.Distance = clamp(c.Distance+wheelDelta*zoomSensitivity, MinDistance, MaxDistance)
}

// Frame points the camera at the centre of b and backs off far enough to
// keep the whole box in view.
func (c *OrbitCamera) Frame(b Bounds) {
	c.Target = b.Center()
	c.Distance = clamp(b.Size().Length()*frameMargin, MinDistance, MaxDistance)
}

func (c *OrbitCamera) View() Matrix4 {
	return LookAt(c.Position(), c.Target, WorldUp)
}

func (c *OrbitCamera) Projection(aspect float32) Matrix4 {
	return Perspective(degreesToRadians(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection·view.
func (c *OrbitCamera) ViewProjection(aspect float32) Matrix4 {
	return c.Projection(aspect).Mul(c.View())
}

func degreesToRadians(degrees float32) float32 {
	return degrees * (math32.Pi / 180)
}

func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
