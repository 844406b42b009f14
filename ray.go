package kitchen3d

import "log/slog"

// Ray is a half-line in world space. Direction is normalised unless the
// ray was built from a degenerate view-projection.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) Vector3 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns width/height, treating each side as at least one pixel.
func (v Viewport) Aspect() float32 {
	w, h := v.size()
	return w / h
}

func (v Viewport) size() (float32, float32) {
	w, h := v.Width, v.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return float32(w), float32(h)
}

// Unproject builds the world-space ray passing through pixel (x, y).
//
// The near and far clip-plane points under the pixel are pushed through
// inverse(projection·view). If that matrix is singular the inverse falls
// back to the identity and the resulting ray is meaningless, but still
// returned.
func Unproject(cam *OrbitCamera, x, y float32, vp Viewport) Ray {
	w, h := vp.size()
	ndcX := 2*x/w - 1
	ndcY := 1 - 2*y/h

	invVP, ok := cam.ViewProjection(w / h).Inverse()
	if !ok {
		logger.Debug("singular view-projection, ray is degenerate",
			slog.Float64("yaw", float64(cam.Yaw)),
			slog.Float64("pitch", float64(cam.Pitch)),
			slog.Float64("fov", float64(cam.FOV)))
	}

	near := V4(ndcX, ndcY, -1, 1).MulMatrix(invVP).DivideByW().XYZ()
	far := V4(ndcX, ndcY, 1, 1).MulMatrix(invVP).DivideByW().XYZ()

	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}
