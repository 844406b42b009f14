package kitchen3d

import "log/slog"

// DragThreshold is how far, in pixels along either axis, the pointer must
// travel from the press point before the gesture counts as a drag.
const DragThreshold = 5

// GestureKind is decided when the pointer goes down.
type GestureKind int

const (
	GestureNone GestureKind = iota
	// GestureObject moves the picked object over its ground plane.
	GestureObject
	// GestureOrbit rotates the camera.
	GestureOrbit
)

// DragController turns pointer events into selection, object dragging and
// camera orbiting.
type DragController struct {
	scene    *Scene
	camera   *OrbitCamera
	viewport Viewport

	kind     GestureKind
	dragging bool
	pressX   float32
	pressY   float32
	lastX    float32
	lastY    float32

	target     *SceneObject
	dragPlaneY float32
	offset     Vector3
	// anchored is false when the press ray missed the drag plane; the
	// object then stays where it is for the whole gesture.
	anchored bool
}

func NewDragController(scene *Scene, camera *OrbitCamera) *DragController {
	return &DragController{scene: scene, camera: camera}
}

// SetViewport records the drawing surface size used to build rays.
func (d *DragController) SetViewport(vp Viewport) {
	d.viewport = vp
}

func (d *DragController) Camera() *OrbitCamera {
	return d.camera
}

// Ray builds the pick ray under pixel (x, y).
func (d *DragController) Ray(x, y float32) Ray {
	return Unproject(d.camera, x, y, d.viewport)
}

// Press starts a gesture at (x, y). A hit selects the object and arms an
// object drag; a miss clears the selection and arms a camera orbit. It
// returns the picked object, or nil.
func (d *DragController) Press(x, y float32) *SceneObject {
	d.pressX, d.pressY = x, y
	d.lastX, d.lastY = x, y
	d.dragging = false
	d.target = nil
	d.anchored = false

	ray := d.Ray(x, y)
	obj := d.scene.Pick(ray)
	if obj == nil {
		d.scene.Select(nil)
		d.kind = GestureOrbit
		return nil
	}

	d.scene.Select(obj)
	d.kind = GestureObject
	d.target = obj
	d.dragPlaneY = obj.Position.Y

	hit, ok := GroundPlane(d.dragPlaneY).RayHit(ray)
	if !ok {
		logger.Debug("press ray parallel to drag plane", slog.Any("object", obj))
		return obj
	}
	d.offset = hit.Sub(obj.Position)
	d.anchored = true
	return obj
}

// Move handles pointer motion while the button is held.
func (d *DragController) Move(x, y float32) {
	if d.kind == GestureNone {
		return
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y

	if !d.dragging && (abs(x-d.pressX) > DragThreshold || abs(y-d.pressY) > DragThreshold) {
		d.dragging = true
	}
	if !d.dragging {
		return
	}

	switch d.kind {
	case GestureObject:
		d.moveTarget(x, y)
	case GestureOrbit:
		d.camera.Orbit(dx, dy)
	}
}

func (d *DragController) moveTarget(x, y float32) {
	if !d.anchored {
		return
	}
	hit, ok := GroundPlane(d.dragPlaneY).RayHit(d.Ray(x, y))
	if !ok {
		return
	}
	d.target.Position.X = hit.X - d.offset.X
	d.target.Position.Z = hit.Z - d.offset.Z
}

// Release ends the gesture. It reports whether the gesture was a click,
// that is, the pointer never crossed the drag threshold.
func (d *DragController) Release() bool {
	click := d.kind != GestureNone && !d.dragging
	d.kind = GestureNone
	d.dragging = false
	d.target = nil
	d.anchored = false
	return click
}

// Dragging reports whether the current gesture has crossed the threshold.
func (d *DragController) Dragging() bool {
	return d.dragging
}

// Gesture returns the kind of gesture armed by the last Press.
func (d *DragController) Gesture() GestureKind {
	return d.kind
}

// Scroll zooms the camera by a wheel delta.
func (d *DragController) Scroll(delta float32) {
	d.camera.Zoom(delta)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
