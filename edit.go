package kitchen3d

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Slider ranges of the edit dialog.
const (
	EditPositionLimit float32 = 10
	EditMaxRotationY  float32 = 360
)

// editSnapshot holds the fields an edit session can change. Field names
// match SceneObject so copier can move values both ways.
type editSnapshot struct {
	Name     string
	Position Vector3
	Rotation Vector3
	Color    Vector3
}

// EditSession applies absolute slider values to one object and can restore
// the values it had when the session began. There is a single revert level.
type EditSession struct {
	obj      *SceneObject
	snapshot editSnapshot
	done     bool
}

// BeginEdit snapshots obj's name, position, rotation and colour.
func BeginEdit(obj *SceneObject) (*EditSession, error) {
	s := &EditSession{obj: obj}
	if err := copier.Copy(&s.snapshot, obj); err != nil {
		return nil, fmt.Errorf("could not snapshot %s: %w", obj.Name, err)
	}
	return s, nil
}

func (s *EditSession) Object() *SceneObject {
	return s.obj
}

func (s *EditSession) SetName(name string) {
	s.obj.Name = name
}

// SetPosition sets the position, clamping each axis to the slider range.
func (s *EditSession) SetPosition(p Vector3) {
	s.obj.Position = V3(
		clamp(p.X, -EditPositionLimit, EditPositionLimit),
		clamp(p.Y, -EditPositionLimit, EditPositionLimit),
		clamp(p.Z, -EditPositionLimit, EditPositionLimit),
	)
}

// SetRotationY sets the yaw in degrees within [0, 360].
func (s *EditSession) SetRotationY(degrees float32) {
	s.obj.Rotation.Y = degreesToRadians(clamp(degrees, 0, EditMaxRotationY))
}

// SetColor sets the colour, clamping channels to [0, 1].
func (s *EditSession) SetColor(c Vector3) {
	s.obj.Color = V3(clamp(c.X, 0, 1), clamp(c.Y, 0, 1), clamp(c.Z, 0, 1))
}

// Revert restores the snapshot and ends the session.
func (s *EditSession) Revert() error {
	if s.done {
		return fmt.Errorf("edit session for %s already finished", s.obj.Name)
	}
	if err := copier.Copy(s.obj, &s.snapshot); err != nil {
		return fmt.Errorf("could not restore %s: %w", s.snapshot.Name, err)
	}
	s.done = true
	return nil
}

// Commit keeps the current values and ends the session.
func (s *EditSession) Commit() {
	s.done = true
}

func (s *EditSession) Done() bool {
	return s.done
}
