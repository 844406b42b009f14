package kitchen3d

import (
	"fmt"
	"strings"
	"time"
)

// AppearanceMode selects how a newly placed object arrives in the scene.
type AppearanceMode int

const (
	AppearNone AppearanceMode = iota
	AppearFallDown
	AppearRiseUp
	AppearGrow
)

const (
	// appearanceOffset is how far above or below its target an object
	// starts for FallDown and RiseUp.
	appearanceOffset = 5
	// growStartScale is the uniform start scale for Grow.
	growStartScale = 0.01
)

var appearanceModeNames = map[AppearanceMode]string{
	AppearNone:     "none",
	AppearFallDown: "fall_down",
	AppearRiseUp:   "rise_up",
	AppearGrow:     "grow",
}

func (m AppearanceMode) String() string {
	if s, ok := appearanceModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AppearanceMode(%d)", int(m))
}

// ParseAppearanceMode accepts the names produced by String, case-insensitively,
// with '-', '_' and spaces treated alike.
func ParseAppearanceMode(s string) (AppearanceMode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if norm == "falldown" {
		norm = "fall_down"
	}
	if norm == "riseup" {
		norm = "rise_up"
	}
	for m, name := range appearanceModeNames {
		if name == norm {
			return m, nil
		}
	}
	return AppearNone, fmt.Errorf("unknown appearance mode %q", s)
}

func (m AppearanceMode) MarshalText() ([]byte, error) {
	if _, ok := appearanceModeNames[m]; !ok {
		return nil, fmt.Errorf("invalid appearance mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *AppearanceMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAppearanceMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Animating is the state of a running appearance animation. A nil
// *Animating means the object is idle.
type Animating struct {
	Mode      AppearanceMode
	Start     time.Time
	Duration  time.Duration
	FromPos   Vector3
	ToPos     Vector3
	FromScale Vector3
	ToScale   Vector3
}

// Animation returns the running animation, or nil when idle.
func (o *SceneObject) Animation() *Animating {
	return o.anim
}

// IsAnimating reports whether an entry animation is running.
func (o *SceneObject) IsAnimating() bool {
	return o.anim != nil
}

// StartAnimation snaps the object to the mode's start pose and begins
// animating back to its current pose. AppearNone or a non-positive duration
// leaves the object idle and untouched. Any running animation is replaced.
func (o *SceneObject) StartAnimation(mode AppearanceMode, durationSec float32, now time.Time) {
	if mode == AppearNone || durationSec <= 0 {
		o.anim = nil
		return
	}

	a := &Animating{
		Mode:      mode,
		Start:     now,
		Duration:  time.Duration(float64(durationSec) * float64(time.Second)),
		FromPos:   o.Position,
		ToPos:     o.Position,
		FromScale: o.Scale,
		ToScale:   o.Scale,
	}

	switch mode {
	case AppearFallDown:
		a.FromPos.Y += appearanceOffset
	case AppearRiseUp:
		a.FromPos.Y -= appearanceOffset
	case AppearGrow:
		a.FromScale = V3Scalar(growStartScale)
	default:
		o.anim = nil
		return
	}

	o.Position = a.FromPos
	o.Scale = a.FromScale
	o.anim = a
}

// UpdateAnimation advances the animation to now. It returns true while the
// animation is still running and false once the object is idle, at which
// point it sits exactly on its target pose.
func (o *SceneObject) UpdateAnimation(now time.Time) bool {
	a := o.anim
	if a == nil {
		return false
	}

	elapsed := float32(now.Sub(a.Start).Milliseconds()) / 1000
	progress := elapsed / float32(a.Duration.Seconds())
	if progress > 1 {
		progress = 1
	}
	eased := easeOutQuad(progress)

	switch a.Mode {
	case AppearFallDown, AppearRiseUp:
		o.Position = a.FromPos.Lerp(a.ToPos, eased)
	case AppearGrow:
		o.Scale = a.FromScale.Lerp(a.ToScale, eased)
	}

	if progress >= 1 {
		o.Position = a.ToPos
		o.Scale = a.ToScale
		o.anim = nil
		return false
	}
	return true
}

// easeOutQuad maps linear progress p in [0, 1] to 1-(1-p)².
func easeOutQuad(p float32) float32 {
	inv := 1 - p
	return 1 - inv*inv
}
