package kitchen3d

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ShapeCooldown is the minimum gap between two accepted shape events.
const ShapeCooldown = 3 * time.Second

type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeTriangle
	ShapeCircle
	ShapeRectangle
)

func (s ShapeKind) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	}
	return "unknown"
}

type ShapeColor int

const (
	ColorUnknown ShapeColor = iota
	ColorRed
	ColorGreen
	ColorBlue
)

func (c ShapeColor) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	}
	return "unknown"
}

// ShapeEvent is a coloured shape reported by a vision source.
type ShapeEvent struct {
	Shape ShapeKind
	Color ShapeColor
}

func (e ShapeEvent) String() string {
	return e.Color.String() + " " + e.Shape.String()
}

// ParseShapeEvent reads "<color> <shape>", for example "red triangle".
func ParseShapeEvent(s string) (ShapeEvent, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return ShapeEvent{}, fmt.Errorf("shape event %q: want \"<color> <shape>\"", s)
	}
	var ev ShapeEvent
	for c := ColorRed; c <= ColorBlue; c++ {
		if fields[0] == c.String() {
			ev.Color = c
		}
	}
	for k := ShapeTriangle; k <= ShapeRectangle; k++ {
		if fields[1] == k.String() {
			ev.Shape = k
		}
	}
	if ev.Color == ColorUnknown || ev.Shape == ShapeUnknown {
		return ShapeEvent{}, fmt.Errorf("shape event %q: unknown colour or shape", s)
	}
	return ev, nil
}

// ObjectKind maps the event to a catalog type. Only red triangles, green
// circles and blue rectangles map to anything.
func (e ShapeEvent) ObjectKind() (string, bool) {
	switch {
	case e.Color == ColorRed && e.Shape == ShapeTriangle:
		return "Pyramid", true
	case e.Color == ColorGreen && e.Shape == ShapeCircle:
		return "Sphere", true
	case e.Color == ColorBlue && e.Shape == ShapeRectangle:
		return "Cube", true
	}
	return "", false
}

// ShapeGate turns shape events into creation requests, dropping unmapped
// events and anything arriving within ShapeCooldown of the last accepted one.
type ShapeGate struct {
	mu         sync.Mutex
	cooldown   time.Duration
	last       time.Time
	appearance AppearanceMode
	duration   float32
}

// NewShapeGate returns a gate whose requests use the given entry animation.
func NewShapeGate(appearance AppearanceMode, duration float32) *ShapeGate {
	return &ShapeGate{cooldown: ShapeCooldown, appearance: appearance, duration: duration}
}

// Accept returns the creation request for ev, or false if the event is
// unmapped or still inside the cooldown window.
func (g *ShapeGate) Accept(ev ShapeEvent, now time.Time) (CreateRequest, bool) {
	kind, ok := ev.ObjectKind()
	if !ok {
		return CreateRequest{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.last.IsZero() && now.Sub(g.last) <= g.cooldown {
		logger.Debug("shape event in cooldown", slog.String("event", ev.String()))
		return CreateRequest{}, false
	}
	g.last = now

	return CreateRequest{
		Kind:       kind,
		Appearance: g.appearance,
		Duration:   g.duration,
	}, true
}
