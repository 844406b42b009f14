package kitchen3d

import (
	"sync"
	"time"
)

const tolerance = 1e-4

// fakeClock is a Clock whose time only moves when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// boxObject returns an object whose local bounds are exactly [min, max].
func boxObject(name string, min, max Vector3) *SceneObject {
	b := NewMeshBuilder()
	b.AddCorner(min, DefaultNormal)
	b.AddCorner(max, DefaultNormal)
	b.AddCorner(max, DefaultNormal)
	return NewSceneObject(name, b.Build())
}

func unitCube(name string) *SceneObject {
	return boxObject(name, V3Scalar(-0.5), V3Scalar(0.5))
}
