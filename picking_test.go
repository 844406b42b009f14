package kitchen3d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestPickNearest(t *testing.T) {
	down := Ray{Origin: V3(0, 0, 20), Direction: V3(0, 0, -1)}

	near := unitCube("near")
	near.Position = V3(0, 0, 14.3)
	far := unitCube("far")
	far.Position = V3(0, 0, 9.3)

	t.Run("closest wins regardless of order", func(t *testing.T) {
		obj, dist := PickNearest(down, []*SceneObject{far, near})
		assert.Same(t, near, obj)
		assert.InDelta(t, 5, dist, 1e-3)
	})

	t.Run("ties go to the earlier object", func(t *testing.T) {
		twin := unitCube("twin")
		twin.Position = near.Position
		obj, _ := PickNearest(down, []*SceneObject{twin, near})
		assert.Same(t, twin, obj)
	})

	t.Run("objects behind the origin are ignored", func(t *testing.T) {
		behind := unitCube("behind")
		behind.Position = V3(0, 0, 25)
		obj, dist := PickNearest(down, []*SceneObject{behind})
		assert.Nil(t, obj)
		assert.Equal(t, NoHit, dist)
	})

	t.Run("origin inside an object is not a hit", func(t *testing.T) {
		around := unitCube("around")
		around.Position = down.Origin
		obj, _ := PickNearest(down, []*SceneObject{around, far})
		assert.Same(t, far, obj)
	})

	t.Run("scenery is skipped", func(t *testing.T) {
		floor := unitCube("floor")
		floor.Position = near.Position
		floor.Pickable = false
		assert.Equal(t, NoHit, PickObject(down, floor))
		obj, _ := PickNearest(down, []*SceneObject{floor, far})
		assert.Same(t, far, obj)
	})

	t.Run("empty list", func(t *testing.T) {
		obj, dist := PickNearest(down, nil)
		assert.Nil(t, obj)
		assert.Equal(t, NoHit, dist)
	})
}

func TestPickIgnoresRotation(t *testing.T) {
	// a counter-sized box, turned a quarter turn so its mesh now spans
	// z in [-0.5, 0.5] but its pick bounds still span x in [-0.5, 0.5]
	counter := boxObject("counter", V3(-0.5, 0, -0.3), V3(0.5, 0.9, 0.3))
	counter.Rotation = V3(0, math32.Pi/2, 0)

	r := Ray{Origin: V3(0.6, 10, 0), Direction: V3(0, -1, 0)}
	assert.InDelta(t, 8.9, PickObject(r, counter), 1e-3)

	scaled := boxObject("scaled", V3(-0.5, 0, -0.3), V3(0.5, 0.9, 0.3))
	scaled.Scale = V3(1, 2, 1)
	assert.InDelta(t, 8.0, PickObject(r, scaled), 1e-3)
}
