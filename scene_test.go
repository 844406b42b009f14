package kitchen3d

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*Scene, *fakeClock) {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	clock := newFakeClock()
	return NewScene(catalog, clock), clock
}

func TestSceneAddAssignsIDsAndSelects(t *testing.T) {
	scene, _ := newTestScene(t)
	grid := NewGrid(4, 1)
	scene.AddScenery(grid)
	assert.Nil(t, scene.Selected(), "scenery is never selected")

	a, b := unitCube("a"), unitCube("b")
	scene.Add(a)
	scene.Add(b)

	assert.Equal(t, uint64(1), grid.ID)
	assert.Equal(t, uint64(2), a.ID)
	assert.Equal(t, uint64(3), b.ID)
	assert.Same(t, b, scene.Selected())
	assert.Equal(t, 3, scene.Len())
	assert.Equal(t, []*SceneObject{grid, a, b}, scene.Objects())
}

func TestSceneRemoveMovesSelection(t *testing.T) {
	scene, _ := newTestScene(t)
	grid := NewGrid(4, 1)
	scene.AddScenery(grid)
	a, b, c := unitCube("a"), unitCube("b"), unitCube("c")
	scene.Add(a)
	scene.Add(b)
	scene.Add(c)

	assert.Same(t, a, scene.Remove(b), "the preceding object takes over")
	assert.Same(t, c, scene.Remove(a), "scenery is skipped, so the first pickable object is chosen")
	assert.Nil(t, scene.Remove(c))
	assert.Equal(t, []*SceneObject{grid}, scene.Objects())

	// removing something that is not there changes nothing
	scene.Select(nil)
	assert.Nil(t, scene.Remove(a))
	assert.Equal(t, 1, scene.Len())
}

func TestSceneRemoveSelected(t *testing.T) {
	scene, _ := newTestScene(t)
	assert.Nil(t, scene.RemoveSelected())

	a, b := unitCube("a"), unitCube("b")
	scene.Add(a)
	scene.Add(b)
	scene.Select(a)

	assert.Same(t, b, scene.RemoveSelected())
	assert.Equal(t, []*SceneObject{b}, scene.Objects())
}

func TestSceneSelectIgnoresStrangers(t *testing.T) {
	scene, _ := newTestScene(t)
	a := unitCube("a")
	scene.Add(a)

	scene.Select(unitCube("stranger"))
	assert.Nil(t, scene.Selected())
	scene.Select(a)
	assert.Same(t, a, scene.Selected())
}

func TestSceneObjectsIsACopy(t *testing.T) {
	scene, _ := newTestScene(t)
	scene.Add(unitCube("a"))

	objs := scene.Objects()
	objs[0] = nil
	assert.NotNil(t, scene.Objects()[0])
}

func TestSceneCreate(t *testing.T) {
	scene, clock := newTestScene(t)
	scene.AddScenery(NewGrid(20, 1))

	counter, err := scene.Create(CreateRequest{
		Kind:       "Counter",
		Position:   V3(2, 0, 1),
		Appearance: AppearFallDown,
		Duration:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Counter 1", counter.Name)
	assert.Equal(t, "Counter", counter.Kind)
	assertVec3(t, V3(0.6, 0.5, 0.4), counter.Color, tolerance)
	assert.Equal(t, V3(2, 5, 1), counter.Position, "starts above its target")
	assert.Same(t, counter, scene.Selected())

	blue := V3(0, 0, 1)
	sink, err := scene.Create(CreateRequest{Kind: "Sink", Color: &blue})
	require.NoError(t, err)
	assert.Equal(t, "Sink 2", sink.Name)
	assert.Equal(t, blue, sink.Color)
	assert.False(t, sink.IsAnimating())

	assert.Equal(t, 1, scene.Tick(clock.Advance(500*time.Millisecond)))
	assert.Equal(t, 0, scene.Tick(clock.Advance(500*time.Millisecond)))
	assert.Equal(t, V3(2, 0, 1), counter.Position)
}

func TestSceneCreateUnknownKind(t *testing.T) {
	scene, _ := newTestScene(t)
	obj, err := scene.Create(CreateRequest{Kind: "Dishwasher"})
	assert.Nil(t, obj)
	assert.EqualError(t, err, `unknown object type "Dishwasher"`)
	assert.Equal(t, 0, scene.Len())

	bare := NewScene(nil, nil)
	_, err = bare.Create(CreateRequest{Kind: "Cube"})
	assert.Error(t, err)
	assert.IsType(t, SystemClock{}, bare.Clock())
}

func TestSceneImport(t *testing.T) {
	scene, clock := newTestScene(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "stool.obj")
	require.NoError(t, os.WriteFile(good, []byte(quadOBJ), 0o644))
	obj, err := scene.Import(good, AppearGrow, 1)
	require.NoError(t, err)
	assert.Equal(t, "stool.obj", obj.Name)
	assert.Equal(t, KindImported, obj.Kind)
	assert.Equal(t, V3Scalar(0.01), obj.Scale)
	assert.Same(t, obj, scene.Selected())

	bad := filepath.Join(dir, "broken.obj")
	require.NoError(t, os.WriteFile(bad, []byte("v 1 2\n"), 0o644))
	_, err = scene.Import(bad, AppearNone, 0)
	assert.Error(t, err)

	_, err = scene.Import(filepath.Join(dir, "missing.ply"), AppearNone, 0)
	assert.Error(t, err)

	assert.Equal(t, 1, scene.Len(), "failed imports add nothing")
	assert.Same(t, obj, scene.Selected())

	scene.Tick(clock.Advance(2 * time.Second))
	assert.Equal(t, V3(1, 1, 1), obj.Scale)
}

func TestScenePick(t *testing.T) {
	scene, _ := newTestScene(t)
	scene.AddScenery(NewGrid(20, 1))
	a := unitCube("a")
	a.Position = V3(0, 0, -3)
	b := unitCube("b")
	scene.Add(a)
	scene.Add(b)

	assert.Same(t, b, scene.Pick(Ray{V3(0, 0, 10), V3(0, 0, -1)}))
	assert.Nil(t, scene.Pick(Ray{V3(0, 10, 10), V3(0, 0, -1)}))

	var names []string
	scene.Each(func(obj *SceneObject) { names = append(names, obj.Name) })
	assert.Equal(t, []string{"Grid", "a", "b"}, names)
}

func TestSceneConcurrentAccess(t *testing.T) {
	scene, clock := newTestScene(t)
	scene.AddScenery(NewGrid(20, 1))
	ray := Ray{V3(0, 0, 10), V3(0, 0, -1)}
	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			obj, err := scene.Create(CreateRequest{Kind: "Cube", Appearance: AppearGrow, Duration: 0.5})
			if !assert.NoError(t, err) {
				return
			}
			scene.Pick(ray)
			if i%2 == 0 {
				scene.Remove(obj)
			}
		}
	}()

	r := &recordingRenderer{}
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			scene.Render(r, clock.Advance(10*time.Millisecond))
			scene.Tick(clock.Now())
		}
	}()
	wg.Wait()

	assert.Equal(t, 1+rounds/2, scene.Len())
	scene.Render(r, clock.Advance(time.Second))
	for _, obj := range scene.Objects() {
		_, uploaded := scene.Handle(obj)
		assert.True(t, uploaded, obj.Name)
	}
	assert.Equal(t, 0, scene.Tick(clock.Now()))
}
