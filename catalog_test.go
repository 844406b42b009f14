package kitchen3d

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Fridge", "Microwave", "Oven", "Counter", "Counter Inner Corner",
		"Counter Outer Corner", "Sink", "Pyramid", "Sphere", "Cube",
	}, c.Kinds())
	require.NoError(t, c.Preload(context.Background()))

	fridge, ok := c.Entry("Fridge")
	require.True(t, ok)
	assert.Equal(t, "fridge.obj", fridge.File)
	assert.InDelta(t, 0.95, fridge.Color[1], tolerance)

	for _, kind := range c.Kinds() {
		obj, err := c.New(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, obj.Kind)
		assert.NotEmpty(t, obj.Indices, kind)
		assert.Zero(t, len(obj.Indices)%3, kind)
	}
}

func TestCatalogSharesMeshes(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	a, err := c.New("Counter")
	require.NoError(t, err)
	b, err := c.New("Counter")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, &a.Vertices[0], &b.Vertices[0])

	bounds := a.LocalBounds()
	assertVec3(t, V3(-0.5, 0, -0.3), bounds.Min, tolerance)
	assertVec3(t, V3(0.5, 0.9, 0.3), bounds.Max, tolerance)
}

func TestCatalogUnknownKind(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	_, ok := c.Entry("Toaster")
	assert.False(t, ok)
	_, err = c.New("Toaster")
	assert.EqualError(t, err, `unknown object type "Toaster"`)
}

func TestLoadCatalogFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"cat.yaml": {Data: []byte(`types:
  - key: Stool
    file: stool.obj
    color: [1, 0, 0]
  - key: Ball
    name: Beach Ball
    shape: sphere
    color: [0, 0, 1]
  - key: Ghost
    file: ghost.obj
    color: [1, 1, 1]
`)},
		"meshes/stool.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	}

	c, err := LoadCatalog(fsys, "cat.yaml", "meshes")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 3)

	stool, err := c.New("Stool")
	require.NoError(t, err)
	assert.Equal(t, "Stool", stool.Name, "name defaults to the key")
	assert.Equal(t, V3(1, 0, 0), stool.Color)

	ball, err := c.New("Ball")
	require.NoError(t, err)
	assert.Equal(t, "Beach Ball", ball.Name)

	_, err = c.New("Ghost")
	assert.ErrorContains(t, err, "could not open mesh meshes/ghost.obj")
	assert.Error(t, c.Preload(context.Background()))
}

func TestLoadCatalogErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want string
	}{
		{"missing key", "types:\n  - shape: cube\n", "catalog entry 0 has no key"},
		{"no mesh", "types:\n  - key: Box\n", `catalog entry "Box" needs a file or a shape`},
		{"unknown shape", "types:\n  - key: Box\n    shape: torus\n", `unknown shape "torus"`},
		{"duplicate", "types:\n  - key: Box\n    shape: cube\n  - key: Box\n    shape: sphere\n", `duplicate catalog entry "Box"`},
		{"bad yaml", "types: [", "error parsing catalog"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"c.yaml": {Data: []byte(tc.yaml)}}
			c, err := LoadCatalog(fsys, "c.yaml", ".")
			assert.Nil(t, c)
			assert.ErrorContains(t, err, tc.want)
		})
	}

	_, err := LoadCatalog(fstest.MapFS{}, "missing.yaml", ".")
	assert.ErrorContains(t, err, "could not read catalog")
}

func TestCatalogPreloadCancelled(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Preload(ctx), context.Canceled)
}
