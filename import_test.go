package kitchen3d

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubePLY = `ply
format ascii 1.0
comment unit cube
element vertex 8
property float x
property float y
property float z
element face 6
property list uchar int vertex_indices
property uchar red
property uchar green
property uchar blue
end_header
0 0 0
1 0 0
1 1 0
0 1 0
0 0 1
1 0 1
1 1 1
0 1 1
4 0 3 2 1 255 0 0
4 4 5 6 7 255 0 0
4 0 1 5 4 0 0 255
4 2 3 7 6 0 0 255
4 1 2 6 5 0 255 0
4 3 0 4 7 0 255 0
`

func TestParsePLY(t *testing.T) {
	model, err := ParsePLY(strings.NewReader(cubePLY))
	require.NoError(t, err)

	assert.Len(t, model.Mesh.Indices, 36)
	require.True(t, model.HasColor)
	third := float32(1) / 3
	assertVec3(t, V3(third, third, third), model.Color, tolerance)

	// flat shading: the first face lies on z = 0 and winds towards -z
	assertVec3(t, V3(0, 0, -1), model.Mesh.Normal(0), tolerance)
}

func TestParsePLYVertexColor(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 0 0 255 0 0
0 1 0 0 0 0
3 0 1 2
`
	model, err := ParsePLY(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, model.Mesh.Indices, 3)
	assertVec3(t, V3(2.0/3, 0, 0), model.Color, tolerance)
}

func TestParsePLYErrors(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n"
	verts := "0 0 0\n1 0 0\n0 1 0\n"

	testCases := []struct {
		name string
		src  string
		want string
	}{
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n", "unsupported PLY format"},
		{"no end_header", "ply\nformat ascii 1.0\n", "missing end_header"},
		{"bad count", "ply\nelement vertex many\nend_header\n", "invalid vertex count"},
		{"truncated vertices", header + "0 0 0\n", "unexpected end of file while reading vertices"},
		{"truncated faces", header + verts, "unexpected end of file while reading faces"},
		{"index out of range", header + verts + "3 0 1 7\n", "invalid vertex index"},
		{"too few corners", header + verts + "2 0 1\n", "invalid face data"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model, err := ParsePLY(strings.NewReader(tc.src))
			assert.Nil(t, model)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

// dxfFace writes one 3DFACE entity in the layout ParseDXF expects: three
// header lines, then value and group-code lines for each coordinate.
func dxfFace(corners ...Vector3) string {
	var sb strings.Builder
	sb.WriteString("3DFACE\n8\n0\n10\n")
	for _, c := range corners {
		for _, v := range []float32{c.X, c.Y, c.Z} {
			sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
			sb.WriteString("\n20\n")
		}
	}
	return sb.String()
}

func TestParseDXF(t *testing.T) {
	src := "0\nSECTION\n2\nENTITIES\n0\n" +
		dxfFace(V3(0, 0, 0), V3(1, 0, 0), V3(1, 0, 1), V3(0, 0, 1)) +
		"0\n" +
		dxfFace(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0), V3(0, 1, 0)) +
		"0\nENDSEC\n0\nEOF\n"

	mesh, err := ParseDXF(strings.NewReader(src))
	require.NoError(t, err)
	// a quad and a triangle whose last corner repeats
	assert.Len(t, mesh.Indices, 9)
	assert.Equal(t, V3(0, 1, 0), mesh.Position(8))
}

func TestParseDXFErrors(t *testing.T) {
	_, err := ParseDXF(strings.NewReader("0\nSECTION\n0\nEOF\n"))
	assert.ErrorContains(t, err, "no 3DFACE entities found")

	_, err = ParseDXF(strings.NewReader("3DFACE\n8\n"))
	assert.ErrorContains(t, err, "3DFACE header")

	_, err = ParseDXF(strings.NewReader("3DFACE\n8\n0\n10\n1\n20\n"))
	assert.ErrorContains(t, err, "Y coordinate for vertex 0")

	_, err = ParseDXF(strings.NewReader("3DFACE\n8\n0\n10\nabc\n20\n"))
	assert.ErrorContains(t, err, "could not parse float value 'abc'")
}

func TestImportMeshFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	obj, err := ImportMeshFile(write("cube.PLY", cubePLY))
	require.NoError(t, err)
	assert.Equal(t, "cube.PLY", obj.Name)
	assert.Equal(t, KindImported, obj.Kind)
	third := float32(1) / 3
	assertVec3(t, V3(third, third, third), obj.Color, tolerance)

	obj, err = ImportMeshFile(write("floor.dxf", dxfFace(V3(0, 0, 0), V3(1, 0, 0), V3(1, 0, 1), V3(0, 0, 1))))
	require.NoError(t, err)
	assert.Len(t, obj.Indices, 6)

	obj, err = ImportMeshFile(write("quad.obj", quadOBJ))
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", obj.Name)

	_, err = ImportMeshFile(write("notes.txt", "hello"))
	assert.ErrorContains(t, err, `unsupported mesh format ".txt"`)
}

func TestIsImportable(t *testing.T) {
	assert.True(t, IsImportable("/tmp/a.obj"))
	assert.True(t, IsImportable("B.Ply"))
	assert.True(t, IsImportable("c.dxf"))
	assert.False(t, IsImportable("d.stl"))
	assert.False(t, IsImportable("obj"))
}
