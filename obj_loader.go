package kitchen3d

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// objCorner is one face corner: zero-based position index and normal index,
// the latter -1 when absent.
type objCorner struct {
	v  int
	vn int
}

// ParseOBJMesh reads the v, vn and f records of a Wavefront OBJ stream.
// Faces may have any number of corners in the forms i, i/t, i/t/n and i//n;
// they are fan-triangulated from their first corner. Other records are
// ignored. Any malformed record fails the whole parse.
func ParseOBJMesh(reader io.Reader) (*Mesh, error) {
	var positions, normals []Vector3
	b := NewMeshBuilder()

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			p, err := parseVector3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVector3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			corners := make([]objCorner, 0, len(parts)-1)
			for _, tok := range parts[1:] {
				c, err := parseOBJCorner(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
				}
				if c.v < 0 || c.v >= len(positions) {
					return nil, fmt.Errorf("line %d: face: vertex index %d out of range (have %d)", lineNo, c.v+1, len(positions))
				}
				corners = append(corners, c)
			}
			pos := make([]Vector3, len(corners))
			nrm := make([]Vector3, len(corners))
			for i, c := range corners {
				pos[i] = positions[c.v]
				if c.vn >= 0 && c.vn < len(normals) {
					nrm[i] = normals[c.vn]
				} else {
					nrm[i] = DefaultNormal
				}
			}
			b.AddPolygon(pos, nrm)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}

	return b.Build(), nil
}

// parseOBJCorner parses "i", "i/t", "i/t/n" or "i//n". Indices are returned
// zero-based; a missing normal is -1.
func parseOBJCorner(tok string) (objCorner, error) {
	fields := strings.Split(tok, "/")
	vi, err := strconv.Atoi(fields[0])
	if err != nil {
		return objCorner{}, fmt.Errorf("could not parse vertex index '%s': %w", tok, err)
	}
	c := objCorner{v: vi - 1, vn: -1}
	if len(fields) > 2 && fields[2] != "" {
		ni, err := strconv.Atoi(fields[2])
		if err != nil {
			return objCorner{}, fmt.Errorf("could not parse normal index '%s': %w", tok, err)
		}
		c.vn = ni - 1
	}
	return c, nil
}

func parseVector3(fields []string) (Vector3, error) {
	if len(fields) < 3 {
		return Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var xyz [3]float32
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return Vector3{}, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		xyz[i] = float32(f)
	}
	return V3(xyz[0], xyz[1], xyz[2]), nil
}

// ParseOBJ parses an OBJ stream into a new object called name. On failure
// it returns nil and the error; no partial object is produced.
func ParseOBJ(reader io.Reader, name string) (*SceneObject, error) {
	mesh, err := ParseOBJMesh(reader)
	if err != nil {
		return nil, err
	}
	return NewSceneObject(name, mesh), nil
}

// LoadOBJFile loads an OBJ file as an imported object named after the file.
func LoadOBJFile(fileName string) (*SceneObject, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := ParseOBJ(file, filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	obj.Kind = KindImported

	logger.Debug("loaded obj", slog.String("path", fileName), slog.Int("triangles", len(obj.Indices)/3))
	return obj, nil
}
