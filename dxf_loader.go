package kitchen3d

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseDXF reads the 3DFACE entities of a simplified ASCII DXF stream. Each
// entity is expected to be laid out as the entity name, three header lines,
// then four corners of alternating group-code and value lines for X, Y and
// Z. A face whose fourth corner repeats the third is a triangle.
func ParseDXF(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)

	readFloatLine := func() (float32, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 32)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return float32(val), nil
	}
	// skipLine consumes the group code that precedes the next value.
	skipLine := func() {
		scanner.Scan()
	}

	b := NewMeshBuilder()
	faces := 0
	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		corners := make([]Vector3, 0, 4)
		for c := 0; c < 4; c++ {
			x, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading X coordinate for vertex %d: %w", c, err)
			}
			skipLine()

			y, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading Y coordinate for vertex %d: %w", c, err)
			}
			skipLine()

			z, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading Z coordinate for vertex %d: %w", c, err)
			}
			skipLine()

			corners = append(corners, V3(x, y, z))
		}
		if corners[3] == corners[2] {
			corners = corners[:3]
		}

		b.AddFlatPolygon(corners)
		faces++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if faces == 0 {
		return nil, fmt.Errorf("no 3DFACE entities found")
	}

	return b.Build(), nil
}

// LoadDXFFile loads a DXF file as an imported object.
func LoadDXFFile(fileName string) (*SceneObject, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	mesh, err := ParseDXF(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}

	obj := NewSceneObject(filepath.Base(fileName), mesh)
	obj.Kind = KindImported
	return obj, nil
}
