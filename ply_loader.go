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

// PLYModel is the result of reading an ASCII PLY file: a flat-shaded mesh
// and, when the file carries colour properties, their mean as an RGB colour
// in [0, 1].
type PLYModel struct {
	Mesh     *Mesh
	Color    Vector3
	HasColor bool
}

// ParsePLY reads an ASCII PLY stream with "element vertex" and "element
// face" sections. Vertex or face colours, if declared, are averaged into a
// single object colour.
func ParsePLY(reader io.Reader) (*PLYModel, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor bool
	var currentElement string
	headerDone := false

	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", parts[1])
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid %s count %q", parts[1], parts[2])
			}
			currentElement = parts[1]
			switch parts[1] {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				switch currentElement {
				case "vertex":
					hasVertexColor = true
				case "face":
					hasFaceColor = true
				}
			}
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading PLY header: %w", err)
		}
		return nil, fmt.Errorf("missing end_header")
	}

	positions := make([]Vector3, 0, vertexCount)
	var colorSum Vector3
	colorSamples := 0

	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		p, err := parseVector3(parts)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		positions = append(positions, p)

		if hasVertexColor && !hasFaceColor {
			if len(parts) < 6 {
				return nil, fmt.Errorf("invalid vertex-color data on vertex %d", i)
			}
			c, err := parseRGB(parts[3:6])
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			colorSum = colorSum.Add(c)
			colorSamples++
		}
	}

	b := NewMeshBuilder()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on face %d", i)
		}

		face := make([]Vector3, numFaceVerts)
		for j := range face {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("face %d: invalid vertex index %q", i, parts[j+1])
			}
			face[j] = positions[idx]
		}
		b.AddFlatPolygon(face)

		if hasFaceColor {
			if len(parts) != numFaceVerts+1+3 {
				return nil, fmt.Errorf("invalid face-color data on face %d", i)
			}
			c, err := parseRGB(parts[numFaceVerts+1:])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			colorSum = colorSum.Add(c)
			colorSamples++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	model := &PLYModel{Mesh: b.Build()}
	if colorSamples > 0 {
		model.Color = colorSum.MulScalar(1 / float32(colorSamples))
		model.HasColor = true
	}
	return model, nil
}

// parseRGB reads three 0-255 channel values into a colour in [0, 1].
func parseRGB(fields []string) (Vector3, error) {
	var rgb [3]float32
	for i := range rgb {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return Vector3{}, fmt.Errorf("could not parse colour channel '%s': %w", fields[i], err)
		}
		rgb[i] = float32(v) / 255
	}
	return V3(rgb[0], rgb[1], rgb[2]), nil
}

// LoadPLYFile loads an ASCII PLY file as an imported object.
func LoadPLYFile(fileName string) (*SceneObject, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	model, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}

	obj := NewSceneObject(filepath.Base(fileName), model.Mesh)
	obj.Kind = KindImported
	if model.HasColor {
		obj.Color = model.Color
	}
	return obj, nil
}
