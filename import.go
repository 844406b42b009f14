package kitchen3d

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ImportFormats lists the file extensions ImportMeshFile understands.
var ImportFormats = []string{".obj", ".ply", ".dxf"}

// ImportMeshFile loads a mesh file, picking the parser by extension.
func ImportMeshFile(path string) (*SceneObject, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJFile(path)
	case ".ply":
		return LoadPLYFile(path)
	case ".dxf":
		return LoadDXFFile(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

// IsImportable reports whether path has an extension ImportMeshFile accepts.
func IsImportable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range ImportFormats {
		if f == ext {
			return true
		}
	}
	return false
}
