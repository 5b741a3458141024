package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Arideno/graphics-engine/pkg/geometry"
)

// ErrUnsupportedMeshFormat is returned for mesh files with an unknown extension
var ErrUnsupportedMeshFormat = errors.New("unsupported mesh format")

// LoadMesh loads triangles from an OBJ or PLY file, chosen by extension
func LoadMesh(filename string) ([]*geometry.Triangle, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename)
	case ".ply":
		return LoadPLY(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMeshFormat, filename)
	}
}
