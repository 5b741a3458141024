package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
)

// objReader accumulates the vertex and normal lists of a Wavefront OBJ
// stream and emits one triangle per face
type objReader struct {
	vertexList []core.Vec3
	normalList []core.Vec3
	triangles  []*geometry.Triangle
}

// LoadOBJ loads triangles from a Wavefront OBJ file
func LoadOBJ(filename string) ([]*geometry.Triangle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	triangles, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return triangles, nil
}

// ParseOBJ reads "v", "vn" and "f" records. Comments and all other record
// kinds are ignored. Faces with more than three vertices are split into a
// triangle fan. A triangle gets per-vertex normals only when all three of
// its face entries reference one.
func ParseOBJ(r io.Reader) ([]*geometry.Triangle, error) {
	reader := &objReader{}

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			reader.vertexList = append(reader.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			reader.normalList = append(reader.normalList, v)
		case "f":
			if err := reader.parseFace(lineTokens); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	return reader.triangles, nil
}

// faceVertex is one resolved entry of a face record
type faceVertex struct {
	position  core.Vec3
	normal    core.Vec3
	hasNormal bool
}

// Parse face definition. Each vertex argument has one of the forms
// v, v/vt, v//vn or v/vt/vn. Texture coordinates are not used.
func (r *objReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	vertices := make([]faceVertex, 0, len(lineTokens)-1)
	for arg, token := range lineTokens[1:] {
		vTokens := strings.Split(token, "/")
		if len(vTokens) > 3 {
			return fmt.Errorf("face argument %d has too many indices", arg)
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %w", arg, err)
		}
		fv := faceVertex{position: r.vertexList[vOffset]}

		if len(vTokens) == 3 && vTokens[2] != "" {
			nOffset, err := selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %w", arg, err)
			}
			fv.normal = r.normalList[nOffset]
			fv.hasNormal = true
		}

		vertices = append(vertices, fv)
	}

	for i := 1; i+1 < len(vertices); i++ {
		r.triangles = append(r.triangles, newFaceTriangle(vertices[0], vertices[i], vertices[i+1]))
	}
	return nil
}

func newFaceTriangle(a, b, c faceVertex) *geometry.Triangle {
	if a.hasNormal && b.hasNormal && c.hasNormal {
		return geometry.NewTriangleWithNormals(a.position, b.position, c.position, a.normal, b.normal, c.normal)
	}
	return geometry.NewTriangle(a.position, b.position, c.position)
}

// selectFaceCoordIndex converts a 1-based OBJ index, or a negative index
// counting back from the end of the list, into a slice offset
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordListLen + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return offset, nil
}

// parseVec3 parses the three coordinates following a record keyword
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[tokIdx-1] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
