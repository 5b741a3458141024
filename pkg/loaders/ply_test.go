package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Arideno/graphics-engine/pkg/core"
)

// createTestPLY creates a unit square made of two triangles
func createTestPLY(t *testing.T, filename string, order binary.ByteOrder, includeNormals bool, includeColors bool) {
	var buf bytes.Buffer

	// Write PLY header
	buf.WriteString("ply\n")
	if order == binary.BigEndian {
		buf.WriteString("format binary_big_endian 1.0\n")
	} else {
		buf.WriteString("format binary_little_endian 1.0\n")
	}
	buf.WriteString("comment generated for tests\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	// Write vertex data (4 vertices forming a square)
	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 2.0, 255, 0, 0},
		{1.0, 0.0, 0.0, 0.0, 0.0, 2.0, 0, 255, 0},
		{1.0, 1.0, 0.0, 0.0, 0.0, 2.0, 0, 0, 255},
		{0.0, 1.0, 0.0, 0.0, 0.0, 2.0, 255, 255, 0},
	}

	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)

		if includeNormals {
			binary.Write(&buf, order, v.nx)
			binary.Write(&buf, order, v.ny)
			binary.Write(&buf, order, v.nz)
		}

		if includeColors {
			binary.Write(&buf, order, v.r)
			binary.Write(&buf, order, v.g)
			binary.Write(&buf, order, v.b)
		}
	}

	// Write face data (2 triangles)
	faces := []struct {
		count      uint8
		v1, v2, v3 int32
	}{
		{3, 0, 1, 2},
		{3, 0, 2, 3},
	}

	for _, f := range faces {
		binary.Write(&buf, order, f.count)
		binary.Write(&buf, order, f.v1)
		binary.Write(&buf, order, f.v2)
		binary.Write(&buf, order, f.v3)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name           string
		order          binary.ByteOrder
		includeNormals bool
		includeColors  bool
	}{
		{"little endian", binary.LittleEndian, false, false},
		{"big endian", binary.BigEndian, false, false},
		{"with normals", binary.LittleEndian, true, false},
		{"with skipped colors", binary.LittleEndian, false, true},
		{"with normals and colors", binary.BigEndian, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, testFile, tt.order, tt.includeNormals, tt.includeColors)

			triangles, err := LoadPLY(testFile)
			if err != nil {
				t.Fatalf("Failed to load PLY: %v", err)
			}
			if len(triangles) != 2 {
				t.Fatalf("Expected 2 triangles, got %d", len(triangles))
			}

			second := triangles[1]
			if !second.V0.Equals(core.NewVec3(0, 0, 0), 0) ||
				!second.V1.Equals(core.NewVec3(1, 1, 0), 0) ||
				!second.V2.Equals(core.NewVec3(0, 1, 0), 0) {
				t.Errorf("Unexpected vertices for second triangle: %v %v %v", second.V0, second.V1, second.V2)
			}

			normals, ok := second.VertexNormals()
			if ok != tt.includeNormals {
				t.Fatalf("Expected vertex normals = %v, got %v", tt.includeNormals, ok)
			}
			if ok && !normals[0].Equals(core.NewVec3(0, 0, 1), 1e-12) {
				t.Errorf("Expected normalized vertex normal (0, 0, 1), got %v", normals[0])
			}
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	input := `ply
format ascii 1.0
element vertex 5
property double x
property double y
property double z
element face 1
property list uchar uint vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0
1 0 0
1 1 0
0.5 1.5 0
0 1 0
5 0 1 2 3 4
0 1
`

	triangles, err := ParsePLY(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	// A pentagon is split into a fan of three triangles
	if len(triangles) != 3 {
		t.Fatalf("Expected 3 triangles, got %d", len(triangles))
	}
	last := triangles[2]
	if !last.V0.Equals(core.NewVec3(0, 0, 0), 0) || !last.V1.Equals(core.NewVec3(0.5, 1.5, 0), 0) || !last.V2.Equals(core.NewVec3(0, 1, 0), 0) {
		t.Errorf("Unexpected vertices for last triangle: %v %v %v", last.V0, last.V1, last.V2)
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"truncated header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"property before element", "ply\nformat ascii 1.0\nproperty float x\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n"},
		{"index out of bounds", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n3 0 1 2\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n2 0 1\n"},
		{"huge list length", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1e18 0 1 2\n"},
		{"list length above type range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n300 0 0 0\n"},
		{"fractional index", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1.5 2\n"},
		{"float list length type", "ply\nformat ascii 1.0\nelement face 1\nproperty list float int vertex_indices\nend_header\n3 0 1 2\n"},
		{"missing indices", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty uchar flags\nend_header\n0 0 0\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestParsePLY_BinaryListLengthLimit(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n")
	buf.WriteString("element face 1\nproperty list uint int vertex_indices\nend_header\n")
	binary.Write(&buf, binary.LittleEndian, uint32(4000000000))

	if _, err := ParsePLY(&buf); err == nil || !strings.Contains(err.Error(), "invalid list length") {
		t.Errorf("Expected invalid list length error, got %v", err)
	}
}

func TestLoadPLY_MissingFile(t *testing.T) {
	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for missing file")
	}
}
