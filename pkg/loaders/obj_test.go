package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Arideno/graphics-engine/pkg/core"
)

const quadOBJ = `# unit quad in the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
o quad
f 1 2 3
f 1/1/1 3/1/1 4/1/1
`

func TestParseOBJ(t *testing.T) {
	triangles, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(triangles) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(triangles))
	}

	first := triangles[0]
	if !first.V0.Equals(core.NewVec3(0, 0, 0), 0) || !first.V1.Equals(core.NewVec3(1, 0, 0), 0) || !first.V2.Equals(core.NewVec3(1, 1, 0), 0) {
		t.Errorf("Unexpected vertices for first triangle: %v %v %v", first.V0, first.V1, first.V2)
	}
	if _, ok := first.VertexNormals(); ok {
		t.Errorf("Expected first triangle without vertex normals")
	}

	normals, ok := triangles[1].VertexNormals()
	if !ok {
		t.Fatal("Expected second triangle to carry vertex normals")
	}
	for i, n := range normals {
		if !n.Equals(core.NewVec3(0, 0, 1), 1e-12) {
			t.Errorf("Normal %d: expected (0,0,1), got %v", i, n)
		}
	}
}

func TestParseOBJ_FaceForms(t *testing.T) {
	header := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nvn 0 0 1\nvn 0 0 -1\n"

	tests := []struct {
		name          string
		face          string
		triangles     int
		expectNormals bool
	}{
		{"plain indices", "f 1 2 3", 1, false},
		{"texture only", "f 1/1 2/1 3/1", 1, false},
		{"normals without texture", "f 1//1 2//1 3//1", 1, true},
		{"negative indices", "f -4 -3 -2", 1, false},
		{"negative normal indices", "f 1//-2 2//-2 3//-1", 1, true},
		{"partial normals", "f 1//1 2 3//1", 1, false},
		{"quad is fanned", "f 1 2 4 3", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangles, err := ParseOBJ(strings.NewReader(header + tt.face + "\n"))
			if err != nil {
				t.Fatalf("ParseOBJ failed: %v", err)
			}
			if len(triangles) != tt.triangles {
				t.Fatalf("Expected %d triangles, got %d", tt.triangles, len(triangles))
			}
			if _, ok := triangles[0].VertexNormals(); ok != tt.expectNormals {
				t.Errorf("Expected normals=%t, got %t", tt.expectNormals, ok)
			}
		})
	}
}

func TestParseOBJ_NegativeIndexResolvesFromEnd(t *testing.T) {
	triangles, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nv 5 5 5\nf -4 -3 -2\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if !triangles[0].V2.Equals(core.NewVec3(0, 1, 0), 0) {
		t.Errorf("Expected -2 to select the third vertex, got %v", triangles[0].V2)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"short vertex", "v 1 2\n", "line 1"},
		{"bad float", "v 1 2 x\n", "line 1"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", "line 2"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "line 4"},
		{"too few face args", "v 0 0 0\nv 1 0 0\nf 1 2\n", "line 3"},
		{"missing vertex index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf /1 2 3\n", "line 4"},
		{"bad normal index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", "line 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error to mention %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	triangles, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(triangles) != 2 {
		t.Errorf("Expected 2 triangles, got %d", len(triangles))
	}

	if _, err := LoadOBJ(filepath.Join(dir, "missing.obj")); err == nil {
		t.Errorf("Expected error for unreadable file")
	}
}
