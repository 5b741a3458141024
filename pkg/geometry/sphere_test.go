package geometry

import (
	"math"
	"testing"

	"github.com/Arideno/graphics-engine/pkg/core"
)

func TestSphere_Hit_FromAbove(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if !hit.Point.Equals(core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected point (0,1,0), got %v", hit.Point)
	}
	if hit.Shape != sphere {
		t.Errorf("Expected hit shape to be the sphere")
	}
	if !hit.Normal().Equals(core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal())
	}
}

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float64
	}{
		{"miss to the side", core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), false, 0},
		{"tangent counts as miss", core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1), false, 0},
		{"pointing away", core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1), false, 0},
		{"front hit", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), true, 2.0},
		{"origin inside uses far root", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), true, 1.0},
		{"unnormalized direction", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -10), true, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.T <= 0 {
				t.Errorf("Expected t > 0, got %f", hit.T)
			}
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5)
	box := sphere.BoundingBox()

	if !box.Min.Equals(core.NewVec3(0.5, 1.5, 2.5), 1e-12) || !box.Max.Equals(core.NewVec3(1.5, 2.5, 3.5), 1e-12) {
		t.Errorf("Unexpected bounding box %v - %v", box.Min, box.Max)
	}
}

func TestSphere_Transform(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)

	moved := sphere.Transform(Translate(core.NewVec3(1, 2, 3))).(*Sphere)
	if !moved.Center.Equals(core.NewVec3(1, 2, 2), 1e-12) {
		t.Errorf("Expected center (1,2,2), got %v", moved.Center)
	}
	if moved.Radius != 0.5 {
		t.Errorf("Expected radius to be kept, got %f", moved.Radius)
	}
	if !sphere.Center.Equals(core.NewVec3(0, 0, -1), 0) {
		t.Errorf("Transform must not modify the original sphere")
	}
}
