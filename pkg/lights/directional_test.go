package lights

import (
	"math"
	"testing"

	"github.com/Arideno/graphics-engine/pkg/core"
)

func TestDirectional_NormalizesDirection(t *testing.T) {
	light := NewDirectional(core.NewVec3(-1, -1, -1))

	if math.Abs(light.Direction().Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", light.Direction().Length())
	}
	if light.Type() != LightTypeDirectional {
		t.Errorf("Expected directional light type, got %s", light.Type())
	}
}

func TestDirectional_Intensity(t *testing.T) {
	light := NewDirectional(core.NewVec3(0, -2, 0))

	tests := []struct {
		name     string
		normal   core.Vec3
		expected float64
	}{
		{"facing the light", core.NewVec3(0, 1, 0), 1},
		{"facing away", core.NewVec3(0, -1, 0), -1},
		{"perpendicular", core.NewVec3(1, 0, 0), 0},
		{"tilted", core.NewVec3(0, 1, 1).Normalize(), 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := light.Intensity(tt.normal)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected intensity %f, got %f", tt.expected, got)
			}
		})
	}
}
