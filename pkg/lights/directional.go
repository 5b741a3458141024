package lights

import "github.com/Arideno/graphics-engine/pkg/core"

// Directional is a light infinitely far away, shining along one direction
type Directional struct {
	direction core.Vec3
}

// NewDirectional creates a directional light. The direction points away
// from the light source and is normalized.
func NewDirectional(direction core.Vec3) *Directional {
	return &Directional{direction: direction.Normalize()}
}

func (d *Directional) Type() LightType {
	return LightTypeDirectional
}

func (d *Directional) Direction() core.Vec3 {
	return d.direction
}

// Intensity returns -direction·normal
func (d *Directional) Intensity(normal core.Vec3) float64 {
	return -d.direction.Dot(normal)
}
