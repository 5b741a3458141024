package lights

import "github.com/Arideno/graphics-engine/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
)

// Light interface for light sources used by the shader
type Light interface {
	Type() LightType

	// Direction returns the unit direction the light travels in, pointing
	// away from the light source
	Direction() core.Vec3

	// Intensity returns the raw signed lighting term for a surface with the
	// given unit normal. Negative values mean the surface faces away.
	Intensity(normal core.Vec3) float64
}
