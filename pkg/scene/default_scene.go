package scene

import (
	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
	"github.com/Arideno/graphics-engine/pkg/lights"
	"github.com/Arideno/graphics-engine/pkg/renderer"
)

// NewDefaultScene creates the reference scene: a sphere resting on a ground
// plane, lit from the upper left, seen from the origin looking down -Z
func NewDefaultScene(width, height int) *Scene {
	camera := renderer.NewCamera(core.NewVec3(0, 0, 0), 90, float64(width)/float64(height), height)

	s := New(camera)
	s.AddShape(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
		geometry.NewPlane(core.NewVec3(0, 1, 0), core.NewVec3(0, -0.5, 0)),
	)
	s.AddLight(lights.NewDirectional(core.NewVec3(-1, -1, -1)))

	return s
}
