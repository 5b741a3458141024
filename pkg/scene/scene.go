package scene

import (
	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
	"github.com/Arideno/graphics-engine/pkg/lights"
	"github.com/Arideno/graphics-engine/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Scene contains all the elements needed for rendering. It is built once
// and not mutated while a render is running.
type Scene struct {
	Camera *renderer.Camera
	Shapes []geometry.Shape // Objects in the scene
	Lights []lights.Light   // Lights in the scene
	BVH    *geometry.BVH    // Acceleration structure; nil until BuildBVH
}

// New creates an empty scene viewed through the given camera
func New(camera *renderer.Camera) *Scene {
	return &Scene{
		Camera: camera,
		Shapes: make([]geometry.Shape, 0),
		Lights: make([]lights.Light, 0),
	}
}

// AddShape appends shapes to the scene
func (s *Scene) AddShape(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddMesh appends every triangle of a mesh to the scene, placed by m
func (s *Scene) AddMesh(triangles []*geometry.Triangle, m mgl64.Mat4) {
	mesh := make([]geometry.Shape, len(triangles))
	for i, triangle := range triangles {
		mesh[i] = triangle
	}
	s.Shapes = append(s.Shapes, geometry.TransformShapes(mesh, m)...)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// BuildBVH creates the acceleration structure over the current shapes
func (s *Scene) BuildBVH(config geometry.BVHConfig) *geometry.BVH {
	s.BVH = geometry.NewBVH(s.Shapes, config)
	return s.BVH
}

// IntersectLinear tests every shape and returns the nearest hit. It is the
// reference result the BVH must agree with.
func (s *Scene) IntersectLinear(ray core.Ray) (*geometry.Intersection, bool) {
	return geometry.NearestHit(s.Shapes, ray)
}

// Intersect returns the nearest hit, using the BVH once it has been built
func (s *Scene) Intersect(ray core.Ray) (*geometry.Intersection, bool) {
	if s.BVH != nil {
		return s.BVH.Hit(ray)
	}
	return s.IntersectLinear(ray)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetLights returns the scene lights
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
