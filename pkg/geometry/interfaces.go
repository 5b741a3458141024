package geometry

import (
	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Shape interface for objects that can be hit by rays.
// The set of shapes is closed: Sphere, Plane and Triangle. Shapes are
// immutable once created; Transform returns a new, transformed copy.
type Shape interface {
	// Hit returns the intersection with the smallest positive t, if any.
	Hit(ray core.Ray) (*Intersection, bool)

	// NormalAt returns the surface normal at a point on the shape.
	NormalAt(point core.Vec3) core.Vec3

	// BoundingBox returns the shape's bounds. Unbounded shapes return
	// core.FullAABB().
	BoundingBox() core.AABB

	// Transform applies a 4x4 transform and returns the new shape.
	Transform(m mgl64.Mat4) Shape
}
