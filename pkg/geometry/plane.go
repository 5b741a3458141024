package geometry

import (
	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents an infinite one-sided plane defined by a normal and a
// point on it. Only rays travelling against the normal can hit it.
type Plane struct {
	Normal core.Vec3 // Normal vector
	Point  core.Vec3 // A point on the plane
}

// NewPlane creates a new plane
func NewPlane(normal, point core.Vec3) *Plane {
	return &Plane{
		Normal: normal.Normalize(), // Ensure normal is normalized
		Point:  point,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (*Intersection, bool) {
	// Back-facing and parallel rays miss
	denominator := -p.Normal.Dot(ray.Direction)
	if !(denominator > 0) {
		return nil, false
	}

	numerator := -p.Normal.Dot(p.Point.Subtract(ray.Origin))
	t := numerator / denominator

	// A ray starting exactly on the plane is leaving it
	if !(t > 0) {
		return nil, false
	}

	return &Intersection{
		T:     t,
		Point: ray.At(t),
		Shape: p,
	}, true
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// BoundingBox returns the full box: a plane cannot be bounded
func (p *Plane) BoundingBox() core.AABB {
	return core.FullAABB()
}

// Transform maps the plane point and normal
func (p *Plane) Transform(m mgl64.Mat4) Shape {
	return NewPlane(
		TransformNormal(p.Normal, m),
		TransformPoint(p.Point, m),
	)
}
