package geometry

import (
	"math"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (*Intersection, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	// Tangent rays count as a miss
	discriminant := halfB*halfB - a*c
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if !(root > 0) {
		root = (-halfB + sqrtD) / a
		if !(root > 0) {
			return nil, false
		}
	}

	return &Intersection{
		T:     root,
		Point: ray.At(root),
		Shape: s,
	}, true
}

// NormalAt returns the outward normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Transform moves the sphere center. The radius is kept as is.
func (s *Sphere) Transform(m mgl64.Mat4) Shape {
	return NewSphere(TransformPoint(s.Center, m), s.Radius)
}
