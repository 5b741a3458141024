package geometry

import "github.com/Arideno/graphics-engine/pkg/core"

// Intersection contains information about a ray-shape intersection.
// It is a transient query result and is never stored in the scene.
type Intersection struct {
	T     float64   // Distance along the ray, always > 0
	Point core.Vec3 // World-space hit position
	Shape Shape     // The shape that was hit
}

// Normal returns the surface normal of the hit shape at the hit point
func (i *Intersection) Normal() core.Vec3 {
	return i.Shape.NormalAt(i.Point)
}

// NearestHit tests every shape in order and returns the hit with the
// smallest t. Only a strictly nearer hit replaces the current best, so on
// equal t the shape stored first wins.
func NearestHit(shapes []Shape, ray core.Ray) (*Intersection, bool) {
	var closest *Intersection

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray); isHit {
			if closest == nil || hit.T < closest.T {
				closest = hit
			}
		}
	}

	return closest, closest != nil
}
