package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the box that covers nothing. Merging any box with it
// yields the other box unchanged.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// FullAABB returns the box that covers all of space. Unbounded shapes such
// as planes report it as their bounding box.
func FullAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(-inf, -inf, -inf),
		Max: NewVec3(inf, inf, inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// IsFull reports whether this is the full sentinel box
func (aabb AABB) IsFull() bool {
	return aabb == FullAABB()
}

// IsEmpty reports whether this is the empty sentinel box
func (aabb AABB) IsEmpty() bool {
	return aabb == EmptyAABB()
}

// Merge returns the smallest AABB that bounds both this AABB and another
func (aabb AABB) Merge(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Size().Multiply(0.5))
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties are not broken symmetrically: X needs to be strictly longer than both
// other axes, otherwise Y wins over Z only when strictly longer.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// Hit tests if a ray intersects with this AABB using the slab method.
// Zero direction components are not special-cased: IEEE division turns them
// into infinite slab bounds. The box is accepted when the overlapping
// interval ends at or after the ray origin.
func (aabb AABB) Hit(ray Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		t1 := (aabb.Min.Axis(axis) - origin) / direction
		t2 := (aabb.Max.Axis(axis) - origin) / direction

		// Ensure t1 <= t2 (swap if needed)
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// Disjoint intervals
		if tMin > t2 || t1 > tMax {
			return false
		}

		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}

	return tMax >= 0
}
