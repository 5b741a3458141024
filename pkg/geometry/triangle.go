package geometry

import (
	"math"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// triangleEpsilon rejects near-parallel rays and hits too close to the origin
const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices, with
// optional per-vertex normals for smooth shading.
type Triangle struct {
	V0, V1, V2 core.Vec3   // The three vertices
	normals    []core.Vec3 // Per-vertex normals; nil for flat shading
	bbox       core.AABB   // Cached bounding box
}

// NewTriangle creates a new flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:   v0,
		V1:   v1,
		V2:   v2,
		bbox: core.NewAABBFromPoints(v0, v1, v2),
	}
}

// NewTriangleWithNormals creates a triangle whose shading normal is
// interpolated from the given per-vertex normals
func NewTriangleWithNormals(v0, v1, v2, n0, n1, n2 core.Vec3) *Triangle {
	t := NewTriangle(v0, v1, v2)
	t.normals = []core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// VertexNormals returns the per-vertex normals, if the triangle has them
func (t *Triangle) VertexNormals() ([3]core.Vec3, bool) {
	if len(t.normals) != 3 {
		return [3]core.Vec3{}, false
	}
	return [3]core.Vec3{t.normals[0], t.normals[1], t.normals[2]}, true
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray) (*Intersection, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// If determinant is near zero, ray lies in plane of triangle
	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < triangleEpsilon {
		return nil, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := s.Dot(p) * invDet
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := edge2.Dot(q) * invDet
	if !(tParam > triangleEpsilon) {
		return nil, false
	}

	return &Intersection{
		T:     tParam,
		Point: ray.At(tParam),
		Shape: t,
	}, true
}

// NormalAt returns the shading normal at a point on the triangle. With
// vertex normals it interpolates them using barycentric weights taken from
// the areas of the sub-triangles opposite each vertex; otherwise it returns
// the flat face normal.
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	face := t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0))

	normals, ok := t.VertexNormals()
	if !ok {
		return face.Normalize()
	}

	p0 := t.V0.Subtract(point)
	p1 := t.V1.Subtract(point)
	p2 := t.V2.Subtract(point)

	// Signed sub-triangle areas relative to the full triangle
	area := face.Dot(face)
	w0 := p1.Cross(p2).Dot(face) / area
	w1 := p2.Cross(p0).Dot(face) / area
	w2 := 1.0 - w0 - w1

	return normals[0].Multiply(w0).
		Add(normals[1].Multiply(w1)).
		Add(normals[2].Multiply(w2)).
		Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Transform maps the vertices as points and the vertex normals as normals
func (t *Triangle) Transform(m mgl64.Mat4) Shape {
	v0 := TransformPoint(t.V0, m)
	v1 := TransformPoint(t.V1, m)
	v2 := TransformPoint(t.V2, m)

	normals, ok := t.VertexNormals()
	if !ok {
		return NewTriangle(v0, v1, v2)
	}
	return NewTriangleWithNormals(
		v0, v1, v2,
		TransformNormal(normals[0], m),
		TransformNormal(normals[1], m),
		TransformNormal(normals[2], m),
	)
}
