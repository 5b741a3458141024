package geometry

import (
	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// TransformPoint applies m to a position (w = 1)
func TransformPoint(p core.Vec3, m mgl64.Mat4) core.Vec3 {
	return fromMgl(mgl64.TransformCoordinate(toMgl(p), m))
}

// TransformVector applies m to a direction (w = 0); translation is ignored
func TransformVector(v core.Vec3, m mgl64.Mat4) core.Vec3 {
	return fromMgl(mgl64.TransformNormal(toMgl(v), m))
}

// TransformNormal applies the inverse transpose of m to a surface normal so
// that it stays perpendicular under non-uniform scaling. The result is not
// normalized.
func TransformNormal(n core.Vec3, m mgl64.Mat4) core.Vec3 {
	return TransformVector(n, m.Inv().Transpose())
}

// TransformShapes returns transformed copies of every shape
func TransformShapes(shapes []Shape, m mgl64.Mat4) []Shape {
	out := make([]Shape, len(shapes))
	for i, shape := range shapes {
		out[i] = shape.Transform(m)
	}
	return out
}

// Translate returns a translation matrix
func Translate(offset core.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(offset.X, offset.Y, offset.Z)
}

// Scale returns a non-uniform scaling matrix
func Scale(factors core.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(factors.X, factors.Y, factors.Z)
}

// RotateX returns a rotation around the X axis by the given angle in degrees
func RotateX(degrees float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(degrees))
}

// RotateY returns a rotation around the Y axis by the given angle in degrees
func RotateY(degrees float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(mgl64.DegToRad(degrees))
}

// RotateZ returns a rotation around the Z axis by the given angle in degrees
func RotateZ(degrees float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees))
}

// Compose returns the matrix that applies the given transforms in order,
// first to last.
func Compose(transforms ...mgl64.Mat4) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, t := range transforms {
		m = t.Mul4(m)
	}
	return m
}
