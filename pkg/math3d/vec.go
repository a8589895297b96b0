// Package math3d provides the vector and matrix primitives used by the
// tinyrender pipeline.
package math3d

import "math"

// Number is the set of numeric types a vector can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float is the set of floating point types.
type Float interface {
	~float32 | ~float64
}

// Vec2 is a 2-component vector. It is used for both integer pixel
// coordinates and floating point texture coordinates.
type Vec2[T Number] struct {
	X, Y T
}

// Vec3 is a 3-component vector. It is used for world positions, normals,
// barycentric weights and screen points.
type Vec3[T Number] struct {
	X, Y, Z T
}

// Common instantiations.
type (
	Vec2i = Vec2[int]
	Vec2f = Vec2[float64]
	Vec3i = Vec3[int]
	Vec3f = Vec3[float64]
)

// V2 creates a new Vec2.
func V2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{x, y}
}

// V3 creates a new Vec3.
func V3[T Number](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// Add returns the vector sum a + b.
func (a Vec2[T]) Add(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2[T]) Sub(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{a.X * s, a.Y * s}
}

// Add returns the vector sum a + b.
func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3[T]) Dot(b Vec3[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3[T]) Cross(b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean norm of the vector.
func (a Vec3[T]) Len() float64 {
	x, y, z := float64(a.X), float64(a.Y), float64(a.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// XY drops the Z component.
func (a Vec3[T]) XY() Vec2[T] {
	return Vec2[T]{a.X, a.Y}
}

// Diff returns the component-wise difference a - b.
func Diff[T Number](a, b Vec3[T]) Vec3[T] {
	return a.Sub(b)
}

// Cross returns the cross product a × b.
func Cross[T Number](a, b Vec3[T]) Vec3[T] {
	return a.Cross(b)
}

// Dot returns the dot product a · b.
func Dot[T Number](a, b Vec3[T]) T {
	return a.Dot(b)
}

// Normalize divides v by its Euclidean norm. A zero vector has no direction;
// the division is not guarded and yields non-finite components.
func Normalize[T Float](v Vec3[T]) Vec3[T] {
	l := T(v.Len())
	return Vec3[T]{v.X / l, v.Y / l, v.Z / l}
}

// Min returns the component-wise minimum.
func Min[T Number](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func Max[T Number](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}
