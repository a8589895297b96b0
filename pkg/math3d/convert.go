package math3d

import "math"

// Conversions between integer pixel space and floating point world space are
// always explicit; there is no implicit truncation anywhere in the pipeline.

// ToFloat widens an integer (or float32) vector to float64.
func ToFloat[T Number](v Vec3[T]) Vec3f {
	return Vec3f{float64(v.X), float64(v.Y), float64(v.Z)}
}

// ToFloat2 widens a Vec2 to float64.
func ToFloat2[T Number](v Vec2[T]) Vec2f {
	return Vec2f{float64(v.X), float64(v.Y)}
}

// Trunc converts to integers by truncating toward zero.
func Trunc[T Float](v Vec3[T]) Vec3i {
	return Vec3i{int(v.X), int(v.Y), int(v.Z)}
}

// Trunc2 converts a Vec2 to integers by truncating toward zero.
func Trunc2[T Float](v Vec2[T]) Vec2i {
	return Vec2i{int(v.X), int(v.Y)}
}

// Round converts to integers by rounding half away from zero.
func Round[T Float](v Vec3[T]) Vec3i {
	return Vec3i{
		int(math.Round(float64(v.X))),
		int(math.Round(float64(v.Y))),
		int(math.Round(float64(v.Z))),
	}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func IsFinite[T Float](v Vec3[T]) bool {
	for _, c := range [3]float64{float64(v.X), float64(v.Y), float64(v.Z)} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
