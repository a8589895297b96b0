package math3d

import (
	"testing"
)

func BenchmarkMatrixMul(b *testing.B) {
	m1 := Viewport(0, 0, 800, 800)
	m2 := Projection(3)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMatrixTransform(b *testing.B) {
	m := Viewport(100, 100, 600, 600).Mul(Projection(3)).Mul(LookAt(V3(1.0, 1, 3), Vec3f{}, V3(0.0, 1, 0)))
	v := V3(0.1, 0.2, 0.3)

	for b.Loop() {
		_ = m.Transform(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1.0, 2, 3)

	for b.Loop() {
		_ = Normalize(v)
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1.0, 2, 3)
	v2 := V3(4.0, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1.0, 2, 3)
	v2 := V3(4.0, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(1.0, 1, 3)
	target := V3(0.0, 0, 0)
	up := V3(0.0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}
