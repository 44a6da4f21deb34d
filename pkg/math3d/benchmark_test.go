package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(138, 0, 0))
	m2 := RotateY(0.0009)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := RotateY(0.5).Mul(Translate(V3(138, 0, 0)))
	v := V3(1, 2, 3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.MulVec3(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Inverse()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Same shape as the camera's per-frame matrix
	view := LookAt(V3(-90, 140, 140), Zero3(), Up())
	proj := Perspective(math.Pi/4, 2, 0.1, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = proj.Mul(view)
	}
}

func BenchmarkRayTriangle(b *testing.B) {
	r := NewRay(V3(0.2, 0.2, 5), V3(0, 0, -1))
	a, c, d := V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.IntersectTriangle(a, c, d)
	}
}
