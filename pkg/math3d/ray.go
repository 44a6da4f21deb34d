package math3d

import "math"

// Ray is a half-line from Origin along the unit direction Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Transform returns the ray expressed in the space mapped by m.
// Dir is renormalized, so distances are in the target space.
func (r Ray) Transform(m Mat4) Ray {
	return NewRay(m.MulVec3(r.Origin), m.MulVec3Dir(r.Dir))
}

// IntersectSphere returns the nearest non-negative hit distance with the sphere.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectTriangle returns the hit distance with triangle (a, b, c) using
// the Möller–Trumbore test. Both faces count as hits.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}
