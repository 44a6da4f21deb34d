package render

import "github.com/taigrr/orrery/pkg/math3d"

func boxCorners(lo, hi math3d.Vec3) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// outsideFrustum reports whether every corner of the box, transformed to clip
// space by mvp, lies beyond the same clip plane.
func outsideFrustum(lo, hi math3d.Vec3, mvp math3d.Mat4) bool {
	var out [6]int
	for _, c := range boxCorners(lo, hi) {
		p := mvp.MulVec4(math3d.V4FromV3(c, 1))
		if p.X < -p.W {
			out[0]++
		}
		if p.X > p.W {
			out[1]++
		}
		if p.Y < -p.W {
			out[2]++
		}
		if p.Y > p.W {
			out[3]++
		}
		if p.Z < -p.W {
			out[4]++
		}
		if p.Z > p.W {
			out[5]++
		}
	}
	for _, n := range out {
		if n == 8 {
			return true
		}
	}
	return false
}
