package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestCameraRayThroughCenter(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(-90, 140, 140))
	cam.LookAt(math3d.Zero3())
	cam.SetClipPlanes(0.1, 1000)

	ray := cam.Ray(0, 0)
	want := math3d.Zero3().Sub(cam.Position).Normalize()
	if !ray.Dir.ApproxEqual(want, 1e-6) {
		t.Errorf("center ray dir = %v, want %v", ray.Dir, want)
	}
	// The origin sits on the near plane in front of the camera.
	if d := ray.Origin.Distance(cam.Position); math.Abs(d-0.1) > 1e-6 {
		t.Errorf("ray origin %v is %v from camera, want 0.1", ray.Origin, d)
	}
}

func TestCameraRayCorners(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(2)
	ray := cam.Ray(1, 1)
	if ray.Dir.X <= 0 || ray.Dir.Y <= 0 || ray.Dir.Z >= 0 {
		t.Errorf("top-right ray dir = %v, want +X +Y -Z", ray.Dir)
	}
	// Vertical half-angle equals FOV/2
	if got := math.Atan2(ray.Dir.Y, -ray.Dir.Z); math.Abs(got-cam.FOV/2) > 1e-6 {
		t.Errorf("vertical angle = %v, want %v", got, cam.FOV/2)
	}
}

func TestSetAspectRatioIgnoresInvalid(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(0)
	if cam.Aspect != 1 {
		t.Errorf("Aspect = %v, want unchanged 1", cam.Aspect)
	}
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, 2, 2)
	if x != -0.5 || y != 0.5 {
		t.Errorf("ScreenToNDC(0,0) = (%v,%v), want (-0.5,0.5)", x, y)
	}
	x, y = ScreenToNDC(1, 1, 2, 2)
	if x != 0.5 || y != -0.5 {
		t.Errorf("ScreenToNDC(1,1) = (%v,%v), want (0.5,-0.5)", x, y)
	}
}
