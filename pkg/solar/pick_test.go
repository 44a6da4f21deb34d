package solar

import (
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

func ndcOf(cam *render.Camera, p math3d.Vec3) (float64, float64) {
	ndc := cam.ViewProjection().MulVec4(math3d.V4FromV3(p, 1)).PerspectiveDivide()
	return ndc.X, ndc.Y
}

func TestPickHitAndMiss(t *testing.T) {
	r := NewRegistry(nil)
	sun := r.CreateSun(4, "sun.jpg", 0, "sun", 0.004, 0)

	cam := render.NewCamera()
	cam.SetClipPlanes(0.1, 1000)
	cam.SetPosition(math3d.V3(0, 0, 50))

	if b, ok := Pick(r, cam, 0, 0); !ok || b != sun {
		t.Errorf("center pick = %v, %v; want sun", b, ok)
	}
	if b, ok := Pick(r, cam, 0.95, 0.95); ok {
		t.Errorf("corner pick = %v, want no selection", b)
	}
}

func TestPickNearestBody(t *testing.T) {
	r := NewRegistry(nil)
	far := r.CreatePlanet(2, "", 0, "far", 0, 0)
	near := r.CreatePlanet(2, "", 20, "near", 0, 0)

	cam := render.NewCamera()
	cam.SetClipPlanes(0.1, 1000)
	cam.SetPosition(math3d.V3(60, 0, 0))
	cam.LookAt(math3d.Zero3())

	b, ok := Pick(r, cam, 0, 0)
	if !ok || b != near {
		t.Errorf("pick = %v, want %v (not %v)", b, near, far)
	}
}

func TestPickFollowsOrbit(t *testing.T) {
	r := NewRegistry(nil)
	earth := r.CreatePlanet(2, "", 30, "earth", 0, 0.5)

	cam := render.NewCamera()
	cam.SetClipPlanes(0.1, 1000)
	cam.SetPosition(math3d.V3(0, 100, 0))
	cam.Up = math3d.V3(0, 0, -1)

	x, y := ndcOf(cam, math3d.V3(30, 0, 0))
	if b, ok := Pick(r, cam, x, y); !ok || b != earth {
		t.Fatalf("pick before orbit = %v, %v", b, ok)
	}
	r.AnimateAll()
	if _, ok := Pick(r, cam, x, y); ok {
		t.Error("earth still picked at its old position after orbiting")
	}
	x, y = ndcOf(cam, earth.WorldPosition())
	if b, ok := Pick(r, cam, x, y); !ok || b != earth {
		t.Errorf("pick at new position = %v, %v", b, ok)
	}
}

func TestPickRingSelectsPlanet(t *testing.T) {
	r := NewRegistry(nil)
	saturn := r.CreatePlanetWithRing(1, "saturn.jpg", 0, "saturn", 0, 0, "saturnring.png", 3, 6)

	cam := render.NewCamera()
	cam.SetClipPlanes(0.1, 1000)
	cam.SetPosition(math3d.V3(0, 40, 0))
	cam.Up = math3d.V3(0, 0, -1)

	x, y := ndcOf(cam, math3d.V3(4.5, 0, 0))
	b, ok := Pick(r, cam, x, y)
	if !ok || b != saturn {
		t.Errorf("ring pick = %v, %v; want saturn", b, ok)
	}
}
