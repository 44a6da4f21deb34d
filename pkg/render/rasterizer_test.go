package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
)

func newTestRasterizer(size int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(size, size)
	fb.BG = color.RGBA{0, 0, 0, 255}
	fb.Clear()
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())
	return NewRasterizer(cam, fb), fb
}

func TestDrawMeshUnlit(t *testing.T) {
	r, fb := newTestRasterizer(32)
	r.DrawMesh(models.NewSphere(1, 16, 12), math3d.Identity(), Material{Color: ColorRed, Unlit: true}, Lighting{})

	if got := fb.GetPixel(16, 16); got != ColorRed {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != ColorBlack {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestDrawMeshDepthTest(t *testing.T) {
	r, fb := newTestRasterizer(32)
	sphere := models.NewSphere(1, 16, 12)
	// Near sphere first, then a far one: the far one must not overwrite.
	r.DrawMesh(sphere, math3d.Identity(), Material{Color: ColorRed, Unlit: true}, Lighting{})
	r.DrawMesh(sphere, math3d.Translate(math3d.V3(0, 0, -3)), Material{Color: ColorGreen, Unlit: true}, Lighting{})
	if got := fb.GetPixel(16, 16); got != ColorRed {
		t.Errorf("center pixel = %v, want nearer red", got)
	}
}

func TestDrawMeshBackfaceCulling(t *testing.T) {
	ring := models.NewRing(0.5, 1.5, 16)
	facingAway := math3d.RotateY(math.Pi)

	r, fb := newTestRasterizer(32)
	r.DrawMesh(ring, facingAway, Material{Color: ColorRed, Unlit: true}, Lighting{})
	if got := fb.GetPixel(16, 8); got != ColorBlack {
		t.Errorf("back face drawn single-sided: %v", got)
	}

	r.DrawMesh(ring, facingAway, Material{Color: ColorRed, Unlit: true, DoubleSide: true}, Lighting{})
	if got := fb.GetPixel(16, 8); got != ColorRed {
		t.Errorf("back face not drawn double-sided: %v", got)
	}
}

func TestDrawMeshAlphaTest(t *testing.T) {
	r, fb := newTestRasterizer(32)
	tex := NewSolidTexture(RGBA(255, 255, 255, 0))
	r.DrawMesh(models.NewSphere(1, 16, 12), math3d.Identity(),
		Material{Texture: tex, Unlit: true, AlphaTest: 0.5}, Lighting{})
	if got := fb.GetPixel(16, 16); got != ColorBlack {
		t.Errorf("transparent texel drawn: %v", got)
	}
}

func TestDrawMeshLighting(t *testing.T) {
	sphere := models.NewSphere(1, 16, 12)
	mat := Material{Color: ColorWhite}

	r, fb := newTestRasterizer(32)
	r.DrawMesh(sphere, math3d.Identity(), mat, Lighting{Ambient: RGB(51, 51, 51), AmbientLevel: 2})
	ambient := fb.GetPixel(16, 16)
	if ambient.R < 95 || ambient.R > 110 {
		t.Errorf("ambient-only pixel = %v, want about 0.4 × 255", ambient)
	}

	r2, fb2 := newTestRasterizer(32)
	r2.DrawMesh(sphere, math3d.Identity(), mat, Lighting{
		Ambient:      RGB(51, 51, 51),
		AmbientLevel: 2,
		Points:       []PointLight{{Position: math3d.V3(0, 0, 10), Color: ColorWhite, Intensity: 10, Distance: 300, Decay: 0.2}},
	})
	if lit := fb2.GetPixel(16, 16); lit.R <= ambient.R {
		t.Errorf("lit pixel %v not brighter than ambient %v", lit, ambient)
	}
}

func TestDrawMeshBehindCamera(t *testing.T) {
	r, fb := newTestRasterizer(16)
	r.DrawMesh(models.NewSphere(1, 8, 6), math3d.Translate(math3d.V3(0, 0, 20)),
		Material{Color: ColorRed, Unlit: true}, Lighting{})
	for i, p := range fb.Pixels {
		if p != ColorBlack {
			t.Fatalf("pixel %d drawn for mesh behind camera", i)
		}
	}
}

func TestDrawMeshWireframe(t *testing.T) {
	r, fb := newTestRasterizer(32)
	r.DrawMeshWireframe(models.NewRing(0.5, 1.5, 8), math3d.Identity(), ColorGreen)
	drawn := 0
	for _, p := range fb.Pixels {
		if p == ColorGreen {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("wireframe drew nothing")
	}
}
