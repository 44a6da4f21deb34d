package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/config"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

func TestLoadSystem(t *testing.T) {
	sys, err := loadSystem(&options{texturesDir: "/srv/textures"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sys.Bodies) != 10 || sys.Textures != "/srv/textures" {
		t.Errorf("system = %d bodies, textures %q", len(sys.Bodies), sys.Textures)
	}
	if _, err := loadSystem(&options{configPath: filepath.Join(t.TempDir(), "none.toml")}); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestWorldDraw(t *testing.T) {
	sys := config.Default()
	w := newWorld(sys, render.NewTextureLoader(t.TempDir(), 0), 64, 36)
	state := NewViewState()
	if n := w.draw(state); n != 11 {
		t.Errorf("drew %d meshes, want 11", n)
	}
	// The unlit sun sits at the center of the default view.
	if got := w.fb.GetPixel(32, 18); got != render.RGB(0xff, 0xc5, 0x33) {
		t.Errorf("center pixel = %v, want sun color", got)
	}

	w.resize(32, 32)
	if w.cam.Aspect != 1 || w.fb.Width != 32 {
		t.Errorf("resize: aspect %v width %d", w.cam.Aspect, w.fb.Width)
	}
}

func TestWorldReloadKeepsAngles(t *testing.T) {
	sys := config.Default()
	w := newWorld(sys, nil, 16, 16)
	for range 5 {
		w.reg.AnimateAll()
	}
	earth, _ := w.reg.Find("earth")
	spin := earth.Spin()

	next := config.Default()
	next.Name = "reloaded"
	next.Bodies = next.Bodies[:4]
	w.reload(next, nil)

	if w.reg.Len() != 4 || w.sys.Name != "reloaded" {
		t.Fatalf("reload: %d bodies, name %q", w.reg.Len(), w.sys.Name)
	}
	earth, ok := w.reg.Find("earth")
	if !ok || earth.Spin() != spin {
		t.Errorf("earth spin after reload = %v, want %v", earth.Spin(), spin)
	}
}

func TestRunRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	opts := &options{pngOut: out, width: 80, height: 45, ticks: 3, bgColor: "#102030"}
	if err := runRender(opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 45 {
		t.Errorf("image size = %v", b)
	}

	if err := runRender(&options{pngOut: out, width: 0, height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	if err := runRender(&options{pngOut: out, width: 10, height: 10, bgColor: "mauve"}); err == nil ||
		!strings.Contains(err.Error(), "--bg") {
		t.Errorf("bad --bg error = %v", err)
	}
}

func TestRunExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "system.glb")
	if err := runExport(&options{glbOut: out, ticks: 10}); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	doc, err := gltf.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	// container + 10 transform nodes + 10 spheres + 1 ring
	if len(doc.Nodes) != 22 {
		t.Errorf("nodes = %d, want 22", len(doc.Nodes))
	}
	if len(doc.Meshes) != 11 {
		t.Errorf("meshes = %d, want 11", len(doc.Meshes))
	}
	if _, err := models.LoadGLB(out); err != nil {
		t.Errorf("LoadGLB: %v", err)
	}
}

func TestRunInfo(t *testing.T) {
	if err := runInfo(&options{}); err != nil {
		t.Errorf("runInfo: %v", err)
	}
	if err := runInfo(&options{dump: true}); err != nil {
		t.Errorf("runInfo --toml: %v", err)
	}
}

func TestSetBackground(t *testing.T) {
	fb := render.NewFramebuffer(2, 2)
	if err := setBackground(fb, "10,20,30"); err != nil {
		t.Fatal(err)
	}
	if fb.BG.R != 10 || fb.BG.G != 20 || fb.BG.B != 30 || fb.BG.A != 255 {
		t.Errorf("BG = %v", fb.BG)
	}
}

func TestDescribe(t *testing.T) {
	w := newWorld(config.Default(), nil, 8, 8)
	saturn, _ := w.reg.Find("saturn")
	if got := describe(saturn); got != "saturn (planet) r=10.0 d=138 ringed" {
		t.Errorf("describe = %q", got)
	}
}
