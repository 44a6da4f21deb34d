package scene

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

func newTarget(size int) *render.Rasterizer {
	fb := render.NewFramebuffer(size, size)
	cam := render.NewCamera()
	cam.SetAspectRatio(1)
	r := render.NewRasterizer(cam, fb)
	fb.Clear()
	r.ClearDepth()
	return r
}

func TestDrawModes(t *testing.T) {
	root := New("root")
	s := sphereNode("s", 1)
	s.Material.Texture = render.NewSolidTexture(render.RGB(0, 0, 255))
	s.Color = render.RGB(255, 0, 0)
	root.Add(s)
	root.Add(New("group"))

	tests := []struct {
		name string
		opts DrawOptions
		want render.Color
	}{
		{"textured", DrawOptions{}, render.RGB(0, 0, 255)},
		{"untextured", DrawOptions{Untextured: true}, render.RGB(255, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTarget(32)
			if n := Draw(r, root, tt.opts); n != 1 {
				t.Errorf("drawn = %d, want 1", n)
			}
			if got := r.FB.GetPixel(16, 16); got != tt.want {
				t.Errorf("center = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawWireframe(t *testing.T) {
	root := New("root")
	root.Add(sphereNode("s", 1))
	r := newTarget(32)
	Draw(r, root, DrawOptions{Wireframe: true, WireColor: render.RGB(1, 2, 3)})

	found := false
	for _, p := range r.FB.Pixels {
		if p == render.RGB(1, 2, 3) {
			found = true
			break
		}
	}
	if !found {
		t.Error("no wireframe pixels drawn")
	}
}

func TestWriteGLB(t *testing.T) {
	root := New("system")
	root.Position = math3d.V3(1, 2, 0)
	pivot := New("earth")
	pivot.RotateY(0.5)
	body := sphereNode("earth-mesh", 2)
	body.Position = math3d.V3(10, 0, 0)
	ring := NewMesh("ring", models.NewRing(3, 4, 8), render.Material{DoubleSide: true})
	ring.Mesh.CalculateBounds()
	ring.RotateX(1.5)
	root.Add(pivot)
	pivot.Add(body)
	body.Add(ring)

	path := filepath.Join(t.TempDir(), "system.glb")
	if err := WriteGLB(root, path); err != nil {
		t.Fatalf("WriteGLB: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(doc.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(doc.Nodes))
	}
	if len(doc.Meshes) != 2 || len(doc.Materials) != 2 {
		t.Errorf("meshes = %d materials = %d, want 2 each", len(doc.Meshes), len(doc.Materials))
	}
	if !doc.Materials[1].DoubleSided {
		t.Error("ring material should be double sided")
	}
	if doc.Nodes[0].Name != "system" || len(doc.Nodes[0].Children) != 1 {
		t.Errorf("root node = %+v", doc.Nodes[0])
	}

	flat, err := models.LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	want := body.Mesh.TriangleCount() + ring.Mesh.TriangleCount()
	if flat.TriangleCount() != want {
		t.Errorf("triangles = %d, want %d", flat.TriangleCount(), want)
	}

	// The flattened sphere is centered where the scene graph puts it.
	sphere := models.NewMesh("sphere")
	sphere.Vertices = flat.Vertices[:body.Mesh.VertexCount()]
	sphere.CalculateBounds()
	if got, want := sphere.Center(), body.WorldPosition(); !got.ApproxEqual(want, 1e-3) {
		t.Errorf("exported sphere center = %v, want %v", got, want)
	}
}
