package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/math3d"
)

func TestGLBRoundTrip(t *testing.T) {
	sphere := NewSphere(2, 8, 6)

	doc := gltf.NewDocument()
	idx := AddToDocument(doc, sphere)
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "offset",
		Mesh:        gltf.Index(idx),
		Translation: [3]float64{10, 0, 0},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	path := filepath.Join(t.TempDir(), "sphere.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if mesh.VertexCount() != sphere.VertexCount() || mesh.TriangleCount() != sphere.TriangleCount() {
		t.Fatalf("loaded %d/%d, want %d/%d vertices/triangles",
			mesh.VertexCount(), mesh.TriangleCount(), sphere.VertexCount(), sphere.TriangleCount())
	}
	if c := mesh.Center(); !c.ApproxEqual(math3d.V3(10, 0, 0), 1e-5) {
		t.Errorf("Center = %v, want (10,0,0)", c)
	}
	for i := range sphere.Vertices {
		if d := mesh.Vertices[i].UV.Sub(sphere.Vertices[i].UV).Len(); d > 1e-6 {
			t.Fatalf("vertex %d UV = %v, want %v", i, mesh.Vertices[i].UV, sphere.Vertices[i].UV)
		}
	}
}

func TestLoadGLBEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(gltf.NewDocument(), path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	if _, err := LoadGLB(path); !errors.Is(err, ErrNoMesh) {
		t.Errorf("LoadGLB(empty) error = %v, want ErrNoMesh", err)
	}
}

func TestLoadGLBMissing(t *testing.T) {
	if _, err := LoadGLB(filepath.Join(t.TempDir(), "nope.glb")); err == nil {
		t.Error("expected error for missing file")
	}
}
