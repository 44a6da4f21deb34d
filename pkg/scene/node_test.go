package scene

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

func TestAddReparents(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	a.Add(c)
	b.Add(c)

	if c.Parent() != b {
		t.Fatalf("parent = %v, want b", c.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("a still has %d children", len(a.Children()))
	}
	if len(b.Children()) != 1 || b.Children()[0] != c {
		t.Errorf("b children = %v", b.Children())
	}

	a.Add(a)
	a.Add(nil)
	if len(a.Children()) != 0 {
		t.Error("self and nil must not be added")
	}
	if a.Remove(c) {
		t.Error("Remove of a non-child should report false")
	}
}

func TestRotateYAccumulates(t *testing.T) {
	n := New("n")
	for range 10 {
		n.RotateY(0.1)
	}
	if math.Abs(n.Rotation.Y-1.0) > 1e-12 {
		t.Errorf("Rotation.Y = %v, want 1.0", n.Rotation.Y)
	}
	if n.Rotation.X != 0 || n.Rotation.Z != 0 {
		t.Errorf("other axes changed: %v", n.Rotation)
	}
}

func TestWorldMatrixChain(t *testing.T) {
	root := New("root")
	root.Position = math3d.V3(5, 0, 0)
	pivot := New("pivot")
	pivot.RotateY(math.Pi / 2)
	leaf := New("leaf")
	leaf.Position = math3d.V3(10, 0, 0)
	root.Add(pivot)
	pivot.Add(leaf)

	// RotateY(π/2) sends +X to -Z
	want := math3d.V3(5, 0, -10)
	if got := leaf.WorldPosition(); !got.ApproxEqual(want, 1e-9) {
		t.Errorf("WorldPosition = %v, want %v", got, want)
	}

	var seen []string
	root.Walk(func(n *Node, world math3d.Mat4) bool {
		seen = append(seen, n.Name)
		if n == leaf && !world.ApproxEqual(leaf.WorldMatrix(), 1e-9) {
			t.Error("Walk world matrix differs from WorldMatrix")
		}
		return true
	})
	if len(seen) != 3 || seen[0] != "root" || seen[2] != "leaf" {
		t.Errorf("walk order = %v", seen)
	}
	if root.Count() != 3 {
		t.Errorf("Count = %d", root.Count())
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := New("root")
	hidden := New("hidden")
	root.Add(hidden)
	hidden.Add(New("grandchild"))

	visited := 0
	root.Walk(func(n *Node, _ math3d.Mat4) bool {
		visited++
		return n != hidden
	})
	if visited != 2 {
		t.Errorf("visited %d nodes, want 2", visited)
	}
}

func sphereNode(name string, radius float64) *Node {
	mesh := models.NewSphere(radius, 16, 12)
	mesh.CalculateBounds()
	return NewMesh(name, mesh, render.Material{Unlit: true})
}

func TestIntersectNearestFirst(t *testing.T) {
	root := New("root")
	near := sphereNode("near", 1)
	near.Position = math3d.V3(0, 0, -5)
	far := sphereNode("far", 1)
	far.Position = math3d.V3(0, 0, -10)
	root.Add(far)
	root.Add(near)

	ray := math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))
	hits := Intersect(root, ray)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Node != near || hits[1].Node != far {
		t.Errorf("order = %s, %s", hits[0].Node.Name, hits[1].Node.Name)
	}
	if math.Abs(hits[0].Distance-4) > 0.05 {
		t.Errorf("near distance = %v, want about 4", hits[0].Distance)
	}
	if !hits[0].Point.ApproxEqual(ray.At(hits[0].Distance), 1e-9) {
		t.Error("hit point is not on the ray")
	}
}

func TestIntersectMiss(t *testing.T) {
	root := New("root")
	s := sphereNode("s", 1)
	s.Position = math3d.V3(0, 0, -5)
	root.Add(s)

	if hits := Intersect(root, math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0))); len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
	if hits := Intersect(root, math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, 1))); len(hits) != 0 {
		t.Errorf("object behind the ray origin was hit")
	}
}

func TestIntersectFollowsParentTransform(t *testing.T) {
	root := New("root")
	pivot := New("pivot")
	s := sphereNode("s", 1)
	s.Position = math3d.V3(10, 0, 0)
	pivot.Add(s)
	root.Add(pivot)
	pivot.RotateY(math.Pi / 2) // sphere now at (0,0,-10)

	ray := math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))
	hits := Intersect(root, ray)
	if len(hits) != 1 || hits[0].Node != s {
		t.Fatalf("hits = %v", hits)
	}
}
