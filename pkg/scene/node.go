// Package scene provides a small transform hierarchy for meshes with
// ray picking, drawing and glTF export.
package scene

import (
	"slices"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

// Node is a transform in the scene graph. A node with a Mesh is drawable;
// a node without one only groups its children.
type Node struct {
	Name     string
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles, XYZ order
	Scale    math3d.Vec3

	Mesh     *models.Mesh
	Material render.Material
	Color    render.Color // flat shade used when textures are off

	parent   *Node
	children []*Node
}

// New creates an empty group node with unit scale.
func New(name string) *Node {
	return &Node{Name: name, Scale: math3d.V3(1, 1, 1)}
}

// NewMesh creates a drawable node.
func NewMesh(name string, mesh *models.Mesh, mat render.Material) *Node {
	n := New(name)
	n.Mesh = mesh
	n.Material = mat
	return n
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was attached.
func (n *Node) Remove(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Parent returns the node n is attached to, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the attached nodes in insertion order.
// The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// RotateX adds angle radians to the X rotation.
func (n *Node) RotateX(angle float64) { n.Rotation.X += angle }

// RotateY adds angle radians to the Y rotation.
func (n *Node) RotateY(angle float64) { n.Rotation.Y += angle }

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math3d.Mat4 {
	return math3d.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the transform from n's space to the root's.
func (n *Node) WorldMatrix() math3d.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the origin of n in root space.
func (n *Node) WorldPosition() math3d.Vec3 {
	return n.WorldMatrix().Translation()
}

// Walk visits n and its descendants depth first with their world matrices.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, world math3d.Mat4) bool) {
	n.walk(math3d.Identity(), fn)
}

func (n *Node) walk(parent math3d.Mat4, fn func(*Node, math3d.Mat4) bool) {
	world := parent.Mul(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, math3d.Mat4) bool {
		count++
		return true
	})
	return count
}
