package scene

import (
	"cmp"
	"slices"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Hit is one ray intersection with a mesh node.
type Hit struct {
	Node     *Node
	Distance float64
	Point    math3d.Vec3
}

// Intersect casts ray (in root space) against every mesh under root and
// returns the nearest hit per mesh, sorted nearest first.
func Intersect(root *Node, ray math3d.Ray) []Hit {
	var hits []Hit
	root.Walk(func(n *Node, world math3d.Mat4) bool {
		if n.Mesh == nil || len(n.Mesh.Faces) == 0 {
			return true
		}
		if d, ok := intersectMesh(n, world, ray); ok {
			hits = append(hits, Hit{Node: n, Distance: d, Point: ray.At(d)})
		}
		return true
	})
	slices.SortStableFunc(hits, func(a, b Hit) int { return cmp.Compare(a.Distance, b.Distance) })
	return hits
}

func intersectMesh(n *Node, world math3d.Mat4, ray math3d.Ray) (float64, bool) {
	m := n.Mesh
	center := world.MulVec3(m.Center())
	radius := m.BoundingRadius() * world.MaxScale()
	if _, ok := ray.IntersectSphere(center, radius); !ok {
		return 0, false
	}

	pos := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		pos[i] = world.MulVec3(v.Position)
	}
	best, found := 0.0, false
	for _, f := range m.Faces {
		d, ok := ray.IntersectTriangle(pos[f.V[0]], pos[f.V[1]], pos[f.V[2]])
		if ok && (!found || d < best) {
			best, found = d, true
		}
	}
	return best, found
}
