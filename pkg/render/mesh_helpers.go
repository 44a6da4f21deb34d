package render

import "github.com/taigrr/orrery/pkg/math3d"

// MeshRenderer is the geometry the rasterizer can draw.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer is a MeshRenderer with a local bounding box, used for culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// Vertex is a world-space vertex ready for shading.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Triangle is a world-space triangle.
type Triangle struct {
	V [3]Vertex
}

func buildTriangle(mesh MeshRenderer, face [3]int, transform math3d.Mat4) Triangle {
	var tri Triangle
	for i, idx := range face {
		p, n, uv := mesh.GetVertex(idx)
		tri.V[i] = Vertex{
			Position: transform.MulVec3(p),
			Normal:   transform.MulVec3Dir(n).Normalize(),
			UV:       uv,
		}
	}
	return tri
}
