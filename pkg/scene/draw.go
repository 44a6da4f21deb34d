package scene

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// DrawOptions selects how Draw shades the scene.
type DrawOptions struct {
	Lights     render.Lighting
	Wireframe  bool
	WireColor  render.Color
	Untextured bool
}

// Draw rasterizes every mesh under root and returns how many meshes were submitted.
// The caller clears the framebuffer and depth buffer.
func Draw(r *render.Rasterizer, root *Node, opts DrawOptions) int {
	wire := opts.WireColor
	if wire == (render.Color{}) {
		wire = render.RGB(0, 255, 128)
	}
	drawn := 0
	root.Walk(func(n *Node, world math3d.Mat4) bool {
		if n.Mesh == nil {
			return true
		}
		drawn++
		if opts.Wireframe {
			r.DrawMeshWireframe(n.Mesh, world, wire)
			return true
		}
		mat := n.Material
		if opts.Untextured && mat.Texture != nil {
			mat.Texture = nil
			mat.Color = n.Color
			if mat.Color == (render.Color{}) {
				mat.Color = render.RGB(200, 200, 200)
			}
		}
		r.DrawMesh(n.Mesh, world, mat, opts.Lights)
		return true
	})
	return drawn
}
