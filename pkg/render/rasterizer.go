package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Texture    *Texture // nil draws Color only
	Color      Color    // tint multiplied with the texture
	Unlit      bool     // ignore lights (emissive bodies)
	DoubleSide bool     // draw back faces
	AlphaTest  float64  // discard texels with alpha below this fraction
}

// PointLight emits from a point with optional distance cutoff and decay.
type PointLight struct {
	Position  math3d.Vec3
	Color     Color
	Intensity float64
	Distance  float64 // 0 = infinite
	Decay     float64
}

// Lighting is the light setup for one frame.
type Lighting struct {
	Ambient      Color
	AmbientLevel float64
	Points       []PointLight
}

// irradiance returns the per-channel light factor at a world point with normal n.
func (l Lighting) irradiance(p, n math3d.Vec3) math3d.Vec3 {
	a := l.AmbientLevel / 255
	light := math3d.V3(float64(l.Ambient.R)*a, float64(l.Ambient.G)*a, float64(l.Ambient.B)*a)
	for _, pl := range l.Points {
		toLight := pl.Position.Sub(p)
		d := toLight.Len()
		if d == 0 {
			continue
		}
		ndl := n.Dot(toLight.Scale(1 / d))
		if ndl <= 0 {
			continue
		}
		att := pl.Intensity / math.Max(math.Pow(d, pl.Decay), 0.01)
		if pl.Distance > 0 {
			w := math.Max(0, 1-math.Pow(d/pl.Distance, 4))
			att *= w * w
		}
		f := ndl * att / math.Pi / 255
		light = light.Add(math3d.V3(float64(pl.Color.R)*f, float64(pl.Color.G)*f, float64(pl.Color.B)*f))
	}
	return light
}

// Rasterizer draws meshes into a framebuffer from a camera's point of view.
type Rasterizer struct {
	Camera                 *Camera
	FB                     *Framebuffer
	DisableBackfaceCulling bool

	depth []float64
	vp    math3d.Mat4
}

// NewRasterizer creates a rasterizer bound to a camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{Camera: camera, FB: fb}
	r.ClearDepth()
	return r
}

// ClearDepth resets the depth buffer (resizing it to the framebuffer) and
// snapshots the camera matrices for this frame.
func (r *Rasterizer) ClearDepth() {
	n := r.FB.Width * r.FB.Height
	if len(r.depth) != n {
		r.depth = make([]float64, n)
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
	r.vp = r.Camera.ViewProjection()
}

type screenVertex struct {
	x, y, z float64 // pixel x/y, NDC depth
	invW    float64
	uv      math3d.Vec2
	light   math3d.Vec3
}

// project transforms a world point to screen space. ok is false behind the near plane.
func (r *Rasterizer) project(p math3d.Vec3) (x, y, z, invW float64, ok bool) {
	clip := r.vp.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= r.Camera.Near*0.5 {
		return 0, 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) / 2 * float64(r.FB.Width)
	y = (1 - ndc.Y) / 2 * float64(r.FB.Height)
	return x, y, ndc.Z, 1 / clip.W, true
}

func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	b, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	lo, hi := b.GetBounds()
	return outsideFrustum(lo, hi, r.vp.Mul(transform))
}

// DrawMesh rasterizes a mesh with the given model transform, material and lights.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, mat Material, lights Lighting) {
	if r.culled(mesh, transform) {
		return
	}
	tint := mat.Color
	if tint == (Color{}) {
		tint = ColorWhite
	}
	alphaMin := uint8(math.Max(0, math.Min(1, mat.AlphaTest)) * 255)

	for i := range mesh.TriangleCount() {
		tri := buildTriangle(mesh, mesh.GetFace(i), transform)
		var sv [3]screenVertex
		visible := true
		for k, v := range tri.V {
			x, y, z, invW, ok := r.project(v.Position)
			if !ok {
				visible = false
				break
			}
			light := math3d.V3(1, 1, 1)
			if !mat.Unlit {
				light = lights.irradiance(v.Position, v.Normal)
			}
			sv[k] = screenVertex{x: x, y: y, z: z, invW: invW, uv: v.UV, light: light}
		}
		if !visible {
			continue
		}

		area := edge(sv[0].x, sv[0].y, sv[1].x, sv[1].y, sv[2].x, sv[2].y)
		if area == 0 {
			continue
		}
		// Screen Y points down, so counter-clockwise front faces have negative area.
		if area > 0 && !mat.DoubleSide && !r.DisableBackfaceCulling {
			continue
		}
		r.fillTriangle(sv, area, mat.Texture, tint, alphaMin)
	}
}

func edge(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func (r *Rasterizer) fillTriangle(sv [3]screenVertex, area float64, tex *Texture, tint Color, alphaMin uint8) {
	minX := max(0, int(math.Floor(min(sv[0].x, sv[1].x, sv[2].x))))
	maxX := min(r.FB.Width-1, int(math.Ceil(max(sv[0].x, sv[1].x, sv[2].x))))
	minY := max(0, int(math.Floor(min(sv[0].y, sv[1].y, sv[2].y))))
	maxY := min(r.FB.Height-1, int(math.Ceil(max(sv[0].y, sv[1].y, sv[2].y))))

	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5
			w0 := edge(sv[1].x, sv[1].y, sv[2].x, sv[2].y, cx, cy) / area
			w1 := edge(sv[2].x, sv[2].y, sv[0].x, sv[0].y, cx, cy) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*sv[0].z + w1*sv[1].z + w2*sv[2].z
			idx := py*r.FB.Width + px
			if z < -1 || z > 1 || z >= r.depth[idx] {
				continue
			}

			// Perspective-correct attributes
			p0, p1, p2 := w0*sv[0].invW, w1*sv[1].invW, w2*sv[2].invW
			norm := 1 / (p0 + p1 + p2)
			p0, p1, p2 = p0*norm, p1*norm, p2*norm

			c := tint
			if tex != nil {
				u := p0*sv[0].uv.X + p1*sv[1].uv.X + p2*sv[2].uv.X
				v := p0*sv[0].uv.Y + p1*sv[1].uv.Y + p2*sv[2].uv.Y
				c = ModulateColor(tex.Sample(u, v), tint)
			}
			if c.A < alphaMin {
				continue
			}
			light := sv[0].light.Scale(p0).Add(sv[1].light.Scale(p1)).Add(sv[2].light.Scale(p2))
			r.depth[idx] = z
			r.FB.Pixels[idx] = Color{
				clamp8(float64(c.R) * light.X),
				clamp8(float64(c.G) * light.Y),
				clamp8(float64(c.B) * light.Z),
				255,
			}
		}
	}
}

// DrawMeshWireframe draws triangle edges without depth testing.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	if r.culled(mesh, transform) {
		return
	}
	for i := range mesh.TriangleCount() {
		tri := buildTriangle(mesh, mesh.GetFace(i), transform)
		var xs, ys [3]float64
		visible := true
		for k, v := range tri.V {
			x, y, _, _, ok := r.project(v.Position)
			if !ok {
				visible = false
				break
			}
			xs[k], ys[k] = x, y
		}
		if !visible {
			continue
		}
		for k := range 3 {
			j := (k + 1) % 3
			r.drawLine(int(xs[k]), int(ys[k]), int(xs[j]), int(ys[j]), color)
		}
	}
}

// drawLine is Bresenham's line algorithm.
func (r *Rasterizer) drawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for steps := 0; steps < 1<<14; steps++ {
		r.FB.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
