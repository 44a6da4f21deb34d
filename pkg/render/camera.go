package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3
	FOV      float64 // vertical, radians
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera creates a camera at +Z looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.V3(0, 0, 5),
		Up:       math3d.Up(),
		FOV:      math.Pi / 3,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	}
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
}

// SetPosition moves the camera, keeping its target.
func (c *Camera) SetPosition(p math3d.Vec3) {
	c.Position = p
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the view-to-clip transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Ray returns the world-space picking ray through normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) Ray(ndcX, ndcY float64) math3d.Ray {
	inv := c.ViewProjection().Inverse()
	near := inv.MulVec4(math3d.V4(ndcX, ndcY, -1, 1)).PerspectiveDivide()
	far := inv.MulVec4(math3d.V4(ndcX, ndcY, 1, 1)).PerspectiveDivide()
	return math3d.NewRay(near, far.Sub(near))
}

// ScreenToNDC maps a pixel position in a width×height target to normalized
// device coordinates, sampling the pixel center.
func ScreenToNDC(x, y, width, height int) (float64, float64) {
	nx := (float64(x)+0.5)/float64(width)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(height)*2
	return nx, ny
}
