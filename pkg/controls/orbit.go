// Package controls implements spring-damped orbit camera controls.
package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// polarEps keeps the camera off the poles, where LookAt degenerates.
const polarEps = 1e-3

// Axis tracks an angle and an angular velocity that decays with a spring.
type Axis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity used to animate Velocity toward 0
}

// NewAxis creates an axis whose velocity settles critically damped.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position, then decays velocity toward 0.
func (a *Axis) Update(damping bool) {
	a.Position += a.Velocity
	if damping {
		a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	}
}

// Orbit moves a camera on a sphere around a target. Azimuth is measured
// about +Y from +Z, Polar from +Y.
type Orbit struct {
	Target       math3d.Vec3
	Azimuth      Axis
	Polar        Axis
	MinDistance  float64
	MaxDistance  float64
	DragSpeed    float64 // radians per cell of mouse movement
	distance     float64
	distVel      float64
	distTarget   float64
	zoomSpring   harmonica.Spring
	fps          int
	homeAzimuth  float64
	homePolar    float64
	homeDistance float64
}

// NewOrbit creates controls that start at eye looking at target.
func NewOrbit(eye, target math3d.Vec3, fps int) *Orbit {
	fps = max(1, fps)
	off := eye.Sub(target)
	d := off.Len()
	if d == 0 {
		off, d = math3d.V3(0, 0, 1), 1
	}
	o := &Orbit{
		Target:      target,
		Azimuth:     NewAxis(fps),
		Polar:       NewAxis(fps),
		MinDistance: d / 20,
		MaxDistance: d * 5,
		DragSpeed:   0.01,
		zoomSpring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		fps:         fps,
	}
	o.homeAzimuth = math.Atan2(off.X, off.Z)
	o.homePolar = math.Acos(math.Max(-1, math.Min(1, off.Y/d)))
	o.homeDistance = d
	o.Reset()
	return o
}

// Reset returns to the starting viewpoint and stops all motion.
func (o *Orbit) Reset() {
	o.Azimuth = NewAxis(o.fps)
	o.Polar = NewAxis(o.fps)
	o.Azimuth.Position = o.homeAzimuth
	o.Polar.Position = o.homePolar
	o.distance, o.distTarget, o.distVel = o.homeDistance, o.homeDistance, 0
}

// Drag turns mouse movement (in cells) into orbit velocity.
func (o *Orbit) Drag(dx, dy float64) {
	o.Azimuth.Velocity -= dx * o.DragSpeed
	o.Polar.Velocity -= dy * o.DragSpeed
}

// Zoom scales the target distance; factors below 1 move closer.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.distTarget = math.Max(o.MinDistance, math.Min(o.MaxDistance, o.distTarget*factor))
}

// Update advances the springs by one frame.
func (o *Orbit) Update() {
	o.Azimuth.Update(true)
	o.Polar.Update(true)
	if o.Polar.Position < polarEps || o.Polar.Position > math.Pi-polarEps {
		o.Polar.Position = math.Max(polarEps, math.Min(math.Pi-polarEps, o.Polar.Position))
		o.Polar.Velocity = 0
	}
	o.distance, o.distVel = o.zoomSpring.Update(o.distance, o.distVel, o.distTarget)
}

// Distance returns the current distance to the target.
func (o *Orbit) Distance() float64 { return o.distance }

// Settled reports whether the controls have stopped moving.
func (o *Orbit) Settled() bool {
	const eps = 1e-4
	return math.Abs(o.Azimuth.Velocity) < eps && math.Abs(o.Polar.Velocity) < eps &&
		math.Abs(o.distance-o.distTarget) < eps*o.distTarget
}

// Position returns the camera position for the current angles and distance.
func (o *Orbit) Position() math3d.Vec3 {
	sp, cp := math.Sincos(o.Polar.Position)
	sa, ca := math.Sincos(o.Azimuth.Position)
	return o.Target.Add(math3d.V3(sp*sa, cp, sp*ca).Scale(o.distance))
}

// Apply points cam from the current position at the target.
func (o *Orbit) Apply(cam *render.Camera) {
	cam.SetPosition(o.Position())
	cam.LookAt(o.Target)
}
