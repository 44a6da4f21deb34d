// Package solar holds the celestial body registry: a sun and planets that
// spin on their own axes and orbit a shared container node.
package solar

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// ringSplitRadius is the distance from the ring center below which ring
// vertices sample the left edge of the ring texture. It does not scale with
// the ring's radii.
const ringSplitRadius = 4

// defaultRingOuter is the outer radius used when none is given.
const defaultRingOuter = 1

// Kind distinguishes self-lit stars from lit planets.
type Kind int

const (
	Star Kind = iota
	Planet
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "star" or "planet" (case insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "star", "sun":
		return Star, nil
	case "planet", "":
		return Planet, nil
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}

// TextureSource resolves texture identifiers. Implementations never fail;
// unusable identifiers yield a texture of the fallback color.
type TextureSource interface {
	Load(id string, fallback render.Color) *render.Texture
}

// RingParams describes a planetary ring.
type RingParams struct {
	Texture string
	Inner   float64
	Outer   float64 // <= 0 means defaultRingOuter
}

// BodyParams are the construction parameters of a body.
type BodyParams struct {
	Kind      Kind
	Name      string
	Size      float64 // sphere radius
	Texture   string
	Offset    float64 // distance along +X from the orbit center
	SpinRate  float64 // radians per tick about the body's own axis
	OrbitRate float64 // radians per tick about the orbit center
	Color     render.Color
	Ring      *RingParams
}

// Ring is an annulus parented to a planet's mesh.
type Ring struct {
	RingParams
	Mesh *scene.Node
}

// Body is a star or planet. Mesh carries the sphere and spins; Node is the
// transform the mesh hangs from and revolves around the orbit center.
type Body struct {
	Kind      Kind
	Name      string
	Size      float64
	Texture   string
	Offset    float64
	SpinRate  float64
	OrbitRate float64
	Color     render.Color

	Mesh *scene.Node
	Node *scene.Node
	Ring *Ring // planets only

	tex TextureSource
}

func newBody(p BodyParams, tex TextureSource) *Body {
	b := &Body{
		Kind:      p.Kind,
		Name:      p.Name,
		Size:      p.Size,
		Texture:   p.Texture,
		Offset:    p.Offset,
		SpinRate:  p.SpinRate,
		OrbitRate: p.OrbitRate,
		Color:     p.Color,
		tex:       tex,
	}

	sphere := models.NewSphere(p.Size, models.SphereSegments, models.SphereSegments)
	sphere.Name = p.Name
	sphere.CalculateBounds()
	mat := render.Material{
		Texture: b.loadTexture(p.Texture),
		Unlit:   p.Kind == Star,
	}
	b.Mesh = scene.NewMesh(p.Name, sphere, mat)
	b.Mesh.Color = p.Color
	b.Mesh.Position = math3d.V3(p.Offset, 0, 0)

	b.Node = scene.New(p.Name)
	b.Node.Add(b.Mesh)

	if p.Ring != nil {
		b.AddRing(p.Ring.Texture, p.Ring.Inner, p.Ring.Outer)
	}
	return b
}

func (b *Body) loadTexture(id string) *render.Texture {
	if b.tex == nil {
		c := b.Color
		if c == (render.Color{}) {
			c = render.RGB(200, 200, 200)
		}
		return render.NewSolidTexture(c)
	}
	return b.tex.Load(id, b.Color)
}

// AddRing attaches a ring to a planet. An empty texture or a star body makes
// it a no-op. A second call replaces the previous ring.
func (b *Body) AddRing(texture string, inner, outer float64) {
	if texture == "" || b.Kind != Planet {
		return
	}
	if outer <= 0 {
		outer = defaultRingOuter
	}

	geom := models.NewRing(inner, outer, models.RingSegments)
	geom.Name = b.Name + "-ring"
	for i := range geom.Vertices {
		v := &geom.Vertices[i]
		if v.Position.Len() < ringSplitRadius {
			v.UV = math3d.V2(0, 1)
		} else {
			v.UV = math3d.V2(1, 1)
		}
	}
	geom.CalculateBounds()

	mat := render.Material{
		Texture:    b.loadTexture(texture),
		DoubleSide: true,
		AlphaTest:  0.1,
	}
	node := scene.NewMesh(geom.Name, geom, mat)
	node.Color = b.Color
	node.Rotation.X = math.Pi / 2

	if b.Ring != nil {
		b.Mesh.Remove(b.Ring.Mesh)
	}
	b.Mesh.Add(node)
	b.Ring = &Ring{
		RingParams: RingParams{Texture: texture, Inner: inner, Outer: outer},
		Mesh:       node,
	}
}

// Animate advances the body by one tick: spin, then revolve.
func (b *Body) Animate() {
	b.Mesh.RotateY(b.SpinRate)
	b.Node.RotateY(b.OrbitRate)
}

// Spin returns the accumulated axial rotation in radians.
func (b *Body) Spin() float64 { return b.Mesh.Rotation.Y }

// Orbit returns the accumulated revolution in radians.
func (b *Body) Orbit() float64 { return b.Node.Rotation.Y }

// Params returns the parameters the body was built from.
func (b *Body) Params() BodyParams {
	p := BodyParams{
		Kind:      b.Kind,
		Name:      b.Name,
		Size:      b.Size,
		Texture:   b.Texture,
		Offset:    b.Offset,
		SpinRate:  b.SpinRate,
		OrbitRate: b.OrbitRate,
		Color:     b.Color,
	}
	if b.Ring != nil {
		r := b.Ring.RingParams
		p.Ring = &r
	}
	return p
}

// WorldPosition returns the center of the body's sphere in world space.
func (b *Body) WorldPosition() math3d.Vec3 {
	return b.Mesh.WorldPosition()
}

func (b *Body) String() string {
	return fmt.Sprintf("%s %q", b.Kind, b.Name)
}
