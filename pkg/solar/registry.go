package solar

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/scene"
)

// RootName is the name of the container node.
const RootName = "solar-system"

// Registry is an ordered set of bodies sharing one container node.
// It is not safe for concurrent use.
type Registry struct {
	bodies []*Body
	root   *scene.Node
	tex    TextureSource
}

// NewRegistry creates an empty registry. tex may be nil, in which case
// bodies are drawn in their flat color.
func NewRegistry(tex TextureSource) *Registry {
	return &Registry{
		root: scene.New(RootName),
		tex:  tex,
	}
}

// Create builds a body, appends it and attaches its transform node to the
// container. Names are not required to be unique.
func (r *Registry) Create(p BodyParams) *Body {
	b := newBody(p, r.tex)
	r.bodies = append(r.bodies, b)
	r.root.Add(b.Node)
	return b
}

// CreateSun adds a star.
func (r *Registry) CreateSun(size float64, texture string, offset float64, name string, spin, orbit float64) *Body {
	return r.Create(BodyParams{
		Kind: Star, Name: name, Size: size, Texture: texture, Offset: offset,
		SpinRate: spin, OrbitRate: orbit,
	})
}

// CreatePlanet adds a planet without a ring.
func (r *Registry) CreatePlanet(size float64, texture string, offset float64, name string, spin, orbit float64) *Body {
	return r.Create(BodyParams{
		Kind: Planet, Name: name, Size: size, Texture: texture, Offset: offset,
		SpinRate: spin, OrbitRate: orbit,
	})
}

// CreatePlanetWithRing adds a planet and gives it a ring. An empty
// ringTexture yields a plain planet; outer <= 0 uses the default outer radius.
func (r *Registry) CreatePlanetWithRing(size float64, texture string, offset float64, name string,
	spin, orbit float64, ringTexture string, inner, outer float64,
) *Body {
	return r.Create(BodyParams{
		Kind: Planet, Name: name, Size: size, Texture: texture, Offset: offset,
		SpinRate: spin, OrbitRate: orbit,
		Ring: &RingParams{Texture: ringTexture, Inner: inner, Outer: outer},
	})
}

// AnimateAll advances every body by one tick in insertion order.
func (r *Registry) AnimateAll() {
	for _, b := range r.bodies {
		b.Animate()
	}
}

// UpdatePosition moves the container to (x, y). With no argument it returns
// to the origin; extra arguments are ignored.
func (r *Registry) UpdatePosition(offset ...math3d.Vec2) {
	var p math3d.Vec2
	if len(offset) > 0 {
		p = offset[0]
	}
	r.root.Position.X = p.X
	r.root.Position.Y = p.Y
}

// Position returns the container's x/y position.
func (r *Registry) Position() math3d.Vec2 {
	return math3d.V2(r.root.Position.X, r.root.Position.Y)
}

// Root returns the container node for attaching to a scene.
func (r *Registry) Root() *scene.Node { return r.root }

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (r *Registry) Bodies() []*Body { return r.bodies }

// Len returns the number of bodies.
func (r *Registry) Len() int { return len(r.bodies) }

// Find returns the first body named name.
func (r *Registry) Find(name string) (*Body, bool) {
	for _, b := range r.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// BodyForMesh returns the body whose sphere or ring is n.
func (r *Registry) BodyForMesh(n *scene.Node) (*Body, bool) {
	if n == nil {
		return nil, false
	}
	for _, b := range r.bodies {
		if b.Mesh == n || (b.Ring != nil && b.Ring.Mesh == n) {
			return b, true
		}
	}
	return nil, false
}

// Triangles returns the total triangle count of all body and ring meshes.
func (r *Registry) Triangles() int {
	total := 0
	for _, b := range r.bodies {
		total += b.Mesh.Mesh.TriangleCount()
		if b.Ring != nil {
			total += b.Ring.Mesh.Mesh.TriangleCount()
		}
	}
	return total
}
