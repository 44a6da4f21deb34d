package solar

import (
	"fortio.org/log"
	"github.com/taigrr/orrery/pkg/config"
)

// Build creates a registry holding every body of sys in file order.
// Bodies with an unknown kind are built as planets.
func Build(sys *config.System, tex TextureSource) *Registry {
	r := NewRegistry(tex)
	for _, cb := range sys.Bodies {
		r.Create(Params(cb))
	}
	return r
}

// Params converts a configured body to construction parameters.
func Params(cb config.Body) BodyParams {
	kind, err := ParseKind(cb.Kind)
	if err != nil {
		log.Warnf("Body %q: %v, treating as planet", cb.Name, err)
		kind = Planet
	}
	p := BodyParams{
		Kind:      kind,
		Name:      cb.Name,
		Size:      cb.Size,
		Texture:   cb.Texture,
		Offset:    cb.Offset,
		SpinRate:  cb.Spin,
		OrbitRate: cb.Orbit,
		Color:     cb.ColorValue(),
	}
	if cb.Ring != nil {
		p.Ring = &RingParams{Texture: cb.Ring.Texture, Inner: cb.Ring.Inner, Outer: cb.Ring.Outer}
	}
	return p
}
