package solar

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// BodyState is a body's parameters plus its accumulated angles.
type BodyState struct {
	BodyParams
	Spin  float64
	Orbit float64
}

// Snapshot is a value copy of a registry. It shares nothing with the
// registry it was taken from.
type Snapshot struct {
	Position math3d.Vec2
	Bodies   []BodyState
}

// Snapshot captures the registry's bodies, angles and container position.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Position: r.Position(),
		Bodies:   make([]BodyState, 0, len(r.bodies)),
	}
	for _, b := range r.bodies {
		s.Bodies = append(s.Bodies, BodyState{BodyParams: b.Params(), Spin: b.Spin(), Orbit: b.Orbit()})
	}
	return s
}

// FromSnapshot builds a new registry with fresh nodes from s.
func FromSnapshot(s Snapshot, tex TextureSource) *Registry {
	r := NewRegistry(tex)
	for _, st := range s.Bodies {
		b := r.Create(st.BodyParams)
		b.Mesh.Rotation.Y = st.Spin
		b.Node.Rotation.Y = st.Orbit
	}
	r.UpdatePosition(s.Position)
	return r
}

// RestoreAngles copies accumulated angles from s onto bodies with the same
// name and kind, matching the n-th such body in s to the n-th in r.
// It returns how many bodies were restored.
func (r *Registry) RestoreAngles(s Snapshot) int {
	type key struct {
		kind Kind
		name string
	}
	states := make(map[key][]BodyState)
	for _, st := range s.Bodies {
		k := key{st.Kind, st.Name}
		states[k] = append(states[k], st)
	}
	restored := 0
	for _, b := range r.bodies {
		k := key{b.Kind, b.Name}
		queue := states[k]
		if len(queue) == 0 {
			continue
		}
		b.Mesh.Rotation.Y = queue[0].Spin
		b.Node.Rotation.Y = queue[0].Orbit
		states[k] = queue[1:]
		restored++
	}
	return restored
}
