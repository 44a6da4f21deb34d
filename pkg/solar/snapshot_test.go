package solar

import (
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestSnapshotRoundTrip(t *testing.T) {
	r, tex := newSystem(t)
	for range 7 {
		r.AnimateAll()
	}
	r.UpdatePosition(math3d.V2(3, -4))

	s := r.Snapshot()
	if len(s.Bodies) != r.Len() {
		t.Fatalf("snapshot has %d bodies, want %d", len(s.Bodies), r.Len())
	}
	restored := FromSnapshot(s, tex)

	if restored.Len() != r.Len() {
		t.Fatalf("restored Len = %d", restored.Len())
	}
	if restored.Position() != math3d.V2(3, -4) {
		t.Errorf("position = %v", restored.Position())
	}
	for i, b := range restored.Bodies() {
		orig := r.Bodies()[i]
		if b == orig || b.Mesh == orig.Mesh || b.Node == orig.Node {
			t.Errorf("%s shares state with the source registry", b)
		}
		if b.Name != orig.Name || b.Kind != orig.Kind || b.SpinRate != orig.SpinRate {
			t.Errorf("body %d = %+v", i, b.Params())
		}
		if b.Spin() != orig.Spin() || b.Orbit() != orig.Orbit() {
			t.Errorf("%s angles = %v/%v, want %v/%v", b, b.Spin(), b.Orbit(), orig.Spin(), orig.Orbit())
		}
		if !b.WorldPosition().ApproxEqual(orig.WorldPosition(), 1e-9) {
			t.Errorf("%s at %v, want %v", b, b.WorldPosition(), orig.WorldPosition())
		}
		if (b.Ring == nil) != (orig.Ring == nil) {
			t.Errorf("%s ring mismatch", b)
		}
	}

	// The copies evolve independently.
	restored.AnimateAll()
	if r.Bodies()[1].Spin() == restored.Bodies()[1].Spin() {
		t.Error("animating the restored registry changed the source registry")
	}
	s.Bodies[2].Ring.Inner = 99
	if r.Bodies()[2].Ring.Inner == 99 {
		t.Error("snapshot aliases ring params")
	}
}

func TestRestoreAngles(t *testing.T) {
	old, _ := newSystem(t)
	for range 3 {
		old.AnimateAll()
	}
	s := old.Snapshot()

	fresh := NewRegistry(nil)
	fresh.CreatePlanet(6, "earth.jpg", 70, "earth", 0.5, 0.5) // same name, new params
	fresh.CreatePlanet(1, "moon.jpg", 5, "moon", 0, 0)
	fresh.CreateSun(16, "sun.jpg", 0, "sun", 0, 0)

	if n := fresh.RestoreAngles(s); n != 2 {
		t.Errorf("restored %d bodies, want 2", n)
	}
	earth, _ := fresh.Find("earth")
	oldEarth, _ := old.Find("earth")
	if earth.Spin() != oldEarth.Spin() || earth.Orbit() != oldEarth.Orbit() {
		t.Errorf("earth angles not carried over")
	}
	if earth.SpinRate != 0.5 {
		t.Error("RestoreAngles must keep the new parameters")
	}
	moon, _ := fresh.Find("moon")
	if moon.Spin() != 0 {
		t.Error("unmatched body changed")
	}
}
