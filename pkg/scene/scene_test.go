package scene

import (
	"reflect"
	"testing"
)

func TestBuild_Deterministic(t *testing.T) {
	// The builder is pure: workers rebuild the scene per tile and rely on
	// every rebuild at the same time being bit-identical.
	times := []float64{0, 0.5, 1.7, 123.456}

	for _, tm := range times {
		a := Build(tm)
		b := Build(tm)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Build(%f) differs between invocations", tm)
		}
	}
}

func TestBuild_Composition(t *testing.T) {
	s := Build(0)

	if len(s.Spheres) != 4 {
		t.Errorf("Expected 4 spheres, got %d", len(s.Spheres))
	}
	if len(s.Planes) != 2 {
		t.Errorf("Expected 2 planes, got %d", len(s.Planes))
	}
	if len(s.Lights) != 2 {
		t.Errorf("Expected 2 lights, got %d", len(s.Lights))
	}

	directional := 0
	for _, light := range s.Lights {
		if light.Directional() {
			directional++
		}
	}
	if directional != 1 {
		t.Errorf("Expected exactly one directional light, got %d", directional)
	}
}

func TestBuild_TimeDrivesMotion(t *testing.T) {
	a := Build(0)
	b := Build(1.0)

	moved := false
	for i := range a.Spheres {
		if a.Spheres[i].Center != b.Spheres[i].Center {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected sphere positions to change with time")
	}

	// Static geometry stays put.
	for i := range a.Planes {
		if !reflect.DeepEqual(a.Planes[i], b.Planes[i]) {
			t.Errorf("Plane %d moved between frames", i)
		}
	}
}
