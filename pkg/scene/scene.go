package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene is an immutable snapshot of the primitives and lights for one frame
// time. It is read-only for the lifetime of a pixel computation and carries
// no state across frames.
type Scene struct {
	Spheres []geometry.Sphere
	Planes  []geometry.Plane
	Lights  []geometry.Light
}

// Builder produces the scene snapshot for a frame time. Builders must be
// pure: the same t always yields a bit-identical scene, so workers can
// rebuild privately instead of sharing mutable state.
type Builder func(t float64) Scene
