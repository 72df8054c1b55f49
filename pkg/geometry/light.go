package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Light is either positional or directional. A zero Direction marks a
// positional (spherical) light: it attenuates with inverse-square falloff
// and is itself visible as a glowing disc of radius Brightness/100. A
// nonzero Direction marks a directional light with no falloff and no disc;
// Direction points from shaded points toward the light.
type Light struct {
	Position   core.Vec3
	Brightness float64
	Direction  core.Vec3
}

// NewPositionalLight creates a positional light at the given world position
func NewPositionalLight(position core.Vec3, brightness float64) Light {
	return Light{Position: position, Brightness: brightness}
}

// NewDirectionalLight creates a directional light. The direction points
// toward the light and is normalized here.
func NewDirectionalLight(direction core.Vec3, brightness float64) Light {
	return Light{Direction: direction.Normalize(), Brightness: brightness}
}

// Directional reports whether the light is directional
func (l *Light) Directional() bool {
	return l.Direction != (core.Vec3{})
}

// Glow returns the visible-disc intensity of a positional light along the
// ray, in [0,1], with a soft edge between 80% and 100% of the disc radius.
// The light only shows through empty space: it contributes nothing when it
// lies at or beyond maxDist from the ray origin. Directional lights have no
// disc and always return 0. This is a visibility test for rendering the
// glow, not a geometric intersection.
func (l *Light) Glow(ray core.Ray, maxDist float64) float64 {
	if l.Directional() {
		return 0
	}

	toLight := l.Position.Subtract(ray.Origin)
	if toLight.Length() >= maxDist {
		return 0
	}

	// Closest approach of the ray to the light position
	t := toLight.Dot(ray.Direction)
	if t < 0 {
		return 0
	}
	perp := math.Sqrt(math.Max(0, toLight.LengthSquared()-t*t))

	radius := l.Brightness / 100
	if perp >= radius {
		return 0
	}
	inner := 0.8 * radius
	if perp <= inner {
		return 1
	}
	return (radius - perp) / (radius - inner)
}
