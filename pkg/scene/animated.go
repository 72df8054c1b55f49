package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Build constructs the default animated scene for frame time t. All motion
// is sine/cosine of t; there is no randomness and no hidden state, so every
// invocation at the same t produces an identical scene.
func Build(t float64) Scene {
	// Surfaces
	glass := core.Surface{Color: core.NewVec3(1.0, 1.0, 1.0), Reflectivity: 0.3, Refractivity: 1.5}
	chrome := core.Surface{Color: core.NewVec3(0.9, 0.9, 0.95), Reflectivity: 0.9}
	matteRed := core.Surface{Color: core.NewVec3(0.85, 0.2, 0.15)}
	glossBlue := core.Surface{Color: core.NewVec3(0.2, 0.3, 0.8), Reflectivity: 0.2}
	floor := core.Surface{Color: core.NewVec3(0.75, 0.75, 0.7), Reflectivity: 0.1}
	wall := core.Surface{Color: core.NewVec3(0.6, 0.65, 0.7)}

	// A glass centerpiece bobbing in place, with the other spheres orbiting
	// it at different speeds and heights.
	const orbit = 2.2
	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0.3+0.2*math.Sin(t), -6), 1.0, glass),
		geometry.NewSphere(core.NewVec3(orbit*math.Cos(0.7*t), 0, -6+orbit*math.Sin(0.7*t)), 0.6, chrome),
		geometry.NewSphere(core.NewVec3(-orbit*math.Cos(0.5*t), -0.4, -6-orbit*math.Sin(0.5*t)), 0.5, matteRed),
		geometry.NewSphere(core.NewVec3(1.4*math.Sin(t), -0.7, -4.2), 0.3, glossBlue),
	}

	// Floor and back wall. Plane normals oppose the incoming view rays
	// (one-sided intersection convention); the shading normal is negated
	// back by the intersector.
	planes := []geometry.Plane{
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0), floor),
		geometry.NewPlane(core.NewVec3(0, 0, -14), core.NewVec3(0, 0, -1), wall),
	}

	lights := []geometry.Light{
		// Orbiting lamp, visible in the image as a glowing disc
		geometry.NewPositionalLight(core.NewVec3(
			3*math.Sin(0.9*t),
			2.5+0.5*math.Sin(1.3*t),
			-6+3*math.Cos(0.9*t),
		), 60),
		// Fixed key light from above and behind the camera
		geometry.NewDirectionalLight(core.NewVec3(-0.4, 1, 0.6), 0.5),
	}

	return Scene{Spheres: spheres, Planes: planes, Lights: lights}
}
