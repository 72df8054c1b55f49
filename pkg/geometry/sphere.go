package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere primitive
type Sphere struct {
	Center  core.Vec3
	Radius  float64
	Surface core.Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, surface core.Surface) Sphere {
	return Sphere{Center: center, Radius: radius, Surface: surface}
}

// Hit tests if a ray intersects with the sphere using the geometric method:
// project the center onto the ray, reject when the closest approach exceeds
// the radius, otherwise pick a root by the distance policy below.
func (s *Sphere) Hit(ray core.Ray) (*core.HitRecord, bool) {
	toCenter := s.Center.Subtract(ray.Origin)

	// Distance along the ray to the closest approach, and the squared
	// perpendicular distance from the center to the ray.
	t := toCenter.Dot(ray.Direction)
	perpSq := toCenter.LengthSquared() - t*t
	if perpSq > s.Radius*s.Radius {
		return nil, false
	}

	// Chord half-length gives the two candidate roots.
	x := math.Sqrt(s.Radius*s.Radius - perpSq)
	t1 := t - x
	t2 := t + x

	var root float64
	switch {
	case t2 < 0:
		// Sphere entirely behind the origin
		return nil, false
	case t1 < 0:
		// Origin is inside the sphere: only the exit root is ahead
		root = t2
	default:
		root = t1
	}

	point := ray.At(root)

	// Normal stays outward even on interior hits; the refraction exit
	// handling in the integrator relies on this.
	return &core.HitRecord{
		T:       root,
		Point:   point,
		Normal:  point.Subtract(s.Center).Multiply(1.0 / s.Radius),
		Surface: s.Surface,
	}, true
}
