package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// frontFaceEpsilon rejects near-grazing rays before the plane division.
const frontFaceEpsilon = 1e-3

// Plane represents a one-sided infinite plane defined by a point and normal.
// Rays intersect only when they approach the front face: the ray direction
// must oppose the shading normal, i.e. dot(Normal, direction) > epsilon.
type Plane struct {
	Point   core.Vec3 // a point on the plane
	Normal  core.Vec3 // unit normal
	Surface core.Surface
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, surface core.Surface) Plane {
	return Plane{Point: point, Normal: normal.Normalize(), Surface: surface}
}

// Hit tests if a ray intersects with the front face of the plane
func (p *Plane) Hit(ray core.Ray) (*core.HitRecord, bool) {
	facing := p.Normal.Dot(ray.Direction)
	if facing <= frontFaceEpsilon {
		return nil, false
	}

	dist := p.Point.Subtract(ray.Origin).Dot(p.Normal) / facing
	if dist < 0 {
		return nil, false
	}

	return &core.HitRecord{
		T:       dist,
		Point:   ray.At(dist),
		Normal:  p.Normal.Negate(), // faces the incoming ray
		Surface: p.Surface,
	}, true
}
