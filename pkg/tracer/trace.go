package tracer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TraceScene tests the ray against every sphere and plane and returns the
// globally nearest valid hit. The fold follows the replacement rule: the
// first positive-distance intersection replaces the miss, and a later one
// replaces the current best only when its distance is positive and strictly
// smaller.
func TraceScene(ray core.Ray, s *scene.Scene) (*core.HitRecord, bool) {
	var closest *core.HitRecord

	for i := range s.Spheres {
		if hit, ok := s.Spheres[i].Hit(ray); ok && closer(closest, hit) {
			closest = hit
		}
	}
	for i := range s.Planes {
		if hit, ok := s.Planes[i].Hit(ray); ok && closer(closest, hit) {
			closest = hit
		}
	}

	return closest, closest != nil
}

func closer(best, candidate *core.HitRecord) bool {
	if candidate.T <= 0 {
		return false
	}
	return best == nil || candidate.T < best.T
}

// TraceLights sums the glow intensity of every positional light that lies
// closer to the ray origin than maxDist. Pass +Inf when the scene trace
// missed. This is independent of primitive selection: a light glows through
// any empty stretch of the ray up to the nearest hit.
func TraceLights(ray core.Ray, s *scene.Scene, maxDist float64) float64 {
	total := 0.0
	for i := range s.Lights {
		total += s.Lights[i].Glow(ray, maxDist)
	}
	return total
}
