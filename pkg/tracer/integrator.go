package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// maxBounces is a hard depth cutoff; there is no convergence test.
	maxBounces = 10
	// offsetEpsilon nudges secondary rays off the surface they spawned from.
	offsetEpsilon = 1e-3
	// gamma for the final encoding of each channel: c^(1/gamma).
	gamma = 2.2
)

// Shade computes the gamma-encoded color carried by a primary ray. It is the
// integrator: a bounded loop over bounce depth carrying an explicit state of
// (color, mask, prevAttenuation) instead of recursion.
//
//   - color accumulates the output across bounces and is otherwise unclamped
//     until gamma encoding.
//   - mask is the running component-wise product of Fresnel terms; it
//     attenuates the direct lighting of later bounces.
//   - prevAttenuation is the previous bounce's reflectivity and weights the
//     current bounce's direct-lighting contribution.
func Shade(ray core.Ray, s *scene.Scene) core.Vec3 {
	one := core.NewVec3(1, 1, 1)

	color := core.Vec3{}
	mask := one
	prevAttenuation := 1.0

	for bounce := 0; bounce < maxBounces; bounce++ {
		hit, ok := TraceScene(ray, s)

		// Positional lights glow through the empty stretch of the ray,
		// whether or not a primitive was hit.
		maxDist := math.Inf(1)
		if ok {
			maxDist = hit.T
		}
		glow := TraceLights(ray, s, maxDist)
		color = color.Add(core.NewVec3(glow, glow, glow))

		if !ok {
			break // ray left the scene
		}

		surface := hit.Surface

		// Schlick's approximation with r0 from the surface color scaled by
		// reflectivity. The direct-lighting weight below is
		// (1-fresnel)*mask/fresnel evaluated against the updated mask, which
		// is exactly (1-fresnel) times the mask before the update; computing
		// it that way keeps it finite at normal incidence on diffuse
		// surfaces where fresnel is zero.
		r0 := surface.Color.Multiply(surface.Reflectivity)
		cosTheta := clamp(hit.Normal.Dot(ray.Direction.Negate()), 0, 1)
		fresnel := r0.Add(one.Subtract(r0).Multiply(math.Pow(1-cosTheta, 5)))
		weight := one.Subtract(fresnel).MultiplyVec(mask)
		mask = mask.MultiplyVec(fresnel)

		shaded := directLighting(hit, s, weight)

		if surface.Refractivity == 0 {
			color = color.Add(shaded.Multiply(prevAttenuation))
			if surface.Reflectivity == 0 {
				break // diffuse absorption
			}
			reflected := reflect(ray.Direction, hit.Normal)
			ray = core.NewRay(hit.Point.Add(reflected.Multiply(offsetEpsilon)), reflected)
			prevAttenuation = surface.Reflectivity
			continue
		}

		// Refractive surfaces contribute no local diffuse term: the direct
		// lighting computed above is dropped and only the glow accumulates.
		ray = refractRay(ray, hit, surface.Refractivity)
	}

	return color.GammaCorrect(gamma)
}

// directLighting computes the shadow-tested contribution of every light at
// the hit point. weight is the Fresnel compensation applied to positional
// lights; directional lights carry no compensation term.
func directLighting(hit *core.HitRecord, s *scene.Scene, weight core.Vec3) core.Vec3 {
	surface := hit.Surface
	shaded := core.Vec3{}

	for i := range s.Lights {
		light := &s.Lights[i]

		if light.Directional() {
			if inShadow(hit.Point, light.Direction, math.Inf(1), s) {
				continue
			}
			contribution := clamp(
				math.Max(0, hit.Normal.Dot(light.Direction))*light.Brightness*(1-surface.Reflectivity),
				0, 1)
			shaded = shaded.Add(surface.Color.Multiply(contribution))
			continue
		}

		toLight := light.Position.Subtract(hit.Point)
		lightDist := toLight.Length()
		lightDir := toLight.Multiply(1 / lightDist)

		// Each light is shadow-tested against its own distance.
		if inShadow(hit.Point, lightDir, lightDist, s) {
			continue
		}

		attenuation := light.Brightness / (lightDist * lightDist)
		contribution := clamp(
			attenuation*math.Max(0, hit.Normal.Dot(lightDir))*(1-surface.Reflectivity),
			0, 1)
		shaded = shaded.Add(surface.Color.Multiply(contribution).MultiplyVec(weight))
	}

	return shaded
}

// inShadow casts a shadow ray from point toward the light, offset by epsilon
// along the sample direction. The point is lit only if the nearest hit is a
// miss or lies beyond the light.
func inShadow(point, dir core.Vec3, lightDist float64, s *scene.Scene) bool {
	shadowRay := core.NewRay(point.Add(dir.Multiply(offsetEpsilon)), dir)
	hit, ok := TraceScene(shadowRay, s)
	return ok && hit.T < lightDist
}

// reflect mirrors v about the surface normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refractRay spawns the Snell-refracted continuation of a ray through the
// hit. The sign of dot(direction, normal) decides entering versus exiting:
// entering inverts the refraction ratio, exiting flips the outward normal.
// The new origin is offset by -epsilon along the (possibly flipped) normal,
// pushing it just past the surface being crossed.
func refractRay(ray core.Ray, hit *core.HitRecord, index float64) core.Ray {
	normal := hit.Normal
	var ratio float64

	cosIn := ray.Direction.Dot(normal)
	if cosIn < 0 {
		// Entering the medium
		cosIn = -cosIn
		ratio = 1 / index
	} else {
		// Exiting: the outward normal faces away from the ray
		normal = normal.Negate()
		ratio = index
	}

	// math.Abs instead of rejecting total internal reflection: degenerate
	// inputs propagate as wrong but finite output, never a crash.
	cosOut := math.Sqrt(math.Abs(1 - ratio*ratio*(1-cosIn*cosIn)))
	refracted := ray.Direction.Multiply(ratio).
		Add(normal.Multiply(ratio*cosIn - cosOut)).
		Normalize()

	return core.NewRay(hit.Point.Subtract(normal.Multiply(offsetEpsilon)), refracted)
}

func clamp(v, minVal, maxVal float64) float64 {
	return max(minVal, min(maxVal, v))
}
