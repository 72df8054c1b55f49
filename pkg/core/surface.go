package core

// Surface describes how a primitive responds to light. Color channels are in
// [0,1]. Reflectivity 0 is fully diffuse. Refractivity 0 means opaque; any
// other value is the relative index of refraction used for Snell's law.
type Surface struct {
	Color        Vec3
	Reflectivity float64
	Refractivity float64
}

// HitRecord describes a ray-primitive intersection. A miss is represented by
// the (*HitRecord, bool) return convention of the Hit methods, never by a
// sentinel value of T: a legitimate hit at T == 0 stays representable.
type HitRecord struct {
	T       float64 // signed distance along the ray
	Point   Vec3    // intersection point
	Normal  Vec3    // unit surface normal at the hit
	Surface Surface // surface of the hit primitive
}
