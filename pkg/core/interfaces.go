package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// MaterialID is a handle into a material arena. Geometry stores the handle,
// never the material itself, so many primitives can share one material.
type MaterialID int

// NoMaterial marks a hit record whose surface has no material assigned
const NoMaterial MaterialID = -1

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3       // Point of intersection
	Normal    Vec3       // Unit surface normal, always facing against the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // True when the ray hit the outside of the surface
	Material  MaterialID // Material of the hit object
	UV        Vec2       // Surface texture coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can intersect: a primitive or an aggregate of primitives.
// Hit reports the nearest intersection with t in [tMin, tMax].
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}
