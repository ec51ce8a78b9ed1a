package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3       // A point on the plane
	Normal   core.Vec3       // Unit normal
	Material core.MaterialID // Material of the plane

	tangent, bitangent core.Vec3 // in-plane basis for texture coordinates
}

// NewPlane creates a new plane. The normal is normalized here.
func NewPlane(point, normal core.Vec3, material core.MaterialID) *Plane {
	n := normal.Normalize()

	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = core.NewVec3(0, 0, 1)
	}
	tangent := helper.Cross(n).Normalize()

	return &Plane{
		Point:     point,
		Normal:    n,
		Material:  material,
		tangent:   tangent,
		bitangent: n.Cross(tangent),
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel to the plane (or a degenerate plane with no normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(p.Point)

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		UV:       core.NewVec2(local.Dot(p.tangent), local.Dot(p.bitangent)),
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

// BoundingBox returns a large box around the plane, thin along its axis when axis-aligned
func (p *Plane) BoundingBox() core.AABB {
	const largeValue = 1e6
	const epsilon = 0.001

	lo := core.NewVec3(-largeValue, -largeValue, -largeValue)
	hi := core.NewVec3(largeValue, largeValue, largeValue)

	switch {
	case math.Abs(p.Normal.X) > 0.999:
		lo.X, hi.X = p.Point.X-epsilon, p.Point.X+epsilon
	case math.Abs(p.Normal.Y) > 0.999:
		lo.Y, hi.Y = p.Point.Y-epsilon, p.Point.Y+epsilon
	case math.Abs(p.Normal.Z) > 0.999:
		lo.Z, hi.Z = p.Point.Z-epsilon, p.Point.Z+epsilon
	}

	return core.NewAABB(lo, hi)
}
