package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// boxPadding keeps axis-aligned triangles from having zero-thickness bounding boxes
const boxPadding = 1e-4

// Triangle is a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.MaterialID
	normal     core.Vec3     // Geometric normal from the winding V0 -> V1 -> V2
	normals    *[3]core.Vec3 // Optional per-vertex normals for smooth shading
	uvs        *[3]core.Vec2 // Optional per-vertex texture coordinates
	bbox       core.AABB
}

// NewTriangle creates a flat-shaded triangle
func NewTriangle(v0, v1, v2 core.Vec3, material core.MaterialID) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
	t.bbox = pointsBoundingBox(v0, v1, v2)
	return t
}

// SetVertexNormals enables smooth shading with one normal per vertex
func (t *Triangle) SetVertexNormals(n0, n1, n2 core.Vec3) {
	t.normals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
}

// SetVertexUVs sets the texture coordinates interpolated across the triangle
func (t *Triangle) SetVertexUVs(uv0, uv1, uv2 core.Vec2) {
	t.uvs = &[3]core.Vec2{uv0, uv1, uv2}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle, or the triangle is degenerate
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
	}

	w := 1.0 - u - v
	outwardNormal := t.normal
	if t.normals != nil {
		smooth := t.normals[0].Multiply(w).Add(t.normals[1].Multiply(u)).Add(t.normals[2].Multiply(v)).Normalize()
		if !smooth.NearZero() {
			outwardNormal = smooth
		}
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	if t.uvs != nil {
		hitRecord.UV = core.NewVec2(
			w*t.uvs[0].X+u*t.uvs[1].X+v*t.uvs[2].X,
			w*t.uvs[0].Y+u*t.uvs[1].Y+v*t.uvs[2].Y,
		)
	} else {
		hitRecord.UV = core.NewVec2(u, v)
	}

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// pointsBoundingBox bounds a set of points, padded on every axis
func pointsBoundingBox(points ...core.Vec3) core.AABB {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = core.NewVec3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = core.NewVec3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	pad := core.NewVec3(boxPadding, boxPadding, boxPadding)
	return core.NewAABB(lo.Subtract(pad), hi.Add(pad))
}
