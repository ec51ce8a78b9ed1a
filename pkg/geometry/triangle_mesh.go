package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrInvalidMesh is wrapped by errors describing inconsistent mesh data
var ErrInvalidMesh = errors.New("invalid mesh")

// TriangleMesh is a collection of triangles answered through an internal BVH
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation.
// Vertices are scaled, then rotated around the origin (radians, X then Y then Z),
// then translated.
type TriangleMeshOptions struct {
	Normals   []core.Vec3 // Optional per-vertex normals, enables smooth shading
	TexCoords []core.Vec2 // Optional per-vertex texture coordinates
	Scale     float64     // Uniform scale, 0 means 1
	Rotation  core.Vec3
	Translate core.Vec3
}

// NewTriangleMesh creates a mesh from vertices and face indices (3 per triangle).
// options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.MaterialID, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a positive multiple of 3", ErrInvalidMesh, len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(options.Normals), len(vertices))
	}
	if options.TexCoords != nil && len(options.TexCoords) != len(vertices) {
		return nil, fmt.Errorf("%w: %d texture coordinates for %d vertices", ErrInvalidMesh, len(options.TexCoords), len(vertices))
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}
	transformed := make([]core.Vec3, len(vertices))
	for i, vertex := range vertices {
		vertex = rotateVertex(vertex.Multiply(scale), options.Rotation)
		transformed[i] = vertex.Add(options.Translate)
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, index := range [3]int{i0, i1, i2} {
			if index < 0 || index >= len(transformed) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i/3, index, len(transformed))
			}
		}

		triangle := NewTriangle(transformed[i0], transformed[i1], transformed[i2], material)
		if options.Normals != nil {
			triangle.SetVertexNormals(
				rotateVertex(options.Normals[i0], options.Rotation),
				rotateVertex(options.Normals[i1], options.Rotation),
				rotateVertex(options.Normals[i2], options.Rotation),
			)
		}
		if options.TexCoords != nil {
			triangle.SetVertexUVs(options.TexCoords[i0], options.TexCoords[i1], options.TexCoords[i2])
		}
		triangles = append(triangles, triangle)
	}

	hittables := make([]core.Hittable, len(triangles))
	bbox := triangles[0].BoundingBox()
	for i, triangle := range triangles {
		hittables[i] = triangle
		bbox = bbox.Union(triangle.BoundingBox())
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(hittables),
		bbox:      bbox,
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
