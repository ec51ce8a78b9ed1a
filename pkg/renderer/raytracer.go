package renderer

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// shadowAcneEpsilon keeps secondary rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// Raytracer computes the color carried by a single ray. It only reads the
// scene, so one Raytracer can be shared by all workers.
type Raytracer struct {
	world            core.Hittable
	materials        *material.Arena
	lights           []lights.Light
	maxDepth         int
	backgroundTop    core.Vec3
	backgroundBottom core.Vec3
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world core.Hittable, materials *material.Arena, sceneLights []lights.Light, config RenderConfig) *Raytracer {
	return &Raytracer{
		world:            world,
		materials:        materials,
		lights:           sceneLights,
		maxDepth:         config.MaxDepth,
		backgroundTop:    config.BackgroundTop,
		backgroundBottom: config.BackgroundBottom,
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return rt.backgroundBottom.Lerp(rt.backgroundTop, t)
}

// RayColor returns the linear color for a ray that has already bounced depth times.
// Camera rays start at depth 0. A ray that reaches MaxDepth sees only the
// background; beyond it nothing is gathered.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth > rt.maxDepth {
		return core.Vec3{}
	}

	// Out of bounces: the ray escapes to the sky without touching the scene.
	// MaxDepth 0 therefore renders the pure gradient, and a fully enclosed
	// camera still receives sky light attenuated by MaxDepth bounces.
	if depth == rt.maxDepth {
		return rt.backgroundGradient(r)
	}

	hit, isHit := rt.world.Hit(r, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	mat, ok := rt.materials.Get(hit.Material)
	if !ok {
		return core.Vec3{}
	}

	scatter, didScatter := mat.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{} // Material absorbed the ray
	}

	incoming := rt.RayColor(scatter.Scattered, depth+1, sampler)
	if !scatter.Specular {
		incoming = incoming.Add(lights.TotalIllumination(rt.lights, hit.Point, hit.Normal))
	}

	return scatter.Attenuation.MultiplyVec(incoming)
}
