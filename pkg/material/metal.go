package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   ColorSource // Metal color, solid or textured
	Fuzzness float64     // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material with a solid color. Albedo is
// clamped to [0, 1] and fuzzness to [0, 1].
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo.Clamp(0, 1)), fuzzness)
}

// NewTexturedMetal creates a metal whose color comes from a texture
func NewTexturedMetal(albedoTexture ColorSource, fuzzness float64) *Metal {
	return &Metal{
		Albedo:   albedoTexture,
		Fuzzness: max(0, min(1, fuzzness)),
	}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}

	scattered := core.NewRay(hit.Point, reflected)

	// A fuzzed reflection pointing into the surface is absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo.Evaluate(hit.UV, hit.Point).Clamp(0, 1),
		Specular:    true,
	}, true
}
