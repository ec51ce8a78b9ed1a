package lights

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// PointLight emits light equally in all directions from a single position
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3 // Intensity per channel
	Falloff  bool      // Attenuate by 1/(1+d²)
}

// NewPointLight creates a point light without distance falloff
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// NewPointLightWithFalloff creates a point light whose intensity drops with distance
func NewPointLightWithFalloff(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color, Falloff: true}
}

// Illuminate implements the Light interface
func (p *PointLight) Illuminate(point, normal core.Vec3) core.Vec3 {
	toLight := p.Position.Subtract(point)

	// Light positioned exactly at the surface has no defined direction
	direction := toLight.Normalize()
	cosine := math.Max(0, direction.Dot(normal))
	if cosine == 0 {
		return core.Vec3{}
	}

	intensity := cosine
	if p.Falloff {
		intensity /= 1 + toLight.LengthSquared()
	}
	return p.Color.Multiply(intensity)
}
