package lights

import "github.com/df07/go-raytracer/pkg/core"

// Light contributes direct illumination at a surface point.
// Lights are independent of geometry and are not occluded.
type Light interface {
	// Illuminate returns the light arriving at point on a surface with the
	// given unit normal. Surfaces facing away from the light receive black.
	Illuminate(point, normal core.Vec3) core.Vec3
}

// TotalIllumination sums the contribution of every light at a point
func TotalIllumination(lights []Light, point, normal core.Vec3) core.Vec3 {
	total := core.Vec3{}
	for _, light := range lights {
		total = total.Add(light.Illuminate(point, normal))
	}
	return total
}
