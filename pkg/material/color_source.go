package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two color sources in a 3D grid of cubes
// with edge length Scale
type CheckerTexture struct {
	Scale float64
	Even  ColorSource
	Odd   ColorSource
}

// NewCheckerTexture creates a checker pattern. A non-positive scale is treated as 1.
func NewCheckerTexture(scale float64, even, odd ColorSource) *CheckerTexture {
	if scale <= 0 {
		scale = 1
	}
	return &CheckerTexture{Scale: scale, Even: even, Odd: odd}
}

// Evaluate picks Even or Odd from the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	inv := 1.0 / c.Scale
	x := int(math.Floor(point.X * inv))
	y := int(math.Floor(point.Y * inv))
	z := int(math.Floor(point.Z * inv))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
