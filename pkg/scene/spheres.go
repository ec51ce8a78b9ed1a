package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSpheresScene creates a field of small random spheres around three large
// ones. The layout depends only on seed.
func NewSpheresScene(seed int64) *Scene {
	s := NewScene("spheres")

	s.Config.Camera = renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}
	s.SetWidth(600)
	s.Config.SamplesPerPixel = 50
	s.Config.MaxDepth = 40

	random := rand.New(rand.NewSource(seed))

	ground := s.Materials.AddNamed("ground", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	glass := s.Materials.AddNamed("glass", material.NewDielectric(1.5))
	brown := s.Materials.AddNamed("brown", material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	bronze := s.Materials.AddNamed("bronze", material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.AddObject(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, brown),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, bronze),
	)

	for i := -11; i < 11; i++ {
		for j := -11; j < 11; j++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(i)+0.9*random.Float64(),
				0.2,
				float64(j)+0.9*random.Float64(),
			)

			// Keep clear of the large metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var id core.MaterialID
			switch {
			case chooseMat < 0.8:
				hue := random.Float64() * 360
				chroma := 0.05 + 0.2*random.Float64()
				id = s.Materials.Add(material.NewLambertian(oklchToRGB(0.65, chroma, hue)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(0.5+0.5*random.Float64(), 0.5+0.5*random.Float64(), 0.5+0.5*random.Float64())
				id = s.Materials.Add(material.NewMetal(albedo, 0.5*random.Float64()))
			default:
				id = glass
			}

			s.AddObject(geometry.NewSphere(center, 0.2, id))
		}
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewVec3(0.3, 0.29, 0.27)))

	s.Preprocess()
	return s
}
