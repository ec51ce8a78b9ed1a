package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	s := NewScene("default")

	s.Config.Camera = renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	s.SetWidth(400)
	s.Config.SamplesPerPixel = 100
	s.Config.MaxDepth = 50

	// Create materials
	checkerGround := s.Materials.AddNamed("ground", material.NewTexturedLambertian(
		material.NewCheckerTexture(0.5,
			material.NewSolidColor(core.NewVec3(0.48, 0.48, 0.0)),
			material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)))))
	lambertianBlue := s.Materials.AddNamed("blue", material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	lambertianRed := s.Materials.AddNamed("red", material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	metalSilver := s.Materials.AddNamed("silver", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	metalGold := s.Materials.AddNamed("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := s.Materials.AddNamed("glass", material.NewDielectric(1.5))

	s.AddObject(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),

		// Hollow glass sphere with a blue sphere inside
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),

		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), checkerGround),
	)

	// Warm key light high and to the side
	s.AddLight(lights.NewPointLight(core.NewVec3(30, 30.5, 15), core.NewVec3(0.35, 0.33, 0.3)))

	s.Preprocess()
	return s
}

// NewSingleSphereScene creates the smallest useful scene: one diffuse sphere
// in front of a camera at the origin, lit only by the sky
func NewSingleSphereScene() *Scene {
	s := NewScene("single")

	s.Config.Camera = renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	}
	s.SetWidth(200)
	s.Config.SamplesPerPixel = 20
	s.Config.MaxDepth = 10

	diffuse := s.Materials.AddNamed("diffuse", material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, diffuse))

	s.Preprocess()
	return s
}
