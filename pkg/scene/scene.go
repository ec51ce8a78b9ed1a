package scene

import (
	"errors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name matches no builtin or file
var ErrUnknownScene = errors.New("unknown scene")

// ErrInvalidScene is wrapped by errors describing malformed scene files
var ErrInvalidScene = errors.New("invalid scene")

// bvhThreshold is the object count above which the world is wrapped in a BVH
const bvhThreshold = 8

// Scene contains all the elements needed for rendering
type Scene struct {
	Name      string
	Objects   []core.Hittable    // Top-level primitives
	World     core.Hittable      // Aggregate built from Objects by Preprocess
	Materials *material.Arena    // Materials referenced by the objects
	Lights    []lights.Light     // Lights in the scene
	Config    renderer.RenderConfig
}

// NewScene creates an empty scene with default render settings
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Materials: material.NewArena(),
		Config:    renderer.DefaultRenderConfig(),
	}
}

// AddObject adds primitives to the scene
func (s *Scene) AddObject(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight adds lights to the scene
func (s *Scene) AddLight(sceneLights ...lights.Light) {
	s.Lights = append(s.Lights, sceneLights...)
}

// Preprocess prepares the scene for rendering by building the world aggregate.
// Small scenes use a flat list; larger ones get a BVH.
func (s *Scene) Preprocess() {
	if len(s.Objects) > bvhThreshold {
		s.World = geometry.NewBVH(s.Objects)
	} else {
		s.World = geometry.NewHittableList(s.Objects...)
	}
}

// SetImageSize sets the output width and height and keeps the camera
// aspect ratio in step with them
func (s *Scene) SetImageSize(width, height int) {
	s.Config.Width = width
	s.Config.Height = height
	if width > 0 && height > 0 {
		s.Config.Camera.AspectRatio = float64(width) / float64(height)
	}
}

// SetWidth changes the output width and derives the height from the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	height := s.Config.Height
	if s.Config.Camera.AspectRatio > 0 {
		height = max(1, int(float64(width)/s.Config.Camera.AspectRatio))
	}
	s.Config.Width = width
	s.Config.Height = height
}

// GetPrimitiveCount returns the number of top-level primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
