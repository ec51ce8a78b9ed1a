package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrInvalidConfig is wrapped by every error returned from RenderConfig.Validate
var ErrInvalidConfig = errors.New("invalid render config")

// DefaultTileSize is used when RenderConfig.TileSize is zero
const DefaultTileSize = 32

// CameraConfig describes a look-at camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks toward
	Up            core.Vec3 // World up direction, must not be parallel to the view direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane in focus, 0 = distance to LookAt
}

// RenderConfig contains everything the renderer needs besides the scene content
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of a render tile (0 = DefaultTileSize)
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed for per-tile random streams

	Camera CameraConfig

	BackgroundTop    core.Vec3 // Sky color straight up
	BackgroundBottom core.Vec3 // Sky color straight down
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	width, height := 400, 225
	return RenderConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 50,
		MaxDepth:        50,
		TileSize:        DefaultTileSize,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            42,
		Camera: CameraConfig{
			LookFrom:    core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90,
			AspectRatio: float64(width) / float64(height),
		},
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate rejects configurations the renderer cannot work with.
// All errors wrap ErrInvalidConfig.
func (c RenderConfig) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: image size %dx%d must be at least 1x1", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: tile size %d must not be negative", ErrInvalidConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the camera geometry. Errors wrap ErrInvalidConfig.
func (c CameraConfig) Validate() error {
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical fov %g must be in (0, 180)", ErrInvalidConfig, c.VFov)
	}
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidConfig, c.AspectRatio)
	}

	view := c.LookAt.Subtract(c.LookFrom)
	if view.NearZero() {
		return fmt.Errorf("%w: look-from %v and look-at %v coincide", ErrInvalidConfig, c.LookFrom, c.LookAt)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidConfig, c.Up)
	}

	if c.Aperture < 0 {
		return fmt.Errorf("%w: aperture %g must not be negative", ErrInvalidConfig, c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("%w: focus distance %g must not be negative", ErrInvalidConfig, c.FocusDistance)
	}
	return nil
}
