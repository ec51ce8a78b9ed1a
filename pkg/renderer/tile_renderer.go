package renderer

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// TileRenderer turns tiles into finished pixels. It holds no per-tile state,
// so workers share one instance.
type TileRenderer struct {
	raytracer       *Raytracer
	camera          *Camera
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a tile renderer for an image of the configured size
func NewTileRenderer(raytracer *Raytracer, camera *Camera, config RenderConfig) *TileRenderer {
	return &TileRenderer{
		raytracer:       raytracer,
		camera:          camera,
		width:           config.Width,
		height:          config.Height,
		samplesPerPixel: config.SamplesPerPixel,
	}
}

// RenderTile renders every pixel inside the tile bounds into buffer.
// Tiles never overlap, so concurrent calls on distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile *Tile, buffer *PixelBuffer) RenderStats {
	stats := RenderStats{TilesRendered: 1}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			color, dropped := tr.samplePixel(x, y, tile.Sampler)
			buffer.Set(x, y, finalizeColor(color))

			stats.TotalPixels++
			stats.TotalSamples += tr.samplesPerPixel
			stats.NonFiniteSamples += dropped
		}
	}

	return stats
}

// samplePixel averages SamplesPerPixel jittered rays through pixel (x, y).
// Image row y counts down from the top while the camera t coordinate counts up.
// It returns the linear color and the number of non-finite samples dropped.
func (tr *TileRenderer) samplePixel(x, y int, sampler core.Sampler) (core.Vec3, int) {
	colorAccum := core.Vec3{}
	dropped := 0

	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(tr.height-1-y) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		color := tr.raytracer.RayColor(ray, 0, sampler)
		if !color.IsFinite() {
			dropped++
			continue
		}
		colorAccum = colorAccum.Add(color)
	}

	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel)), dropped
}

// finalizeColor applies gamma correction (gamma = 2.0) and clamps to the displayable range
func finalizeColor(color core.Vec3) core.Vec3 {
	return color.GammaCorrect(2.0).Clamp(0.0, 1.0)
}
