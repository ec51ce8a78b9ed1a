package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
)

// DefaultLogger implements core.Logger on top of the standard log package
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Renderer renders a scene into a PixelBuffer using a pool of tile workers
type Renderer struct {
	config       RenderConfig
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRenderer validates config and prepares a renderer for the given scene content.
// A nil logger falls back to NewDefaultLogger.
func NewRenderer(world core.Hittable, materials *material.Arena, sceneLights []lights.Light, config RenderConfig, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil || materials == nil {
		return nil, fmt.Errorf("%w: scene has no world or material arena", ErrInvalidConfig)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	raytracer := NewRaytracer(world, materials, sceneLights, config)
	camera := NewCamera(config.Camera)

	return &Renderer{
		config:       config,
		tileRenderer: NewTileRenderer(raytracer, camera, config),
		logger:       logger,
	}, nil
}

// Render renders the full image. Every pixel is written exactly once.
// The output depends only on the scene and config, never on worker count
// or scheduling. When ctx is cancelled, tiles not yet started are skipped
// and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	startTime := time.Now()

	buffer := NewPixelBuffer(r.config.Width, r.config.Height)
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize, r.config.Seed)

	workerPool := NewWorkerPool(r.tileRenderer, r.config.NumWorkers, len(tiles))

	r.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d, %d tiles on %d workers\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.MaxDepth,
		len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i, Buffer: buffer})
	}

	stats := RenderStats{Workers: workerPool.GetNumWorkers()}
	var renderErr error
	lastDecile := 0

	// Drain every result so the pool can shut down cleanly
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)

		if decile := stats.TilesRendered * 10 / len(tiles); decile > lastDecile {
			lastDecile = decile
			r.logger.Printf("Progress: %d%% (%d/%d tiles)\n", decile*10, stats.TilesRendered, len(tiles))
		}
	}
	workerPool.Stop()

	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		r.logger.Printf("Rendering stopped after %d/%d tiles: %v\n", stats.TilesRendered, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	if stats.NonFiniteSamples > 0 {
		r.logger.Printf("Warning: dropped %d non-finite samples\n", stats.NonFiniteSamples)
	}
	r.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return buffer, stats, nil
}
