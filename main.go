package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// options holds the command line flags. Numeric flags only override the
// scene or environment when they appear in set.
type options struct {
	sceneName string
	width     int
	samples   int
	depth     int
	format    string
	workers   int
	seed      int64
	envFile   string
	list      bool
	help      bool
	set       map[string]bool // Flags given on the command line
}

func (o options) isSet(name string) bool {
	return o.set[name]
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.sceneName, "scene", "default", "Builtin scene name, scene name in the scenes directory, or path to a .json scene")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels, height follows the scene aspect ratio")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth")
	fs.StringVar(&opts.format, "format", "png", "Output format: png, jpg, gif, tiff or bmp")
	fs.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed for sampling and random scenes")
	fs.StringVar(&opts.envFile, "env", ".env", "Environment file with S3 and output settings")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printHelp()
		os.Exit(2)
	}

	if opts.help {
		printHelp()
		return
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := renderer.NewDefaultLogger()

	if opts.list {
		if err := listScenes(os.Stdout, cfg.ScenesDir, logger); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Render interrupted")
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Go Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -scene string    Builtin scene, scene name in the scenes directory, or .json path (default \"default\")")
	fmt.Println("  -width int       Image width in pixels, height follows the scene aspect ratio")
	fmt.Println("  -samples int     Samples per pixel")
	fmt.Println("  -depth int       Maximum ray bounce depth")
	fmt.Println("  -format string   Output format: png, jpg, gif, tiff or bmp (default \"png\")")
	fmt.Println("  -workers int     Number of render workers (0 = CPU count)")
	fmt.Println("  -seed int        Random seed for sampling and random scenes")
	fmt.Println("  -env string      Environment file (default \".env\")")
	fmt.Println("  -list            List available scenes")
	fmt.Println("  -help            Show help information")
	fmt.Println()
	fmt.Println("Builtin scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output dir>/<scene>/render_<timestamp>.<format>")
	fmt.Println("and uploaded to S3 when S3_BUCKET is set.")
}

func listScenes(w io.Writer, scenesDir string, logger core.Logger) error {
	scenes, err := scene.ListAllScenes(scenesDir, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		line := fmt.Sprintf("  %-20s %-8s %s", info.ID, info.Type, info.DisplayName)
		if info.Description != "" {
			line += " - " + info.Description
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// createScene loads the requested scene and applies flag and environment overrides.
// Flags win over the environment, which wins over the scene's own settings.
// Only flags given on the command line and RAYTRACER_SEED when present
// override the scene.
func createScene(opts options, cfg config.Config) (*scene.Scene, error) {
	seed := cfg.Seed
	seedSet := cfg.SeedSet
	if opts.isSet("seed") {
		seed = opts.seed
		seedSet = true
	}

	// Builtin random layouts are built from seed; scene files carry their own
	s, err := scene.LoadScene(opts.sceneName, cfg.ScenesDir, seed)
	if err != nil {
		return nil, err
	}

	if seedSet {
		s.Config.Seed = seed
	}
	s.Config.NumWorkers = cfg.Workers
	if opts.isSet("workers") {
		s.Config.NumWorkers = opts.workers
	}
	if opts.isSet("width") {
		s.SetWidth(opts.width)
	}
	if opts.isSet("samples") {
		s.Config.SamplesPerPixel = opts.samples
	}
	if opts.isSet("depth") {
		s.Config.MaxDepth = opts.depth
	}

	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// outputName returns the sink-relative name of a render, e.g. "default/render_20240102_150405.png".
// Scene file paths are reduced to their base name without extension.
func outputName(sceneName, format string, timestamp time.Time) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	return fmt.Sprintf("%s/render_%s.%s", base, timestamp.Format("20060102_150405"), format)
}

// thumbnailName inserts a "_thumb" suffix before the extension
func thumbnailName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_thumb" + ext
}

// createSink returns the file sink, plus an S3 sink when a bucket is configured
func createSink(cfg config.Config, logger core.Logger) (output.Sink, error) {
	sinks := []output.Sink{output.NewFileSink(cfg.OutputDir)}

	if cfg.S3.Enabled() {
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, output.NewS3Sink(client, cfg.S3.Bucket, cfg.S3.Prefix))
	}

	return &output.MultiSink{Sinks: sinks, Logger: logger}, nil
}

func run(ctx context.Context, opts options, cfg config.Config, logger core.Logger) error {
	sink, err := createSink(cfg, logger)
	if err != nil {
		return err
	}
	return render(ctx, opts, cfg, sink, logger)
}

func render(ctx context.Context, opts options, cfg config.Config, sink output.Sink, logger core.Logger) error {
	// Reject unknown formats before spending time on the render
	if _, err := output.FormatFromName(opts.format); err != nil {
		return err
	}

	s, err := createScene(opts, cfg)
	if err != nil {
		return err
	}

	logger.Printf("Using scene %q (%d objects, %d lights)\n", s.Name, s.GetPrimitiveCount(), len(s.Lights))

	r, err := renderer.NewRenderer(s.World, s.Materials, s.Lights, s.Config, logger)
	if err != nil {
		return err
	}

	buffer, stats, err := r.Render(ctx)
	if err != nil {
		return err
	}

	img := output.ToImage(buffer)
	name := outputName(opts.sceneName, opts.format, time.Now())

	location, err := sink.Write(ctx, name, img)
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", location)

	if cfg.ThumbnailSize > 0 {
		thumbLocation, err := sink.Write(ctx, thumbnailName(name), output.Thumbnail(img, cfg.ThumbnailSize))
		if err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbLocation)
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Pixels: %d, samples per pixel: %.1f, workers: %d\n",
		stats.TotalPixels, stats.AverageSamples(), stats.Workers)
	if stats.NonFiniteSamples > 0 {
		fmt.Printf("Dropped %d non-finite samples\n", stats.NonFiniteSamples)
	}
	return nil
}
