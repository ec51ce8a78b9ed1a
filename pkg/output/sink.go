package output

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/core"
)

// Sink stores a rendered image under a name such as "default/render.png".
// The extension of name selects the encoding. Write returns where the
// image ended up (a file path or URL).
type Sink interface {
	Write(ctx context.Context, name string, img image.Image) (string, error)
}

// FileSink writes images below a directory on the local filesystem
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write implements Sink
func (s *FileSink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	if _, err := imaging.FormatFromFilename(name); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// MultiSink writes the same image to every sink in order
type MultiSink struct {
	Sinks  []Sink
	Logger core.Logger
}

// Write implements Sink. It stops at the first failure and returns the
// location reported by the first sink.
func (m *MultiSink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	var first string
	for i, sink := range m.Sinks {
		location, err := sink.Write(ctx, name, img)
		if err != nil {
			return first, err
		}
		if m.Logger != nil {
			m.Logger.Printf("Saved %s\n", location)
		}
		if i == 0 {
			first = location
		}
	}
	return first, nil
}
