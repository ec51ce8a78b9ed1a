package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file names or formats imaging cannot encode
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ToImage converts a finished pixel buffer to an 8-bit image.
// Buffer row 0 becomes image row 0 (the top).
func ToImage(buffer *renderer.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))

	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			c := buffer.At(x, y).Clamp(0.0, 1.0)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}

	return img
}

// FormatFromName resolves a format name or extension such as "png" or ".jpg"
func FormatFromName(format string) (imaging.Format, error) {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(format, "."))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f, nil
}

// Encode writes img to w in the named format ("png", "jpg", "gif", "tiff", "bmp")
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := FormatFromName(format)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Thumbnail scales img down so that it fits in a maxSize x maxSize box,
// preserving the aspect ratio. Images already small enough are returned as is.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}
