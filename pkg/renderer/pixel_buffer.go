package renderer

import "github.com/df07/go-raytracer/pkg/core"

// PixelBuffer holds the final gamma-corrected colors of a render.
// Pixels are row-major with row 0 at the top of the image; every
// component is in [0, 1].
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewPixelBuffer creates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, color core.Vec3) {
	b.Pixels[y*b.Width+x] = color
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}
