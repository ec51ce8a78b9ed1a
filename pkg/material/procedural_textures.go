package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// DefaultProceduralResolution is used when a procedural texture is given no resolution
const DefaultProceduralResolution = 256

// NewUVDebugTexture bakes a size x size texture showing UV as color: u in red, v in green
func NewUVDebugTexture(size int) *ImageTexture {
	if size < 2 {
		size = DefaultProceduralResolution
	}
	pixels := make([]core.Vec3, size*size)

	for y := 0; y < size; y++ {
		// row 0 is the top of the image, which is v = 1
		v := 1.0 - float64(y)/float64(size-1)
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size-1)
			pixels[y*size+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(size, size, pixels)
}

// NewGradientTexture bakes a vertical gradient, bottom at v = 0 and top at v = 1.
// The texture is one pixel wide since the color depends only on v.
func NewGradientTexture(size int, bottom, top core.Vec3) *ImageTexture {
	if size < 2 {
		size = DefaultProceduralResolution
	}
	bottom = bottom.Clamp(0, 1)
	top = top.Clamp(0, 1)
	pixels := make([]core.Vec3, size)

	for y := 0; y < size; y++ {
		t := float64(y) / float64(size-1)
		pixels[y] = top.Lerp(bottom, t)
	}

	return NewImageTexture(1, size, pixels)
}
