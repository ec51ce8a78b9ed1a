package loaders

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// LoadImage loads an image in any format imaging understands (PNG, JPEG,
// GIF, TIFF, BMP) and converts it to a Vec3 color array.
// EXIF orientation is applied so textures appear upright.
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", filename, err)
	}

	// Clone normalizes any decoded color model to 8-bit non-premultiplied RGBA
	nrgba := imaging.Clone(img)
	width := nrgba.Rect.Dx()
	height := nrgba.Rect.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			pixels[y*width+x] = core.NewVec3(
				float64(row[i])/255.0,
				float64(row[i+1])/255.0,
				float64(row[i+2])/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// LoadImageTexture loads an image file as a texture for material albedo
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}
