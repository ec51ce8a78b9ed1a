package loaders

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/core"
)

// writeTestImage saves a 2x2 image with white/red on top and green/blue below
func writeTestImage(t *testing.T, filename string) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})

	if err := imaging.Save(img, filename); err != nil {
		t.Fatalf("Failed to save test image: %v", err)
	}
}

func TestLoadImage(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		tolerance float64
	}{
		{"png", "test.png", 0.01},
		{"bmp", "test.bmp", 0.01},
		{"tiff", "test.tiff", 0.01},
	}

	white := core.NewVec3(1.0, 1.0, 1.0)
	red := core.NewVec3(1.0, 0.0, 0.0)
	green := core.NewVec3(0.0, 1.0, 0.0)
	blue := core.NewVec3(0.0, 0.0, 1.0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), tt.filename)
			writeTestImage(t, testFile)

			imageData, err := LoadImage(testFile)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}

			if imageData.Width != 2 || imageData.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}
			if len(imageData.Pixels) != 4 {
				t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
			}

			checkColor := func(name string, got, expected core.Vec3) {
				if got.Subtract(expected).Length() > tt.tolerance {
					t.Errorf("%s: expected %v, got %v", name, expected, got)
				}
			}

			// Row-major, top row first
			checkColor("Top-left (white)", imageData.Pixels[0], white)
			checkColor("Top-right (red)", imageData.Pixels[1], red)
			checkColor("Bottom-left (green)", imageData.Pixels[2], green)
			checkColor("Bottom-right (blue)", imageData.Pixels[3], blue)
		})
	}
}

func TestLoadImageTexture_UVOrientation(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "texture.png")
	writeTestImage(t, testFile)

	texture, err := LoadImageTexture(testFile)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	// v=0 is the bottom of the image
	if got := texture.Evaluate(core.NewVec2(0.25, 0.25), core.Vec3{}); got.Subtract(core.NewVec3(0, 1, 0)).Length() > 0.01 {
		t.Errorf("Expected green at the lower left, got %v", got)
	}
	if got := texture.Evaluate(core.NewVec2(0.75, 0.75), core.Vec3{}); got.Subtract(core.NewVec3(1, 0, 0)).Length() > 0.01 {
		t.Errorf("Expected red at the upper right, got %v", got)
	}
}

func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImageNotAnImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(testFile, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadImage(testFile); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
