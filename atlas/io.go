package atlas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Decoders for Transform inputs.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// LoadGray reads an image file in any registered format (PNG, JPEG, BMP,
// TIFF, WebP) and converts it to 8-bit grayscale.
func LoadGray(path string) (*image.Gray, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("atlas: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeGray(f)
}

// DecodeGray decodes an image and converts it to 8-bit grayscale.
func DecodeGray(r io.Reader) (*image.Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode: %w", err)
	}
	return ToGray(img), nil
}

// ToGray returns img as *image.Gray with bounds starting at the origin.
// A *image.Gray already at the origin is returned unchanged.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Rect, img, b.Min, draw.Src)
	return g
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("atlas: create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return fmt.Errorf("atlas: encode PNG: %w", err)
	}
	return f.Close()
}
