// Package atlas composes rasterized glyph coverage bitmaps into a single
// grayscale atlas image at the positions chosen by the packer.
package atlas

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphatlas/pack"
)

// Sentinel errors for atlas composition.
var (
	// ErrMismatch is returned when the glyph and placement counts differ.
	ErrMismatch = errors.New("atlas: glyph count does not match packing")

	// ErrGlyphTooLarge is returned when a glyph exceeds its placement.
	ErrGlyphTooLarge = errors.New("atlas: glyph larger than its placement")
)

// UV is a normalized texture rectangle. U and V address the top-left
// corner; W and H are the extent, all in [0, 1].
type UV struct {
	U, V, W, H float32
}

// Region describes where one glyph lives in the atlas.
type Region struct {
	// Rect is the glyph's pixel rectangle.
	Rect pack.Rectangle

	// UV is Rect divided by the atlas size.
	UV UV
}

// Atlas is a composed glyph atlas.
type Atlas struct {
	// Image holds the coverage of every glyph, 0 outside glyphs.
	Image *image.Gray

	// Regions is indexed like the glyph slice passed to Compose.
	Regions []Region
}

// Width returns the atlas width in pixels.
func (a *Atlas) Width() int { return a.Image.Rect.Dx() }

// Height returns the atlas height in pixels.
func (a *Atlas) Height() int { return a.Image.Rect.Dy() }

// Compose allocates a p.Width x p.Height grayscale image and copies each
// glyph's coverage to its placement. A nil or empty glyph contributes no
// pixels but still receives a region.
func Compose(glyphs []*image.Alpha, p *pack.Packing) (*Atlas, error) {
	if len(glyphs) != len(p.Rects) {
		return nil, fmt.Errorf("%w: %d glyphs, %d placements", ErrMismatch, len(glyphs), len(p.Rects))
	}

	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	a := &Atlas{
		Image:   img,
		Regions: make([]Region, len(glyphs)),
	}

	for i, g := range glyphs {
		r := p.Rects[i]
		a.Regions[i] = Region{Rect: r, UV: uvOf(r, p.Width, p.Height)}

		if g == nil || g.Rect.Empty() {
			continue
		}
		if g.Rect.Dx() > r.W || g.Rect.Dy() > r.H {
			return nil, fmt.Errorf("glyph %d: %dx%d into %dx%d: %w",
				i, g.Rect.Dx(), g.Rect.Dy(), r.W, r.H, ErrGlyphTooLarge)
		}
		dst := image.Rect(r.X, r.Y, r.X+g.Rect.Dx(), r.Y+g.Rect.Dy())
		draw.Draw(img, dst, g, g.Rect.Min, draw.Src)
	}

	return a, nil
}

func uvOf(r pack.Rectangle, w, h int) UV {
	if w == 0 || h == 0 {
		return UV{}
	}
	fw, fh := float32(w), float32(h)
	return UV{
		U: float32(r.X) / fw,
		V: float32(r.Y) / fh,
		W: float32(r.W) / fw,
		H: float32(r.H) / fh,
	}
}
