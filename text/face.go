package text

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics holds line metrics in pixels.
type Metrics struct {
	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float64

	// Ascender is the distance from the baseline to the top of the tallest
	// glyphs, positive.
	Ascender float64

	// Descender is the distance from the baseline to the bottom of the
	// lowest glyphs, negative for glyphs that extend below it.
	Descender float64
}

// Glyph is a rasterized glyph with its placement metrics in pixels.
type Glyph struct {
	Rune rune

	// Found is false when the font has no glyph for Rune and .notdef was
	// rendered instead.
	Found bool

	// Mask holds the coverage bitmap with bounds at the origin. Glyphs
	// without ink, such as space, have an empty mask.
	Mask *image.Alpha

	// Advance is the horizontal pen advance. AdvanceY is zero for the
	// horizontal faces this package creates.
	Advance  float64
	AdvanceY float64

	// BearingX is the distance from the pen position to the left edge of
	// the mask, BearingY the distance from the baseline up to its top edge.
	BearingX float64
	BearingY float64
}

// Width returns the mask width in pixels.
func (g *Glyph) Width() int { return g.Mask.Rect.Dx() }

// Height returns the mask height in pixels.
func (g *Glyph) Height() int { return g.Mask.Rect.Dy() }

// Face is a font at a fixed pixel height.
// Face is not safe for concurrent use.
type Face struct {
	font *Font
	px   int
	ppem fixed.Int26_6
	face font.Face
	buf  sfnt.Buffer

	shaper *pairShaper
}

// NewFace creates a face rendering glyphs px pixels per em. Metrics and
// advances are rounded to whole pixels as with full hinting; outlines are
// rasterized unhinted.
func (f *Font) NewFace(px int) (*Face, error) {
	if px <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, px)
	}
	face, err := opentype.NewFace(f.ot, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: create face: %w", err)
	}
	return &Face{
		font: f,
		px:   px,
		ppem: fixed.I(px),
		face: face,
	}, nil
}

// Font returns the font the face was created from.
func (f *Face) Font() *Font { return f.font }

// Size returns the pixel height.
func (f *Face) Size() int { return f.px }

// Metrics returns the face's line metrics.
func (f *Face) Metrics() Metrics {
	m := f.face.Metrics()
	return Metrics{
		LineHeight: fixedToFloat(m.Height),
		Ascender:   fixedToFloat(m.Ascent),
		Descender:  -fixedToFloat(m.Descent),
	}
}

// Glyph rasterizes r. The returned mask is owned by the caller.
func (f *Face) Glyph(r rune) (Glyph, error) {
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if mask == nil {
		return Glyph{}, fmt.Errorf("%w: %q", ErrGlyphUnavailable, r)
	}

	// The face reuses its mask buffer between calls.
	m := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(m, m.Rect, mask, maskp, draw.Src)

	return Glyph{
		Rune:     r,
		Found:    ok,
		Mask:     m,
		Advance:  fixedToFloat(advance),
		BearingX: float64(dr.Min.X),
		BearingY: float64(-dr.Min.Y),
	}, nil
}

// Advance returns the horizontal advance of r without rasterizing it.
// ok is false when the font has no glyph for r.
func (f *Face) Advance(r rune) (adv float64, ok bool) {
	a, ok := f.face.GlyphAdvance(r)
	return fixedToFloat(a), ok
}

// Kern returns the kerning between a and b from the font's kern table or
// GPOS pair adjustments, rounded to whole pixels. Pairs the font does not
// list return zero.
func (f *Face) Kern(a, b rune) (dx, dy float64) {
	ia, err := f.font.ot.GlyphIndex(&f.buf, a)
	if err != nil {
		return 0, 0
	}
	ib, err := f.font.ot.GlyphIndex(&f.buf, b)
	if err != nil {
		return 0, 0
	}
	k, err := f.font.ot.Kern(&f.buf, ia, ib, f.ppem, font.HintingFull)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			slogger().Debug("kern lookup failed", "left", string(a), "right", string(b), "err", err)
		}
		return 0, 0
	}
	return fixedToFloat(k), 0
}

// Close releases the face.
func (f *Face) Close() error {
	return f.face.Close()
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// roundFixed rounds a 26.6 value to whole pixels.
func roundFixed(x fixed.Int26_6) float64 {
	return math.Round(fixedToFloat(x))
}
