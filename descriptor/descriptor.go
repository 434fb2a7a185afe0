// Package descriptor encodes the metadata that accompanies a glyph atlas.
//
// The binary layout is little-endian throughout:
//
//	uint32  N
//	float32 lineHeight, ascender, descender
//	N times:
//	    uint32  codepoint
//	    float32 xAdvance, offsetX, offsetY, width, height
//	    float32 u, v, uvWidth, uvHeight   (absent in vector mode)
//	until end of file:
//	    float32 kerningValue
//	    uint32  runLength
//
// All metric values are normalized so that 1.0 equals the pixel height the
// font was compiled at. The kerning runs expand to N*N values in
// first-character-major order.
package descriptor

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/kerning"
)

// Sentinel errors for descriptor encoding.
var (
	// ErrKerningSize is returned when the kerning runs do not cover N*N pairs.
	ErrKerningSize = errors.New("descriptor: kerning table size mismatch")

	// ErrTruncated is returned when a descriptor ends inside a record.
	ErrTruncated = errors.New("descriptor: truncated data")
)

// Glyph is the per-character record.
type Glyph struct {
	Codepoint rune

	// Advance is the horizontal pen advance.
	Advance float32

	// OffsetX is the distance from the pen position to the bitmap's left
	// edge. OffsetY is the distance from the baseline down to the bitmap's
	// bottom edge.
	OffsetX, OffsetY float32

	// Width and Height are the bitmap extent.
	Width, Height float32

	// UV locates the glyph in the atlas. Unused in vector mode.
	UV atlas.UV
}

// Descriptor is the complete atlas metadata.
type Descriptor struct {
	LineHeight float32
	Ascender   float32

	// Descender is negative for fonts whose glyphs extend below the
	// baseline.
	Descender float32

	Glyphs  []Glyph
	Kerning kerning.Table

	// Vector omits UV rectangles from the encoding.
	Vector bool
}

// Validate checks that the kerning table covers every ordered glyph pair.
func (d *Descriptor) Validate() error {
	n := len(d.Glyphs)
	if got := d.Kerning.Len(); got != n*n {
		return fmt.Errorf("%w: %d values for %d glyphs", ErrKerningSize, got, n)
	}
	return nil
}

// Kern returns the kerning between glyph indices i and j.
func (d *Descriptor) Kern(i, j int) float32 {
	return d.Kerning.Lookup(len(d.Glyphs), i, j)
}

// Index returns the glyph index of r, or -1.
func (d *Descriptor) Index(r rune) int {
	for i, g := range d.Glyphs {
		if g.Codepoint == r {
			return i
		}
	}
	return -1
}
