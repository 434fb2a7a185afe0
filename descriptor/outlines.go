package descriptor

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/glyphatlas/outline"
)

// GlyphOutline pairs a character with its vector outline.
type GlyphOutline struct {
	Codepoint rune
	Outline   outline.Outline
}

// EncodeOutlines writes the vector outline set:
//
//	per glyph: uint32 codepoint, uint32 segmentCount
//	per segment: uint8 kind, float32 x, y, and float32 cx, cy for curves
//
// Kinds are 0 for start, 1 for line and 2 for quadratic curve.
func EncodeOutlines(w io.Writer, glyphs []GlyphOutline) error {
	bw := newWriter(w)
	for _, g := range glyphs {
		bw.uint32(uint32(g.Codepoint))
		bw.uint32(uint32(len(g.Outline.Segments)))
		for _, s := range g.Outline.Segments {
			bw.uint8(uint8(s.Kind))
			bw.float32(float32(s.Point.X()))
			bw.float32(float32(s.Point.Y()))
			if s.Kind == outline.CurveTo {
				bw.float32(float32(s.Control.X()))
				bw.float32(float32(s.Control.Y()))
			}
		}
	}
	if err := bw.flush(); err != nil {
		return fmt.Errorf("descriptor: write outlines: %w", err)
	}
	return nil
}

// DecodeOutlines reads a vector outline set written by EncodeOutlines.
func DecodeOutlines(r io.Reader) ([]GlyphOutline, error) {
	br := newReader(r)
	var glyphs []GlyphOutline

	for !br.atEOF() {
		g := GlyphOutline{Codepoint: rune(br.uint32())}
		n := br.uint32()
		if err := br.result(); err != nil {
			return nil, fmt.Errorf("outline %d: %w", len(glyphs), err)
		}

		g.Outline.Segments = make([]outline.Segment, 0, min(n, 1<<12))
		for i := uint32(0); i < n; i++ {
			s := outline.Segment{Kind: outline.Kind(br.uint8())}
			s.Point = vec(br.float32(), br.float32())
			switch s.Kind {
			case outline.Start, outline.LineTo:
			case outline.CurveTo:
				s.Control = vec(br.float32(), br.float32())
			default:
				return nil, fmt.Errorf("outline %d segment %d: kind %d: %w",
					len(glyphs), i, s.Kind, outline.ErrUnsupportedFeature)
			}
			if err := br.result(); err != nil {
				return nil, fmt.Errorf("outline %d segment %d: %w", len(glyphs), i, err)
			}
			g.Outline.Segments = append(g.Outline.Segments, s)
		}
		glyphs = append(glyphs, g)
	}
	if err := br.result(); err != nil {
		return nil, err
	}
	return glyphs, nil
}

func vec(x, y float32) mgl64.Vec2 {
	return mgl64.Vec2{float64(x), float64(y)}
}
