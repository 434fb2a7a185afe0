package outline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Extract converts segments loaded with sfnt.Font.LoadGlyph into an Outline.
//
// Coordinates are multiplied by scale and flipped to y-up. A contour whose
// last point differs from its first is closed with a line. Cubic segments,
// which only appear in CFF fonts, return ErrUnsupportedFeature.
func Extract(segs sfnt.Segments, scale float64) (Outline, error) {
	o := Outline{Segments: make([]Segment, 0, len(segs)+1)}

	var first, last mgl64.Vec2
	open := false
	closeContour := func() {
		if open && !last.ApproxEqualThreshold(first, closeTolerance) {
			o.Segments = append(o.Segments, LineSegment(first))
		}
	}

	for i, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			first = toVec(seg.Args[0], scale)
			last = first
			open = true
			o.Segments = append(o.Segments, StartSegment(first))

		case sfnt.SegmentOpLineTo:
			if !open {
				return Outline{}, fmt.Errorf("segment %d: %w", i, ErrMissingStart)
			}
			last = toVec(seg.Args[0], scale)
			o.Segments = append(o.Segments, LineSegment(last))

		case sfnt.SegmentOpQuadTo:
			if !open {
				return Outline{}, fmt.Errorf("segment %d: %w", i, ErrMissingStart)
			}
			c := toVec(seg.Args[0], scale)
			last = toVec(seg.Args[1], scale)
			o.Segments = append(o.Segments, CurveSegment(last, c))

		case sfnt.SegmentOpCubeTo:
			return Outline{}, fmt.Errorf("segment %d: cubic curve: %w", i, ErrUnsupportedFeature)

		default:
			return Outline{}, fmt.Errorf("segment %d: op %d: %w", i, seg.Op, ErrUnsupportedFeature)
		}
	}
	closeContour()

	return o, nil
}

// toVec converts a 26.6 y-down point into a scaled y-up vector.
func toVec(p fixed.Point26_6, scale float64) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(p.X) / 64 * scale,
		-float64(p.Y) / 64 * scale,
	}
}
