// Package outline holds glyph outlines made of line and quadratic Bezier
// segments, and answers whether a point lies inside one.
//
// Outlines are y-up with the baseline at y = 0, in whatever unit the
// extraction scale selects (typically 1/ppem, so one unit is the pixel
// height the glyph was designed for).
package outline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/rect"
)

// Kind is the type of an outline segment.
type Kind uint8

const (
	// Start opens a new contour at Point.
	Start Kind = iota

	// LineTo draws a straight edge to Point.
	LineTo

	// CurveTo draws a quadratic Bezier edge to Point through Control.
	CurveTo
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Start:
		return "Start"
	case LineTo:
		return "LineTo"
	case CurveTo:
		return "CurveTo"
	default:
		return "Unknown"
	}
}

// Segment is one step of an outline. Control is only meaningful for CurveTo.
type Segment struct {
	Kind    Kind
	Point   mgl64.Vec2
	Control mgl64.Vec2
}

// StartSegment returns a segment opening a contour at p.
func StartSegment(p mgl64.Vec2) Segment {
	return Segment{Kind: Start, Point: p}
}

// LineSegment returns a straight edge to p.
func LineSegment(p mgl64.Vec2) Segment {
	return Segment{Kind: LineTo, Point: p}
}

// CurveSegment returns a quadratic edge to p with control point c.
func CurveSegment(p, c mgl64.Vec2) Segment {
	return Segment{Kind: CurveTo, Point: p, Control: c}
}

// Outline is a sequence of segments forming one or more closed contours.
// Every contour begins with a Start segment; a glyph with holes, such as
// "O", has several.
type Outline struct {
	Segments []Segment
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return len(o.Segments) == 0
}

// Contours splits the outline at its Start segments.
func (o *Outline) Contours() []Outline {
	var contours []Outline
	begin := -1
	for i, s := range o.Segments {
		if s.Kind != Start {
			continue
		}
		if begin >= 0 {
			contours = append(contours, Outline{Segments: o.Segments[begin:i]})
		}
		begin = i
	}
	if begin >= 0 {
		contours = append(contours, Outline{Segments: o.Segments[begin:]})
	}
	return contours
}

// Bounds returns the bounding box of all points, control points included.
// The result is the zero rectangle for an empty outline.
func (o *Outline) Bounds() rect.Rect {
	if o.IsEmpty() {
		return rect.Rect{}
	}

	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	extend := func(p mgl64.Vec2) {
		b.LLx = min(b.LLx, p.X())
		b.LLy = min(b.LLy, p.Y())
		b.URx = max(b.URx, p.X())
		b.URy = max(b.URy, p.Y())
	}
	for _, s := range o.Segments {
		extend(s.Point)
		if s.Kind == CurveTo {
			extend(s.Control)
		}
	}
	return b
}

// closeTolerance is how far a contour may end from its start and still
// count as closed.
const closeTolerance = 1e-9

// Validate checks that every contour opens with Start and ends where it
// began.
func (o *Outline) Validate() error {
	if o.IsEmpty() {
		return nil
	}
	if o.Segments[0].Kind != Start {
		return ErrMissingStart
	}
	for _, c := range o.Contours() {
		first := c.Segments[0].Point
		last := c.Segments[len(c.Segments)-1].Point
		if !first.ApproxEqualThreshold(last, closeTolerance) {
			return ErrOpenContour
		}
	}
	return nil
}

// Scale returns a copy of the outline with all points multiplied by f.
func (o *Outline) Scale(f float64) Outline {
	scaled := Outline{Segments: make([]Segment, len(o.Segments))}
	for i, s := range o.Segments {
		scaled.Segments[i] = Segment{
			Kind:    s.Kind,
			Point:   s.Point.Mul(f),
			Control: s.Control.Mul(f),
		}
	}
	return scaled
}

// pointAt evaluates a quadratic Bezier from p0 through c to p1 at t.
func pointAt(p0, c, p1 mgl64.Vec2, t float64) mgl64.Vec2 {
	u := 1 - t
	return p0.Mul(u * u).Add(c.Mul(2 * u * t)).Add(p1.Mul(t * t))
}
