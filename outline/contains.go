package outline

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contains reports whether p lies inside o using the even-odd rule.
//
// A ray is cast from p towards +x. Each edge is tested with a half-open
// rule: an edge crosses the ray's line when exactly one of its ends lies
// strictly above p.y, so a ray through a shared vertex is counted once.
// Quadratic edges are split at their vertical extremum into monotone pieces
// first. A crossing counts when its x coordinate is >= p.x, so a point on a
// contour's right side is inside and a point on its left side is not.
func Contains(o Outline, p mgl64.Vec2) bool {
	return crossings(o.Segments, p)%2 == 1
}

// Contains reports whether p lies inside the outline.
func (o *Outline) Contains(p mgl64.Vec2) bool {
	return Contains(*o, p)
}

func crossings(segs []Segment, p mgl64.Vec2) int {
	n := 0
	var prev mgl64.Vec2
	for _, s := range segs {
		switch s.Kind {
		case LineTo:
			n += lineCrossing(prev, s.Point, p)
		case CurveTo:
			n += quadCrossings(prev, s.Control, s.Point, p)
		}
		prev = s.Point
	}
	return n
}

func lineCrossing(a, b, p mgl64.Vec2) int {
	if (a.Y() > p.Y()) == (b.Y() > p.Y()) {
		return 0
	}
	t := (p.Y() - a.Y()) / (b.Y() - a.Y())
	if a.X()+t*(b.X()-a.X()) >= p.X() {
		return 1
	}
	return 0
}

func quadCrossings(p0, c, p1, p mgl64.Vec2) int {
	// y(t) = a*t^2 + b*t + p0.y
	a := p0.Y() - 2*c.Y() + p1.Y()
	b := 2 * (c.Y() - p0.Y())

	bounds := [3]float64{0, 1, 1}
	pieces := 1
	if a != 0 {
		if te := -b / (2 * a); te > 0 && te < 1 {
			bounds = [3]float64{0, te, 1}
			pieces = 2
		}
	}

	n := 0
	for k := 0; k < pieces; k++ {
		t0, t1 := bounds[k], bounds[k+1]
		y0 := pointAt(p0, c, p1, t0).Y()
		y1 := pointAt(p0, c, p1, t1).Y()
		if t0 == 0 {
			y0 = p0.Y()
		}
		if t1 == 1 {
			y1 = p1.Y()
		}
		if (y0 > p.Y()) == (y1 > p.Y()) {
			continue
		}
		t := solveMonotone(a, b, p0.Y()-p.Y(), t0, t1)
		if pointAt(p0, c, p1, t).X() >= p.X() {
			n++
		}
	}
	return n
}

// solveMonotone returns the root of a*t^2 + b*t + c in [t0, t1]. The caller
// guarantees the polynomial changes sign over the interval.
func solveMonotone(a, b, c, t0, t1 float64) float64 {
	if a == 0 {
		return mgl64.Clamp(-c/b, t0, t1)
	}
	disc := math.Max(b*b-4*a*c, 0)
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)

	mid := (t0 + t1) / 2
	if math.Abs(r1-mid) <= math.Abs(r2-mid) {
		return mgl64.Clamp(r1, t0, t1)
	}
	return mgl64.Clamp(r2, t0, t1)
}

// Frame maps mask pixels to outline space. Origin is the outline-space
// position of the mask's top-left corner and Scale the outline units per
// pixel. Mask rows run downwards, so y decreases as row index grows.
type Frame struct {
	Origin mgl64.Vec2
	Scale  float64
}

// Mask renders o into a w x h coverage mask by testing the centre of each
// pixel with Contains. Inside pixels are 255, outside pixels 0.
func Mask(o Outline, w, h int, f Frame) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	if o.IsEmpty() {
		return img
	}

	b := o.Bounds()
	for y := 0; y < h; y++ {
		py := f.Origin.Y() - (float64(y)+0.5)*f.Scale
		if py < b.LLy || py > b.URy {
			continue
		}
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			px := f.Origin.X() + (float64(x)+0.5)*f.Scale
			if px < b.LLx || px > b.URx {
				continue
			}
			if Contains(o, mgl64.Vec2{px, py}) {
				row[x] = 0xff
			}
		}
	}
	return img
}
