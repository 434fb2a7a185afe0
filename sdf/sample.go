package sdf

import (
	"image"
	"math"
)

const (
	// undefined is returned for samples outside the source bitmap.
	undefined = 1e20

	// far marks a pixel with no contour within the search radius.
	far = 1e20

	// contour is the coverage byte treated as the glyph outline.
	contour = 0x80

	// refineTolerance and maxRefineSteps bound the crossing refinement.
	refineTolerance = 1e-5
	maxRefineSteps  = 20
)

// sampler reads a gray bitmap at fractional coordinates.
type sampler struct {
	img  *image.Gray
	w, h int
}

func newSampler(img *image.Gray) *sampler {
	return &sampler{img: img, w: img.Rect.Dx(), h: img.Rect.Dy()}
}

// pix returns the byte at (x, y) relative to the bitmap origin.
func (s *sampler) pix(x, y int) float64 {
	o := s.img.Rect.Min
	return float64(s.img.Pix[s.img.PixOffset(o.X+x, o.Y+y)])
}

// at bilinearly interpolates the coverage at (x, y) and shifts it so that
// zero lies on the contour: positive inside, negative outside. Coordinates
// outside [0,w)×[0,h) yield undefined.
func (s *sampler) at(x, y float64) float64 {
	if x < 0 || y < 0 || x >= float64(s.w) || y >= float64(s.h) {
		return undefined
	}

	x0 := int(x)
	y0 := int(y)
	x1 := min(x0+1, s.w-1)
	y1 := min(y0+1, s.h-1)

	fx := x - float64(x0)
	fy := y - float64(y0)

	g00 := s.pix(x0, y0)
	g10 := s.pix(x1, y0)
	g11 := s.pix(x1, y1)
	g01 := s.pix(x0, y1)

	return (1-fx)*(1-fy)*g00 + (1-fx)*fy*g01 + fx*(1-fy)*g10 + fx*fy*g11 - contour
}

// ring is a circle of sample offsets at one search radius.
type ring struct {
	radius  float64
	offsets [][2]float64
}

// buildRings returns rings at radii 0.5, 1, 1.5, ... up to searchRadius.
// Each ring has as many samples as its circumference in pixels, so the
// spacing between neighbouring samples stays near one pixel.
func buildRings(searchRadius int) []ring {
	rings := make([]ring, 0, 2*searchRadius)
	for i := 1; i <= 2*searchRadius; i++ {
		r := float64(i) / 2
		n := int(2 * math.Pi * r)
		offsets := make([][2]float64, n)
		for j := range offsets {
			a := float64(j) * 2 * math.Pi / float64(n)
			offsets[j] = [2]float64{r * math.Cos(a), r * math.Sin(a)}
		}
		rings = append(rings, ring{radius: r, offsets: offsets})
	}
	return rings
}

// refine locates the contour crossing on the ray from (x, y) along d,
// where the sample at parameter 0 is v0 and at parameter 1 is v1 with
// opposite signs. It returns the crossing parameter in [0, 1].
func (s *sampler) refine(x, y float64, d [2]float64, v0, v1 float64) float64 {
	k0, k1 := 0.0, 1.0
	k := k1
	for step := 0; step <= maxRefineSteps; step++ {
		k = k0 + (k1-k0)*(0-v0)/(v1-v0)
		vk := s.at(x+d[0]*k, y+d[1]*k)
		if math.Abs(vk) < refineTolerance {
			return k
		}
		switch {
		case v0*vk < 0:
			k1, v1 = k, vk
		case vk*v1 < 0:
			k0, v0 = k, vk
		default:
			return k
		}
	}
	return k
}
