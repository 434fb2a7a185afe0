package sdf

import (
	"image"
	"math"

	"github.com/gogpu/glyphatlas/internal/parallel"
)

// Far is the magnitude stored by Distances for pixels with no contour in
// range.
const Far = far

// Polarity selects which side of the contour maps to high byte values.
type Polarity int

const (
	// InsideHigh maps the glyph interior above 128, like coverage.
	InsideHigh Polarity = iota

	// OutsideHigh maps the exterior above 128.
	OutsideHigh
)

// String returns a string representation of the polarity.
func (p Polarity) String() string {
	switch p {
	case InsideHigh:
		return "InsideHigh"
	case OutsideHigh:
		return "OutsideHigh"
	default:
		return "Unknown"
	}
}

// Config holds SDF generation parameters.
type Config struct {
	// SearchRadius is the largest distance, in source pixels, searched for
	// the contour. Pixels farther away saturate to 0 or 255.
	// Default: 8
	SearchRadius int

	// Workers is the number of goroutines computing rows.
	// Zero means GOMAXPROCS.
	Workers int

	// Polarity selects the sign convention of the output.
	// Default: InsideHigh
	Polarity Polarity
}

// DefaultConfig returns the default SDF configuration.
func DefaultConfig() Config {
	return Config{
		SearchRadius: 8,
		Polarity:     InsideHigh,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.SearchRadius < 1 {
		return &ConfigError{Field: "SearchRadius", Reason: "must be at least 1"}
	}
	if c.SearchRadius > 1024 {
		return &ConfigError{Field: "SearchRadius", Reason: "must be at most 1024"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	if c.Polarity != InsideHigh && c.Polarity != OutsideHigh {
		return &ConfigError{Field: "Polarity", Reason: "unknown polarity"}
	}
	return nil
}

// Generator creates distance fields from coverage bitmaps.
// A Generator is safe for concurrent use once created.
type Generator struct {
	config Config
	rings  []ring
}

// NewGenerator creates a new generator with the given configuration.
func NewGenerator(config Config) *Generator {
	g := &Generator{}
	g.SetConfig(config)
	return g
}

// DefaultGenerator creates a new generator with default configuration.
func DefaultGenerator() *Generator {
	return NewGenerator(DefaultConfig())
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// SetConfig updates the generator's configuration.
func (g *Generator) SetConfig(config Config) {
	g.config = config
	g.rings = nil
	if config.SearchRadius > 0 && config.SearchRadius <= 1024 {
		g.rings = buildRings(config.SearchRadius)
	}
}

// Transform computes a w×h distance field of src. Source and output sizes
// are independent; each output pixel centre is mapped back onto the source
// by the per-axis resolution ratio.
func (g *Generator) Transform(src *image.Gray, w, h int) (*image.Gray, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}
	if src == nil || src.Rect.Empty() {
		return nil, ErrEmptySource
	}
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidOutput
	}

	field := g.Distances(src, w, h)
	return quantize(field, w, h, g.config.Polarity), nil
}

// Distances returns the raw signed distances, row-major, for a w×h output.
// Interior distances are positive. Pixels with no contour in range hold
// +Far or -Far.
func (g *Generator) Distances(src *image.Gray, w, h int) []float64 {
	s := newSampler(src)
	scaleX := float64(s.w) / float64(w)
	scaleY := float64(s.h) / float64(h)

	field := make([]float64, w*h)
	parallel.Rows(h, g.config.Workers, func(start, end int) {
		for iy := start; iy < end; iy++ {
			by := (float64(iy) + 0.5) * scaleY
			row := field[iy*w : (iy+1)*w]
			for ix := range row {
				bx := (float64(ix) + 0.5) * scaleX
				row[ix] = g.distance(s, bx, by)
			}
		}
	})
	return field
}

// distance returns the signed distance from (x, y) to the nearest contour
// crossing found by the ring search.
func (g *Generator) distance(s *sampler, x, y float64) float64 {
	m := s.at(x, y)
	if m == 0 {
		return 0
	}
	inside := m >= 0

	for _, r := range g.rings {
		best := far
		for _, d := range r.offsets {
			n := s.at(x+d[0], y+d[1])
			if n == undefined || n*m > 0 {
				continue
			}
			k := 1.0
			if n != 0 {
				k = s.refine(x, y, d, m, n)
			}
			best = min(best, r.radius*k)
		}
		if best < far {
			if !inside {
				return -best
			}
			return best
		}
	}

	if !inside {
		return -far
	}
	return far
}

// quantize maps signed distances to bytes. The largest finite magnitude M
// maps [-M, M] onto [0, 255] so that zero lands on 128. Out-of-range pixels
// saturate. If no finite distance is nonzero, finite pixels map to 128.
func quantize(field []float64, w, h int, polarity Polarity) *image.Gray {
	var m float64
	for _, v := range field {
		if math.Abs(v) < far {
			m = max(m, math.Abs(v))
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range field {
		if polarity == OutsideHigh {
			v = -v
		}
		out.Pix[i] = quantizeOne(v, m)
	}
	return out
}

func quantizeOne(v, m float64) uint8 {
	switch {
	case v >= far:
		return 255
	case v <= -far:
		return 0
	case m == 0:
		return 128
	}
	q := math.Round((v + m) * 255 / (2 * m))
	return uint8(max(0, min(255, q)))
}

// Transform computes a w×h distance field of src with the given search
// radius and default settings otherwise.
func Transform(src *image.Gray, w, h, searchRadius int) (*image.Gray, error) {
	config := DefaultConfig()
	config.SearchRadius = searchRadius
	return NewGenerator(config).Transform(src, w, h)
}

// OutputSize returns an output size with the aspect ratio of a w×h source
// whose longer side is size. The shorter side is rounded up.
func OutputSize(w, h, size int) (int, int) {
	if w <= 0 || h <= 0 || size <= 0 {
		return 0, 0
	}
	if w > h {
		return size, int(math.Ceil(float64(h) * float64(size) / float64(w)))
	}
	return int(math.Ceil(float64(w) * float64(size) / float64(h))), size
}
