package sdf

import (
	"errors"
	"image"
	"math"
	"testing"
)

// disk returns a w×h coverage bitmap of an anti-aliased disk.
func disk(w, h int, cx, cy, r float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			c := math.Max(0, math.Min(1, r-d+0.5))
			img.Pix[img.PixOffset(x, y)] = uint8(math.Round(c * 255))
		}
	}
	return img
}

// halfPlane returns a bitmap whose first split columns are solid.
func halfPlane(w, h, split int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < split; x++ {
			img.Pix[img.PixOffset(x, y)] = 255
		}
	}
	return img
}

func TestDefaultGenerator(t *testing.T) {
	gen := DefaultGenerator()
	if gen.Config().SearchRadius != 8 {
		t.Errorf("DefaultGenerator SearchRadius = %d, want 8", gen.Config().SearchRadius)
	}
	if len(gen.rings) != 16 {
		t.Errorf("len(rings) = %d, want 16", len(gen.rings))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		field  string
	}{
		{"zero radius", Config{SearchRadius: 0}, "SearchRadius"},
		{"huge radius", Config{SearchRadius: 5000}, "SearchRadius"},
		{"negative workers", Config{SearchRadius: 4, Workers: -1}, "Workers"},
		{"bad polarity", Config{SearchRadius: 4, Polarity: 7}, "Polarity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}

	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestTransformErrors(t *testing.T) {
	gen := DefaultGenerator()

	if _, err := gen.Transform(nil, 8, 8); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Transform(nil) error = %v, want %v", err, ErrEmptySource)
	}
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	if _, err := gen.Transform(src, 0, 8); !errors.Is(err, ErrInvalidOutput) {
		t.Errorf("Transform(w=0) error = %v, want %v", err, ErrInvalidOutput)
	}
	bad := NewGenerator(Config{})
	if _, err := bad.Transform(src, 4, 4); err == nil {
		t.Error("Transform() with invalid config returned nil error")
	}
}

func TestRingSpacing(t *testing.T) {
	for _, r := range buildRings(6) {
		n := len(r.offsets)
		if want := int(2 * math.Pi * r.radius); n != want {
			t.Errorf("ring %.1f has %d samples, want %d", r.radius, n, want)
		}
		for _, d := range r.offsets {
			if got := math.Hypot(d[0], d[1]); math.Abs(got-r.radius) > 1e-9 {
				t.Errorf("ring %.1f sample at distance %v", r.radius, got)
			}
		}
	}
}

func TestSamplerShiftAndBounds(t *testing.T) {
	img := halfPlane(4, 2, 2)
	s := newSampler(img)

	tests := []struct {
		x, y, want float64
	}{
		{0, 0, 255 - 128},
		{3, 1, -128},
		{1.5, 0, 127.5 - 128},
		{-0.1, 0, undefined},
		{4, 0, undefined},
		{0, 2, undefined},
	}
	for _, tt := range tests {
		if got := s.at(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("at(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSamplerSubImage(t *testing.T) {
	img := halfPlane(8, 8, 4)
	sub := img.SubImage(image.Rect(3, 0, 8, 8)).(*image.Gray)
	s := newSampler(sub)

	if got := s.at(0, 0); got != 255-128 {
		t.Errorf("at(0, 0) on sub-image = %v, want 127", got)
	}
	if got := s.at(1, 0); got != -128 {
		t.Errorf("at(1, 0) on sub-image = %v, want -128", got)
	}
}

func TestHalfPlaneDistances(t *testing.T) {
	src := halfPlane(32, 8, 16)
	gen := NewGenerator(Config{SearchRadius: 4, Workers: 2})
	field := gen.Distances(src, 32, 8)

	// The bilinear contour lies at x = 15 + 127/255 in source space.
	edge := 15 + 127.0/255
	for x := 10; x < 22; x++ {
		want := edge - (float64(x) + 0.5)
		got := field[3*32+x]
		if math.Abs(want) > 4 {
			if math.Abs(got) != Far {
				t.Errorf("column %d: distance %v, want far", x, got)
			}
			continue
		}
		if want > 0 {
			// A sample straight along +x exists on every ring.
			if math.Abs(got-want) > 0.01 {
				t.Errorf("column %d: distance %v, want %v", x, got, want)
			}
			continue
		}
		// Rings with an odd sample count have no sample straight along -x;
		// the nearest ray overestimates by at most 1/cos(pi/9).
		if got >= 0 || -got < -want-0.01 || -got > -want*1.07+0.01 {
			t.Errorf("column %d: distance %v, want about %v", x, got, want)
		}
	}
}

func TestHalfPlaneQuantized(t *testing.T) {
	src := halfPlane(32, 8, 16)
	out, err := NewGenerator(Config{SearchRadius: 4}).Transform(src, 32, 8)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	row := out.Pix[out.PixOffset(0, 4):out.PixOffset(0, 5)]
	for x := 1; x < len(row); x++ {
		if int(row[x]) > int(row[x-1])+1 {
			t.Errorf("row not decreasing at column %d: %d -> %d", x, row[x-1], row[x])
		}
	}
	if row[0] != 255 || row[31] != 0 {
		t.Errorf("saturated ends = %d, %d, want 255, 0", row[0], row[31])
	}
	if d := int(row[15]) - 128; d < -1 || d > 1 {
		t.Errorf("contour column value = %d, want 128±1", row[15])
	}
}

func TestDiskSymmetryAndContour(t *testing.T) {
	src := disk(64, 64, 32, 32, 20)
	const radius = 8
	gen := NewGenerator(Config{SearchRadius: radius})

	field := gen.Distances(src, 64, 64)
	out, err := gen.Transform(src, 64, 64)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	var m float64
	for _, v := range field {
		if math.Abs(v) < Far {
			m = math.Max(m, math.Abs(v))
		}
	}
	if m <= 0 || m > radius {
		t.Fatalf("largest finite distance = %v, want in (0, %d]", m, radius)
	}

	lo, hi := 255, 0
	for _, v := range out.Pix {
		lo = min(lo, int(v))
		hi = max(hi, int(v))
	}
	if d := (hi - 128) - (128 - lo); d < -1 || d > 1 {
		t.Errorf("deviation from 128: +%d / -%d, want equal within 1", hi-128, 128-lo)
	}

	// Pixels straddling the contour stay within one source pixel of it.
	tol := int(math.Ceil(127/m)) + 2
	s := newSampler(src)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := s.at(float64(x)+0.5, float64(y)+0.5) + contour
			if c < 64 || c > 192 {
				continue
			}
			v := int(out.Pix[out.PixOffset(x, y)])
			if v < 128-tol || v > 128+tol {
				t.Errorf("edge pixel (%d,%d) coverage %.0f quantized to %d, want 128±%d", x, y, c, v, tol)
			}
		}
	}

	if v := out.Pix[out.PixOffset(32, 32)]; v != 255 {
		t.Errorf("centre value = %d, want 255", v)
	}
	if v := out.Pix[out.PixOffset(0, 0)]; v != 0 {
		t.Errorf("corner value = %d, want 0", v)
	}
}

func TestResampling(t *testing.T) {
	src := disk(64, 32, 32, 16, 10)
	gen := NewGenerator(Config{SearchRadius: 6})

	for _, size := range [][2]int{{32, 16}, {128, 64}, {16, 16}} {
		out, err := gen.Transform(src, size[0], size[1])
		if err != nil {
			t.Fatalf("Transform(%v) error: %v", size, err)
		}
		if out.Rect.Dx() != size[0] || out.Rect.Dy() != size[1] {
			t.Errorf("Transform(%v) size = %v", size, out.Rect.Size())
		}
		cx, cy := size[0]/2, size[1]/2
		if v := out.Pix[out.PixOffset(cx, cy)]; v < 128 {
			t.Errorf("Transform(%v) centre = %d, want inside (>= 128)", size, v)
		}
	}
}

func TestUniformBitmaps(t *testing.T) {
	empty := image.NewGray(image.Rect(0, 0, 8, 8))
	solid := halfPlane(8, 8, 8)

	tests := []struct {
		name     string
		src      *image.Gray
		polarity Polarity
		want     uint8
	}{
		{"empty", empty, InsideHigh, 0},
		{"solid", solid, InsideHigh, 255},
		{"empty inverted", empty, OutsideHigh, 255},
		{"solid inverted", solid, OutsideHigh, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(Config{SearchRadius: 3, Polarity: tt.polarity})
			out, err := gen.Transform(tt.src, 8, 8)
			if err != nil {
				t.Fatalf("Transform() error: %v", err)
			}
			for i, v := range out.Pix {
				if v != tt.want {
					t.Fatalf("pixel %d = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestContourOnlyBitmap(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = contour
	}
	out, err := Transform(img, 4, 4, 2)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	for i, v := range out.Pix {
		if v != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, v)
		}
	}
}

func TestQuantizeOne(t *testing.T) {
	tests := []struct {
		v, m float64
		want uint8
	}{
		{0, 4, 128},
		{4, 4, 255},
		{-4, 4, 0},
		{2, 4, 191},
		{Far, 4, 255},
		{-Far, 4, 0},
		{0, 0, 128},
	}
	for _, tt := range tests {
		if got := quantizeOne(tt.v, tt.m); got != tt.want {
			t.Errorf("quantizeOne(%v, %v) = %d, want %d", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		w, h, size   int
		wantW, wantH int
	}{
		{100, 50, 64, 64, 32},
		{50, 100, 64, 32, 64},
		{64, 64, 32, 32, 32},
		{3, 7, 10, 5, 10},
		{0, 7, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := OutputSize(tt.w, tt.h, tt.size)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("OutputSize(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.w, tt.h, tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestPolarityString(t *testing.T) {
	if InsideHigh.String() != "InsideHigh" || OutsideHigh.String() != "OutsideHigh" {
		t.Errorf("Polarity.String() = %q, %q", InsideHigh, OutsideHigh)
	}
}
