package pack

// Size is the pixel size of a box.
type Size struct {
	W, H int
}

// Max returns the longer side.
func (s Size) Max() int {
	return max(s.W, s.H)
}

// Area returns W*H.
func (s Size) Area() int {
	return s.W * s.H
}

// Rectangle is a placed box. X and Y are the top-left corner of the box
// itself, excluding the gap margin.
type Rectangle struct {
	X, Y int
	W, H int
}

// Size returns the rectangle's dimensions.
func (r Rectangle) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Expand returns r grown by margin on every side.
func (r Rectangle) Expand(margin int) Rectangle {
	return Rectangle{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// Overlaps reports whether r and s share any pixel.
func (r Rectangle) Overlaps(s Rectangle) bool {
	if r.W <= 0 || r.H <= 0 || s.W <= 0 || s.H <= 0 {
		return false
	}
	return r.X < s.X+s.W && s.X < r.X+r.W &&
		r.Y < s.Y+s.H && s.Y < r.Y+r.H
}

// Packing is the result of a packing run.
type Packing struct {
	// Rects holds the placement of each box, indexed like the input sizes.
	Rects []Rectangle

	// Width and Height are the dimensions of the enclosing atlas.
	Width, Height int

	// Gap is the margin the boxes were packed with.
	Gap int
}

// Utilization returns the fraction of the atlas covered by boxes, gaps
// excluded.
func (p *Packing) Utilization() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	used := 0
	for _, r := range p.Rects {
		used += r.W * r.H
	}
	return float64(used) / float64(p.Width*p.Height)
}
