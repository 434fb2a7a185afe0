package pack

import (
	"fmt"
	"math"
	"math/bits"
)

// GridAllocator hands out uniform square cells row by row.
type GridAllocator struct {
	cellSize int // Size of each cell, gap margin excluded
	gap      int // Margin around each cell
	cols     int // Number of columns
	rows     int // Number of rows
	next     int // Next cell index
}

// NewGridAllocator creates a grid of cols×rows cells.
func NewGridAllocator(cols, rows, cellSize, gap int) *GridAllocator {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	return &GridAllocator{
		cellSize: cellSize,
		gap:      gap,
		cols:     cols,
		rows:     rows,
	}
}

// Allocate returns the top-left corner of the next free cell, inside its
// margin. Returns -1, -1, false if the grid is full.
func (g *GridAllocator) Allocate() (x, y int, ok bool) {
	if g.IsFull() {
		return -1, -1, false
	}

	col := g.next % g.cols
	row := g.next / g.cols

	pitch := g.cellSize + 2*g.gap
	x = col*pitch + g.gap
	y = row*pitch + g.gap

	g.next++
	return x, y, true
}

// Capacity returns the maximum number of cells that can be allocated.
func (g *GridAllocator) Capacity() int {
	return g.cols * g.rows
}

// Remaining returns the number of cells still available.
func (g *GridAllocator) Remaining() int {
	return g.Capacity() - g.next
}

// IsFull returns true if no more cells can be allocated.
func (g *GridAllocator) IsFull() bool {
	return g.next >= g.cols*g.rows
}

// Extent returns the pixel size covered by the whole grid.
func (g *GridAllocator) Extent() Size {
	pitch := g.cellSize + 2*g.gap
	return Size{W: g.cols * pitch, H: g.rows * pitch}
}

// Grid lays boxes out on a square grid of cell-sized slots in input order,
// ceil(sqrt(n)) slots per row. The atlas is square with a power-of-two side.
// This is the fixed layout of older atlas formats; Pack is much tighter.
func Grid(sizes []Size, cell, gap int) (*Packing, error) {
	if len(sizes) == 0 {
		return nil, ErrNoBoxes
	}
	if gap < 0 || cell <= 0 {
		return nil, fmt.Errorf("%w: cell %d, gap %d", ErrInvalidSize, cell, gap)
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(sizes)))))
	g := NewGridAllocator(cols, cols, cell, gap)

	rects := make([]Rectangle, len(sizes))
	for i, s := range sizes {
		if s.W < 0 || s.H < 0 {
			return nil, fmt.Errorf("%w: box %d is %dx%d", ErrInvalidSize, i, s.W, s.H)
		}
		if s.W > cell || s.H > cell {
			return nil, fmt.Errorf("%w: box %d is %dx%d, cell is %d", ErrGridFull, i, s.W, s.H, cell)
		}
		x, y, ok := g.Allocate()
		if !ok {
			return nil, fmt.Errorf("%w: %d cells for %d boxes", ErrGridFull, g.Capacity(), len(sizes))
		}
		rects[i] = Rectangle{X: x, Y: y, W: s.W, H: s.H}
	}

	side := nextPowerOfTwo(g.Extent().W)
	return &Packing{
		Rects:  rects,
		Width:  side,
		Height: side,
		Gap:    gap,
	}, nil
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
