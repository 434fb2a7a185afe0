package pack

import (
	"fmt"
	"sort"
)

// none marks an absent child in the node arena.
const none = -1

// node is a rectangle of atlas space. An unused node is free space; a used
// node holds a box in its top-left corner and owns the two strips left over
// beside (right) and below (down) it.
type node struct {
	x, y, w, h  int
	used        bool
	down, right int
}

// tree is a growing binary tree of nodes stored in an arena. Children are
// addressed by index, so no node is reachable from two parents and the whole
// tree is released with the arena.
type tree struct {
	nodes []node
	root  int
}

func newTree(w, h int) *tree {
	t := &tree{}
	t.root = t.add(0, 0, w, h)
	return t
}

// add appends a free node and returns its index.
func (t *tree) add(x, y, w, h int) int {
	t.nodes = append(t.nodes, node{x: x, y: y, w: w, h: h, down: none, right: none})
	return len(t.nodes) - 1
}

// find returns the first free node, depth first with the down strip before
// the right strip, that can hold a w×h box.
func (t *tree) find(i, w, h int) int {
	if i == none {
		return none
	}
	n := &t.nodes[i]
	if n.used {
		if f := t.find(n.down, w, h); f != none {
			return f
		}
		return t.find(n.right, w, h)
	}
	if w <= n.w && h <= n.h {
		return i
	}
	return none
}

// split marks node i used by a w×h box and creates the remaining strips.
func (t *tree) split(i, w, h int) int {
	n := t.nodes[i]
	down := t.add(n.x, n.y+h, n.w, n.h-h)
	right := t.add(n.x+w, n.y, n.w-w, h)

	n.used = true
	n.down = down
	n.right = right
	t.nodes[i] = n
	return i
}

// grow enlarges the tree to make room for a w×h box and places it. The
// direction that keeps the atlas closest to square is preferred.
func (t *tree) grow(w, h int) (int, error) {
	r := t.nodes[t.root]

	canGrowDown := w <= r.w
	canGrowRight := h <= r.h

	shouldGrowRight := canGrowRight && r.h >= r.w+w
	shouldGrowDown := canGrowDown && r.w >= r.h+h

	switch {
	case shouldGrowRight:
		return t.growRight(w, h)
	case shouldGrowDown:
		return t.growDown(w, h)
	case canGrowRight:
		return t.growRight(w, h)
	case canGrowDown:
		return t.growDown(w, h)
	}
	return none, fmt.Errorf("%w: %dx%d box against %dx%d atlas", ErrInfeasible, w, h, r.w, r.h)
}

func (t *tree) growRight(w, h int) (int, error) {
	old := t.root
	r := t.nodes[old]

	strip := t.add(r.w, 0, w, r.h)
	root := t.add(0, 0, r.w+w, r.h)
	t.nodes[root].used = true
	t.nodes[root].down = old
	t.nodes[root].right = strip
	t.root = root

	return t.place(w, h)
}

func (t *tree) growDown(w, h int) (int, error) {
	old := t.root
	r := t.nodes[old]

	strip := t.add(0, r.h, r.w, h)
	root := t.add(0, 0, r.w, r.h+h)
	t.nodes[root].used = true
	t.nodes[root].down = strip
	t.nodes[root].right = old
	t.root = root

	return t.place(w, h)
}

// place finds room for a w×h box in the current tree.
func (t *tree) place(w, h int) (int, error) {
	if i := t.find(t.root, w, h); i != none {
		return t.split(i, w, h), nil
	}
	r := t.nodes[t.root]
	return none, fmt.Errorf("%w: %dx%d box against %dx%d atlas", ErrInfeasible, w, h, r.w, r.h)
}

// Pack places boxes of the given sizes into a single atlas that grows as
// needed. Every box is surrounded by a margin of gap pixels.
//
// Boxes are inserted in order of decreasing longer side; boxes with equal
// keys keep their input order, so the result depends only on the input.
// The packing is greedy and not optimal.
func Pack(sizes []Size, gap int) (*Packing, error) {
	if len(sizes) == 0 {
		return nil, ErrNoBoxes
	}
	if gap < 0 {
		return nil, fmt.Errorf("%w: gap %d", ErrInvalidSize, gap)
	}
	for i, s := range sizes {
		if s.W < 0 || s.H < 0 {
			return nil, fmt.Errorf("%w: box %d is %dx%d", ErrInvalidSize, i, s.W, s.H)
		}
	}

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]].Max() > sizes[order[b]].Max()
	})

	first := sizes[order[0]]
	t := newTree(first.W+2*gap, first.H+2*gap)

	rects := make([]Rectangle, len(sizes))
	for _, idx := range order {
		s := sizes[idx]
		w, h := s.W+2*gap, s.H+2*gap

		var (
			fit int
			err error
		)
		if i := t.find(t.root, w, h); i != none {
			fit = t.split(i, w, h)
		} else if fit, err = t.grow(w, h); err != nil {
			return nil, fmt.Errorf("box %d: %w", idx, err)
		}

		n := t.nodes[fit]
		rects[idx] = Rectangle{X: n.x + gap, Y: n.y + gap, W: s.W, H: s.H}
	}

	root := t.nodes[t.root]
	return &Packing{
		Rects:  rects,
		Width:  root.w,
		Height: root.h,
		Gap:    gap,
	}, nil
}
