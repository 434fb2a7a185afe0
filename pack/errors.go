package pack

import "errors"

// Sentinel errors for pack package.
var (
	// ErrNoBoxes is returned when Pack is called with no sizes.
	ErrNoBoxes = errors.New("pack: no boxes to pack")

	// ErrInvalidSize is returned for negative box dimensions or gap.
	ErrInvalidSize = errors.New("pack: negative box size or gap")

	// ErrInfeasible is returned when a box can neither be placed in the
	// free space of the tree nor accommodated by growing it.
	ErrInfeasible = errors.New("pack: box cannot be placed")

	// ErrGridFull is returned when a grid layout has fewer cells than boxes
	// or a box is larger than a cell.
	ErrGridFull = errors.New("pack: box does not fit grid cell")
)
