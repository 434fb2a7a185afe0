package outline

import "errors"

// Sentinel errors for outline package.
var (
	// ErrUnsupportedFeature is returned when a glyph uses a segment type the
	// extractor does not handle, such as a cubic Bezier curve.
	ErrUnsupportedFeature = errors.New("outline: unsupported glyph feature")

	// ErrMissingStart is returned when a contour does not open with Start.
	ErrMissingStart = errors.New("outline: contour does not begin with start segment")

	// ErrOpenContour is returned when a contour does not end at its start point.
	ErrOpenContour = errors.New("outline: contour is not closed")
)
