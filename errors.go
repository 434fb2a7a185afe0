package glyphatlas

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gogpu/glyphatlas/outline"
	"github.com/gogpu/glyphatlas/pack"
	"github.com/gogpu/glyphatlas/text"
)

// ErrEmptyCharset is returned when a compilation has no characters.
var ErrEmptyCharset = errors.New("glyphatlas: empty character set")

// Kind classifies compilation failures. All kinds are fatal.
type Kind int

const (
	// KindUnknown is reported for errors no other kind describes.
	KindUnknown Kind = iota

	// KindUnreadableFont means the font file is missing or corrupt.
	KindUnreadableFont

	// KindUnsupportedGlyphFeature means an outline uses a construct the
	// outline extractor rejects, such as a cubic curve.
	KindUnsupportedGlyphFeature

	// KindPackingInfeasible means a glyph box could not be placed.
	KindPackingInfeasible

	// KindEmptyCharset means the character set has no characters.
	KindEmptyCharset

	// KindIOFailure means an input or output file could not be read or
	// written.
	KindIOFailure
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnreadableFont:
		return "UnreadableFont"
	case KindUnsupportedGlyphFeature:
		return "UnsupportedGlyphFeature"
	case KindPackingInfeasible:
		return "PackingInfeasible"
	case KindEmptyCharset:
		return "EmptyCharset"
	case KindIOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Error is a classified compilation failure.
type Error struct {
	Kind Kind

	// Op names the pipeline step that failed, e.g. "pack" or "write".
	Op string

	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "glyphatlas: " + e.Err.Error()
	}
	return fmt.Sprintf("glyphatlas: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// wrap classifies err and attaches op. Nil stays nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}

// KindOf classifies err. Errors carrying an *Error report its kind; other
// errors are matched against the sentinels of the pipeline packages.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnknown {
		return e.Kind
	}
	switch {
	case text.IsUnreadable(err):
		return KindUnreadableFont
	case errors.Is(err, outline.ErrUnsupportedFeature):
		return KindUnsupportedGlyphFeature
	case errors.Is(err, pack.ErrInfeasible), errors.Is(err, pack.ErrGridFull):
		return KindPackingInfeasible
	case errors.Is(err, ErrEmptyCharset), errors.Is(err, pack.ErrNoBoxes):
		return KindEmptyCharset
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return KindIOFailure
	}
	return KindUnknown
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphatlas: invalid config." + e.Field + ": " + e.Reason
}
