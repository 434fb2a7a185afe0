package glyphatlas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/glyphatlas/sdf"
	"github.com/gogpu/glyphatlas/text"
)

// Layout selects how glyph boxes are arranged in the atlas.
type Layout int

const (
	// LayoutTree packs boxes with the growing binary-tree packer.
	LayoutTree Layout = iota

	// LayoutGrid places boxes in uniform square cells on a power-of-two
	// atlas.
	LayoutGrid
)

// String returns a string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutTree:
		return "tree"
	case LayoutGrid:
		return "grid"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout parses "tree" or "grid".
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "tree":
		return LayoutTree, nil
	case "grid":
		return LayoutGrid, nil
	}
	return 0, fmt.Errorf("glyphatlas: unknown layout %q", s)
}

// Config holds compilation parameters.
type Config struct {
	// PixelHeight is the pixel size glyphs are rendered at. All descriptor
	// metrics are divided by it.
	// Default: 64
	PixelHeight int

	// Gap is the empty margin kept around every glyph in the atlas.
	// Default: 4
	Gap int

	// SearchRadius is the largest contour distance, in atlas pixels, the
	// distance field resolves.
	// Default: 8
	SearchRadius int

	// OutSize is the longer side of the distance field. Zero skips the
	// distance field and keeps the coverage atlas.
	// Default: 512
	OutSize int

	// Charset lists the characters to compile, in descriptor order.
	// Default: CharsetLatin1()
	Charset []rune

	// Kerning selects where pair kerning comes from.
	// Default: text.KernAuto
	Kerning text.KernSource

	// Layout selects the atlas arrangement.
	// Default: LayoutTree
	Layout Layout

	// Workers bounds the goroutines computing the distance field.
	// Zero means GOMAXPROCS.
	Workers int

	// Polarity selects which side of the contour maps to high bytes.
	// Default: sdf.InsideHigh
	Polarity sdf.Polarity
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{
		PixelHeight:  64,
		Gap:          4,
		SearchRadius: 8,
		OutSize:      512,
		Charset:      CharsetLatin1(),
		Kerning:      text.KernAuto,
		Layout:       LayoutTree,
		Polarity:     sdf.InsideHigh,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
// An empty character set yields ErrEmptyCharset.
func (c *Config) Validate() error {
	if c.PixelHeight < 1 {
		return &ConfigError{Field: "PixelHeight", Reason: "must be at least 1"}
	}
	if c.Gap < 0 {
		return &ConfigError{Field: "Gap", Reason: "must be non-negative"}
	}
	if c.OutSize < 0 {
		return &ConfigError{Field: "OutSize", Reason: "must be non-negative"}
	}
	if c.OutSize > 0 {
		sc := c.sdfConfig()
		if err := sc.Validate(); err != nil {
			var se *sdf.ConfigError
			if errors.As(err, &se) {
				return &ConfigError{Field: se.Field, Reason: se.Reason}
			}
			return err
		}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	switch c.Kerning {
	case text.KernAuto, text.KernTable, text.KernShaping, text.KernNone:
	default:
		return &ConfigError{Field: "Kerning", Reason: "unknown kerning source"}
	}
	if c.Layout != LayoutTree && c.Layout != LayoutGrid {
		return &ConfigError{Field: "Layout", Reason: "unknown layout"}
	}
	if len(c.Charset) == 0 {
		return ErrEmptyCharset
	}
	return nil
}

func (c *Config) sdfConfig() sdf.Config {
	return sdf.Config{
		SearchRadius: c.SearchRadius,
		Workers:      c.Workers,
		Polarity:     c.Polarity,
	}
}
