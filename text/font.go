package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	ssfnt "seehuhn.de/go/sfnt"
)

// Font is a parsed TrueType or OpenType font.
// Font is safe for concurrent use.
type Font struct {
	data []byte
	ot   *opentype.Font
	name string

	infoOnce sync.Once
	info     Info
}

// Parse parses TTF or OTF font data. The data slice is copied.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	ot, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFont, err)
	}

	f := &Font{data: dataCopy, ot: ot}
	if name, err := ot.Name(nil, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// ParseFile reads and parses a font file.
func ParseFile(path string) (*Font, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFont, err)
	}
	return Parse(data)
}

// Locate resolves a font argument to a file path. An existing file is
// returned as is; anything else is looked up by file name in the system
// font directories.
func Locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	path, err := findfont.Find(name)
	if err != nil || path == "" {
		return "", fmt.Errorf("%w: %s", ErrFontNotFound, name)
	}
	return path, nil
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	return f.name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.ot.NumGlyphs()
}

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.ot.UnitsPerEm())
}

// GlyphIndex returns the glyph index of r. ok is false when the font maps
// r to the .notdef glyph.
func (f *Font) GlyphIndex(r rune) (idx sfnt.GlyphIndex, ok bool) {
	var buf sfnt.Buffer
	idx, err := f.ot.GlyphIndex(&buf, r)
	if err != nil {
		return 0, false
	}
	return idx, idx != 0
}

// Has reports whether the font has a glyph for r.
func (f *Font) Has(r rune) bool {
	_, ok := f.GlyphIndex(r)
	return ok
}

// Outline returns the unhinted outline of r at ppem pixels per em, in the
// y-down 26.6 coordinates sfnt produces. A rune without a glyph yields the
// .notdef outline.
func (f *Font) Outline(r rune, ppem int) (sfnt.Segments, error) {
	if ppem <= 0 {
		return nil, ErrInvalidSize
	}
	var buf sfnt.Buffer
	idx, err := f.ot.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("text: glyph index %q: %w", r, err)
	}
	segs, err := f.ot.LoadGlyph(&buf, idx, fixed.I(ppem), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %q: %w", r, err)
	}

	// The segments alias buf; copy them out.
	out := make(sfnt.Segments, len(segs))
	copy(out, segs)
	return out, nil
}

// OutlineFormat identifies the glyph outline table of a font.
type OutlineFormat int

const (
	// FormatUnknown is reported when the font could not be inspected.
	FormatUnknown OutlineFormat = iota

	// FormatTrueType fonts store quadratic outlines in a glyf table.
	FormatTrueType

	// FormatCFF fonts store cubic outlines in a CFF table.
	FormatCFF
)

// String returns a string representation of the format.
func (o OutlineFormat) String() string {
	switch o {
	case FormatTrueType:
		return "TrueType"
	case FormatCFF:
		return "CFF"
	default:
		return "unknown"
	}
}

// Info summarizes a font's naming and structure.
type Info struct {
	Family     string
	UnitsPerEm int
	NumGlyphs  int
	Format     OutlineFormat
}

// Info inspects the font tables. Fields the inspector cannot read fall
// back to what the rasterizing parser reports.
func (f *Font) Info() Info {
	f.infoOnce.Do(func() {
		f.info = Info{
			Family:     f.name,
			UnitsPerEm: f.UnitsPerEm(),
			NumGlyphs:  f.NumGlyphs(),
		}
		sf, err := ssfnt.Read(bytes.NewReader(f.data))
		if err != nil {
			return
		}
		if sf.FamilyName != "" {
			f.info.Family = sf.FamilyName
		}
		switch {
		case sf.IsGlyf():
			f.info.Format = FormatTrueType
		case sf.IsCFF():
			f.info.Format = FormatCFF
		}
	})
	return f.info
}

// IsUnreadable reports whether err came from a font that failed to load.
func IsUnreadable(err error) bool {
	return errors.Is(err, ErrUnreadableFont) || errors.Is(err, ErrEmptyFontData) ||
		errors.Is(err, ErrFontNotFound)
}
