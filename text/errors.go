package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnreadableFont is returned when font data cannot be parsed.
	ErrUnreadableFont = errors.New("text: unreadable font")

	// ErrFontNotFound is returned when a font name resolves to no file.
	ErrFontNotFound = errors.New("text: font not found")

	// ErrInvalidSize is returned for a non-positive pixel height.
	ErrInvalidSize = errors.New("text: pixel height must be positive")

	// ErrGlyphUnavailable is returned when a glyph cannot be rasterized.
	ErrGlyphUnavailable = errors.New("text: glyph unavailable")
)
