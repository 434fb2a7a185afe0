package text

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// KernSource selects where pair kerning comes from.
type KernSource int

const (
	// KernAuto uses KernTable, and KernShaping when the table has no
	// pairs for the character set.
	KernAuto KernSource = iota

	// KernTable reads the kern table or GPOS pair adjustments through the
	// rasterizing parser.
	KernTable

	// KernShaping measures each pair with a HarfBuzz shaper: the pair's
	// advance minus the advances of its glyphs shaped alone.
	KernShaping

	// KernNone disables kerning.
	KernNone
)

var kernSourceNames = [...]string{"auto", "table", "shaping", "none"}

// String returns a string representation of the source.
func (k KernSource) String() string {
	if k < 0 || int(k) >= len(kernSourceNames) {
		return fmt.Sprintf("KernSource(%d)", int(k))
	}
	return kernSourceNames[k]
}

// ParseKernSource parses a source name as printed by String.
func ParseKernSource(s string) (KernSource, error) {
	for i, name := range kernSourceNames {
		if strings.EqualFold(s, name) {
			return KernSource(i), nil
		}
	}
	return 0, fmt.Errorf("text: unknown kerning source %q", s)
}

// Kerner returns the pair kerning function for src. KernAuto returns the
// table function; the caller falls back to KernShaping itself since that
// depends on the character set.
func (f *Face) Kerner(src KernSource) (func(a, b rune) (dx, dy float64), error) {
	switch src {
	case KernAuto, KernTable:
		return f.Kern, nil
	case KernShaping:
		if err := f.initShaper(); err != nil {
			return nil, err
		}
		return f.shaper.kern, nil
	case KernNone:
		return func(rune, rune) (float64, float64) { return 0, 0 }, nil
	default:
		return nil, fmt.Errorf("text: unknown kerning source %d", int(src))
	}
}

// ShapedKern returns the kerning between a and b measured by shaping.
func (f *Face) ShapedKern(a, b rune) (dx, dy float64, err error) {
	if err := f.initShaper(); err != nil {
		return 0, 0, err
	}
	dx, dy = f.shaper.kern(a, b)
	return dx, dy, nil
}

func (f *Face) initShaper() error {
	if f.shaper != nil {
		return nil
	}
	face, err := gotext.ParseTTF(bytes.NewReader(f.font.data))
	if err != nil {
		return fmt.Errorf("%w: shaping: %w", ErrUnreadableFont, err)
	}
	f.shaper = &pairShaper{
		face:    face,
		size:    f.ppem,
		singles: make(map[rune]fixed.Int26_6),
	}
	return nil
}

// pairShaper measures kerning by shaping two-rune runs.
// It is not safe for concurrent use.
type pairShaper struct {
	hb      shaping.HarfbuzzShaper
	face    *gotext.Face
	size    fixed.Int26_6
	singles map[rune]fixed.Int26_6
	text    [2]rune
}

func (s *pairShaper) shape(runes []rune) shaping.Output {
	return s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      s.size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
}

func (s *pairShaper) advance(r rune) fixed.Int26_6 {
	if adv, ok := s.singles[r]; ok {
		return adv
	}
	s.text[0] = r
	adv := s.shape(s.text[:1]).Advance
	s.singles[r] = adv
	return adv
}

// kern returns the pair adjustment in whole pixels. Pairs the shaper
// merges into a ligature, or splits into more glyphs, have no kerning.
func (s *pairShaper) kern(a, b rune) (dx, dy float64) {
	s.text[0], s.text[1] = a, b
	out := s.shape(s.text[:2])
	if len(out.Glyphs) != 2 {
		return 0, 0
	}
	pair := out.Advance
	dx = roundFixed(pair - s.advance(a) - s.advance(b))
	dy = roundFixed(out.Glyphs[1].YOffset - out.Glyphs[0].YOffset)
	return dx, dy
}
