package glyphatlas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	asciiChars  = buildASCII()
	latin1Chars = appendUpperHalf(asciiChars, charmap.ISO8859_1)
	greekChars  = appendUpperHalf(latin1Chars, charmap.ISO8859_7)
)

func buildASCII() []rune {
	chars := []rune{'\t'}
	for r := rune(0x20); r <= 0x7e; r++ {
		chars = append(chars, r)
	}
	return chars
}

// appendUpperHalf returns base followed by the characters bytes 0xA0..0xFF
// decode to in cm, skipping undefined bytes and characters base has.
func appendUpperHalf(base []rune, cm *charmap.Charmap) []rune {
	out := make([]rune, len(base), len(base)+96)
	copy(out, base)
	seen := make(map[rune]bool, len(out))
	for _, r := range out {
		seen[r] = true
	}
	for b := 0xa0; b <= 0xff; b++ {
		r := cm.DecodeByte(byte(b))
		if r == '\uFFFD' || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// CharsetASCII returns tab and the printable ASCII characters.
func CharsetASCII() []rune { return clone(asciiChars) }

// CharsetLatin1 returns CharsetASCII followed by the ISO-8859-1 upper
// half.
func CharsetLatin1() []rune { return clone(latin1Chars) }

// CharsetGreek returns CharsetLatin1 followed by the Greek letters and
// symbols of the ISO-8859-7 upper half.
func CharsetGreek() []rune { return clone(greekChars) }

func clone(r []rune) []rune {
	return append([]rune(nil), r...)
}

// NamedCharset returns the built-in character set called name: "ascii",
// "latin1" or "greek".
func NamedCharset(name string) ([]rune, error) {
	switch strings.ToLower(name) {
	case "ascii":
		return CharsetASCII(), nil
	case "latin1":
		return CharsetLatin1(), nil
	case "greek":
		return CharsetGreek(), nil
	}
	return nil, fmt.Errorf("glyphatlas: unknown charset %q", name)
}

// ParseCharset returns the distinct characters of s in order of first
// occurrence.
func ParseCharset(s string) []rune {
	return dedupe([]rune(s))
}

// LoadCharsetFile reads a character set from a text file in the named
// encoding. Encoding names are WHATWG labels such as "utf-8",
// "iso-8859-7" or "windows-1251"; empty means UTF-8. Line breaks are
// dropped.
func LoadCharsetFile(path, encoding string) ([]rune, error) {
	if encoding == "" {
		encoding = "utf-8"
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("glyphatlas: charset encoding %q: %w", encoding, err)
	}

	// #nosec G304 -- Charset file path is provided by the user
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("glyphatlas: decode %s: %w", path, err)
	}
	s := strings.NewReplacer("\r", "", "\n", "").Replace(string(decoded))
	return ParseCharset(strings.TrimPrefix(s, "\uFEFF")), nil
}

// dedupe removes repeated runes keeping the first occurrence.
func dedupe(chars []rune) []rune {
	seen := make(map[rune]bool, len(chars))
	out := make([]rune, 0, len(chars))
	for _, r := range chars {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
