package descriptor

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonGlyph struct {
	Codepoint rune        `json:"codepoint"`
	Char      string      `json:"char"`
	Advance   float32     `json:"advance"`
	OffsetX   float32     `json:"offsetX"`
	OffsetY   float32     `json:"offsetY"`
	Width     float32     `json:"width"`
	Height    float32     `json:"height"`
	UV        *[4]float32 `json:"uv,omitempty"`
}

type jsonDescriptor struct {
	LineHeight float32        `json:"lineHeight"`
	Ascender   float32        `json:"ascender"`
	Descender  float32        `json:"descender"`
	IDMap      map[string]int `json:"idmap"`
	Glyphs     []jsonGlyph    `json:"glyphs"`
	Kerning    [][]float32    `json:"kerning"`
}

// EncodeJSON writes the descriptor as indented JSON. The kerning table is
// expanded into an N x N matrix indexed [left][right], and idmap maps each
// character to its glyph index.
func (d *Descriptor) EncodeJSON(w io.Writer) error {
	matrix, err := d.Kerning.Matrix(len(d.Glyphs))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKerningSize, err)
	}

	jd := jsonDescriptor{
		LineHeight: d.LineHeight,
		Ascender:   d.Ascender,
		Descender:  d.Descender,
		IDMap:      make(map[string]int, len(d.Glyphs)),
		Glyphs:     make([]jsonGlyph, len(d.Glyphs)),
		Kerning:    matrix,
	}
	for i, g := range d.Glyphs {
		jg := jsonGlyph{
			Codepoint: g.Codepoint,
			Char:      string(g.Codepoint),
			Advance:   g.Advance,
			OffsetX:   g.OffsetX,
			OffsetY:   g.OffsetY,
			Width:     g.Width,
			Height:    g.Height,
		}
		if !d.Vector {
			jg.UV = &[4]float32{g.UV.U, g.UV.V, g.UV.W, g.UV.H}
		}
		jd.Glyphs[i] = jg
		jd.IDMap[jg.Char] = i
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&jd); err != nil {
		return fmt.Errorf("descriptor: encode JSON: %w", err)
	}
	return nil
}
