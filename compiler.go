package glyphatlas

import (
	"fmt"
	"image"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/descriptor"
	"github.com/gogpu/glyphatlas/kerning"
	"github.com/gogpu/glyphatlas/outline"
	"github.com/gogpu/glyphatlas/pack"
	"github.com/gogpu/glyphatlas/sdf"
	"github.com/gogpu/glyphatlas/text"
)

// Result is the output of a bitmap compilation.
type Result struct {
	// Atlas holds the packed coverage bitmap and each glyph's region.
	Atlas *atlas.Atlas

	// Field is the distance field of the atlas, or nil when the
	// compilation ran with OutSize 0 or the atlas has no pixels.
	Field *image.Gray

	Packing    *pack.Packing
	Descriptor *descriptor.Descriptor

	// Warnings lists the dropped vertical components and missing glyphs.
	Warnings []string
}

// Image returns the distance field if there is one, otherwise the coverage
// atlas.
func (r *Result) Image() *image.Gray {
	if r.Field != nil {
		return r.Field
	}
	return r.Atlas.Image
}

// VectorResult is the output of a vector compilation.
type VectorResult struct {
	Descriptor *descriptor.Descriptor
	Outlines   []descriptor.GlyphOutline
	Warnings   []string
}

// Compiler turns a font into glyph atlases.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	font   *text.Font
	config Config
	chars  []rune

	warnings []string
}

// NewCompiler creates a compiler for font with the given configuration.
// The configuration is validated when a compilation starts.
func NewCompiler(font *text.Font, config Config) *Compiler {
	return &Compiler{
		font:   font,
		config: config,
		chars:  dedupe(config.Charset),
	}
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() Config {
	return c.config
}

// Charset returns the deduplicated characters in descriptor order.
func (c *Compiler) Charset() []rune {
	return clone(c.chars)
}

func (c *Compiler) warn(msg string, args ...any) {
	s := fmt.Sprintf(msg, args...)
	c.warnings = append(c.warnings, s)
	Logger().Warn(s)
}

// Compile renders every character at the configured pixel height, packs
// the bitmaps into an atlas and describes the result. When OutSize is
// positive the atlas is also turned into a distance field.
func (c *Compiler) Compile() (*Result, error) {
	if err := c.config.Validate(); err != nil {
		return nil, wrap("config", err)
	}
	c.warnings = nil
	px := c.config.PixelHeight
	scale := 1 / float64(px)
	log := Logger().With("font", c.font.Name(), "px", px)

	face, err := c.font.NewFace(px)
	if err != nil {
		return nil, wrap("face", err)
	}
	defer face.Close()

	log.Debug("measuring glyphs", "count", len(c.chars))
	inked := false
	masks := make([]*image.Alpha, len(c.chars))
	sizes := make([]pack.Size, len(c.chars))
	glyphs := make([]descriptor.Glyph, len(c.chars))
	for i, r := range c.chars {
		g, err := face.Glyph(r)
		if err != nil {
			return nil, wrap("rasterize", err)
		}
		if !g.Found {
			c.warn("no glyph for %q, using .notdef", r)
		}
		if g.AdvanceY != 0 {
			c.warn("vertical advance %v of %q ignored", g.AdvanceY, r)
		}
		w, h := g.Width(), g.Height()
		inked = inked || (w > 0 && h > 0)
		masks[i] = g.Mask
		sizes[i] = pack.Size{W: w, H: h}
		glyphs[i] = descriptor.Glyph{
			Codepoint: r,
			Advance:   float32(g.Advance * scale),
			OffsetX:   float32(g.BearingX * scale),
			OffsetY:   float32((float64(h) - g.BearingY) * scale),
			Width:     float32(float64(w) * scale),
			Height:    float32(float64(h) * scale),
		}
	}

	table, err := c.kerning(face, scale)
	if err != nil {
		return nil, wrap("kerning", err)
	}

	packing, err := c.pack(sizes)
	if err != nil {
		return nil, wrap("pack", err)
	}
	log.Debug("packed glyphs", "layout", c.config.Layout,
		"width", packing.Width, "height", packing.Height,
		"utilization", packing.Utilization())

	at, err := atlas.Compose(masks, packing)
	if err != nil {
		return nil, wrap("compose", err)
	}
	for i := range glyphs {
		glyphs[i].UV = at.Regions[i].UV
	}
	log.Info("atlas composed", "width", at.Width(), "height", at.Height())

	m := face.Metrics()
	res := &Result{
		Atlas:   at,
		Packing: packing,
		Descriptor: &descriptor.Descriptor{
			LineHeight: float32(m.LineHeight * scale),
			Ascender:   float32(m.Ascender * scale),
			Descender:  float32(m.Descender * scale),
			Glyphs:     glyphs,
			Kerning:    table,
		},
	}

	if c.config.OutSize > 0 {
		if !inked {
			c.warn("atlas is empty, distance field skipped")
		} else {
			w, h := sdf.OutputSize(at.Width(), at.Height(), c.config.OutSize)
			field, err := sdf.NewGenerator(c.config.sdfConfig()).Transform(at.Image, w, h)
			if err != nil {
				return nil, wrap("sdf", err)
			}
			res.Field = field
			log.Info("distance field computed", "width", w, "height", h,
				"radius", c.config.SearchRadius)
		}
	}

	res.Warnings = c.warnings
	return res, nil
}

// CompileVector extracts every character's outline in em units and
// describes the glyphs without an atlas. Fonts with cubic outlines are
// rejected.
func (c *Compiler) CompileVector() (*VectorResult, error) {
	if err := c.config.Validate(); err != nil {
		return nil, wrap("config", err)
	}
	c.warnings = nil
	if info := c.font.Info(); info.Format == text.FormatCFF {
		return nil, &Error{
			Kind: KindUnsupportedGlyphFeature,
			Op:   "outline",
			Err:  fmt.Errorf("%s: %w: CFF outlines", info.Family, outline.ErrUnsupportedFeature),
		}
	}

	upm := c.font.UnitsPerEm()
	scale := 1 / float64(upm)
	log := Logger().With("font", c.font.Name(), "upm", upm)

	// A face at one pixel per unit reports metrics in font units.
	face, err := c.font.NewFace(upm)
	if err != nil {
		return nil, wrap("face", err)
	}
	defer face.Close()

	log.Debug("extracting outlines", "count", len(c.chars))
	glyphs := make([]descriptor.Glyph, len(c.chars))
	outlines := make([]descriptor.GlyphOutline, len(c.chars))
	for i, r := range c.chars {
		segs, err := c.font.Outline(r, upm)
		if err != nil {
			return nil, wrap("outline", err)
		}
		o, err := outline.Extract(segs, scale)
		if err != nil {
			return nil, wrap("outline", fmt.Errorf("%q: %w", r, err))
		}
		adv, ok := face.Advance(r)
		if !ok {
			c.warn("no glyph for %q, using .notdef", r)
		}

		g := descriptor.Glyph{Codepoint: r, Advance: float32(adv * scale)}
		if !o.IsEmpty() {
			b := o.Bounds()
			g.OffsetX = float32(b.LLx)
			g.OffsetY = float32(-b.LLy)
			g.Width = float32(b.URx - b.LLx)
			g.Height = float32(b.URy - b.LLy)
		}
		glyphs[i] = g
		outlines[i] = descriptor.GlyphOutline{Codepoint: r, Outline: o}
	}

	table, err := c.kerning(face, scale)
	if err != nil {
		return nil, wrap("kerning", err)
	}

	m := face.Metrics()
	return &VectorResult{
		Descriptor: &descriptor.Descriptor{
			LineHeight: float32(m.LineHeight * scale),
			Ascender:   float32(m.Ascender * scale),
			Descender:  float32(m.Descender * scale),
			Glyphs:     glyphs,
			Kerning:    table,
			Vector:     true,
		},
		Outlines: outlines,
		Warnings: c.warnings,
	}, nil
}

// kerning builds the pair table from the configured source. KernAuto uses
// the font's kerning tables and falls back to shaping when they yield
// nothing for the character set.
func (c *Compiler) kerning(face *text.Face, scale float64) (kerning.Table, error) {
	src := c.config.Kerning
	kern, err := face.Kerner(src)
	if err != nil {
		return nil, err
	}
	table, warnings := kerning.Build(c.chars, scale, kern)

	if src == text.KernAuto && table.Nonzero() == 0 && len(c.chars) > 1 {
		Logger().Debug("kerning table empty, falling back to shaping")
		shaped, err := face.Kerner(text.KernShaping)
		if err != nil {
			return nil, err
		}
		table, warnings = kerning.Build(c.chars, scale, shaped)
	}

	for _, w := range warnings {
		c.warn("%s", w)
	}
	Logger().Debug("kerning built", "source", src, "runs", len(table), "nonzero", table.Nonzero())
	return table, nil
}

// pack lays out the glyph boxes. The atlas is at least 1x1 so that it can
// be written as an image even when no glyph has pixels.
func (c *Compiler) pack(sizes []pack.Size) (*pack.Packing, error) {
	var (
		p   *pack.Packing
		err error
	)
	if c.config.Layout == LayoutGrid {
		cell := c.config.PixelHeight
		for _, s := range sizes {
			cell = max(cell, s.Max())
		}
		p, err = pack.Grid(sizes, cell, c.config.Gap)
	} else {
		p, err = pack.Pack(sizes, c.config.Gap)
	}
	if err != nil {
		return nil, err
	}
	p.Width, p.Height = max(p.Width, 1), max(p.Height, 1)
	return p, nil
}

// Transform turns an existing coverage image into a distance field whose
// longer side is outSize.
func Transform(img *image.Gray, searchRadius, outSize int) (*image.Gray, error) {
	if img == nil || img.Rect.Empty() {
		return nil, wrap("sdf", sdf.ErrEmptySource)
	}
	w, h := sdf.OutputSize(img.Rect.Dx(), img.Rect.Dy(), outSize)
	field, err := sdf.Transform(img, w, h, searchRadius)
	if err != nil {
		return nil, wrap("sdf", err)
	}
	Logger().Info("distance field computed", "width", w, "height", h, "radius", searchRadius)
	return field, nil
}
