// Package glyphatlas compiles a font into a runtime-ready glyph atlas.
//
// # Overview
//
// A compilation renders every character of a character set at a chosen
// pixel height, packs the coverage bitmaps into one grayscale atlas,
// records per-glyph placement and metrics plus a run-length-encoded pair
// kerning table in a compact binary descriptor, and optionally remaps the
// atlas into a signed distance field (SDF) for scalable rendering.
//
// # Quick Start
//
//	import "github.com/gogpu/glyphatlas"
//
//	f, err := text.ParseFile("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := glyphatlas.DefaultConfig()
//	cfg.PixelHeight = 48
//	cfg.OutSize = 512
//
//	res, err := glyphatlas.NewCompiler(f, cfg).Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	atlas.SavePNG("DejaVuSans.png", res.Field)
//	res.Descriptor.Encode(out)
//
// # Vector Mode
//
// CompileVector skips rasterization and emits each glyph's outline as line
// and quadratic segments normalized by the em size, for renderers that
// evaluate coverage on the GPU. The outline package answers point
// containment for such outlines.
//
// # Packages
//
//   - pack: growing binary-tree bin-packer and legacy grid layout
//   - sdf: signed distance field generator
//   - outline: outline extraction and containment
//   - kerning: run-length-encoded kerning tables
//   - atlas: glyph compositor and image I/O
//   - descriptor: binary and JSON descriptors, vector outline files
//   - text: font loading, rasterization, metrics and kerning
//
// # Logging
//
// The compiler logs through log/slog and is silent by default; see
// SetLogger.
package glyphatlas
