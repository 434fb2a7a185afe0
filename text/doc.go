// Package text loads fonts and produces the per-glyph data a glyph atlas
// is built from: coverage bitmaps, metrics, outlines and pair kerning.
//
// The pipeline mirrors a FreeType-based tool chain:
//
//   - Font: the parsed font file, safe for concurrent use
//   - Face: the font at one pixel height, not safe for concurrent use
//   - Glyph: a coverage bitmap with advance and bearings in pixels
//
// # Example usage
//
//	f, err := text.ParseFile("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	face, err := f.NewFace(32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	g, err := face.Glyph('A')
//	fmt.Println(g.Advance, g.Mask.Rect)
//
// # Backends
//
// Parsing, rasterization and table kerning use golang.org/x/image/font.
// Kerning that only exists in GPOS lookups the x/image parser does not
// read is recovered by shaping glyph pairs with go-text/typesetting.
// Font inspection (family, outline format) uses seehuhn.de/go/sfnt.
package text
