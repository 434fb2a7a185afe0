// Package sdf converts a grayscale coverage bitmap into a single-channel
// signed distance field.
//
// Coverage is sampled bilinearly and shifted so that the byte value 128
// marks the glyph contour. For every output pixel the generator walks
// concentric rings around the corresponding source position until it finds
// a sample on the other side of the contour, then refines the crossing along
// that ray to sub-pixel accuracy. Distances are finally normalized
// symmetrically around zero, so the contour always quantizes to 128:
//
//	gen := sdf.NewGenerator(sdf.Config{SearchRadius: 8})
//	w, h := sdf.OutputSize(src.Rect.Dx(), src.Rect.Dy(), 256)
//	field, err := gen.Transform(src, w, h)
//
// The generator does not preserve aspect ratio on its own; use OutputSize
// to derive an output size that does.
//
// Rendering with the field is the usual threshold test:
//
//	float d = texture(field, uv).r - 0.5;
//	float alpha = clamp(d / fwidth(d) + 0.5, 0.0, 1.0);
package sdf
