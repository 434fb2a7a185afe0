package descriptor

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/glyphatlas/kerning"
)

// writer accumulates little-endian values and remembers the first error.
type writer struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriter(w)}
}

func (w *writer) uint32(v uint32) {
	if w.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(w.buf[:], v)
	_, w.err = w.w.Write(w.buf[:])
}

func (w *writer) float32(v float32) {
	w.uint32(math.Float32bits(v))
}

func (w *writer) uint8(v uint8) {
	if w.err != nil {
		return
	}
	w.err = w.w.WriteByte(v)
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Encode writes the binary descriptor to w.
func (d *Descriptor) Encode(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	bw := newWriter(w)
	bw.uint32(uint32(len(d.Glyphs)))
	bw.float32(d.LineHeight)
	bw.float32(d.Ascender)
	bw.float32(d.Descender)

	for _, g := range d.Glyphs {
		bw.uint32(uint32(g.Codepoint))
		bw.float32(g.Advance)
		bw.float32(g.OffsetX)
		bw.float32(g.OffsetY)
		bw.float32(g.Width)
		bw.float32(g.Height)
		if !d.Vector {
			bw.float32(g.UV.U)
			bw.float32(g.UV.V)
			bw.float32(g.UV.W)
			bw.float32(g.UV.H)
		}
	}

	for _, e := range d.Kerning {
		bw.float32(e.Value)
		bw.uint32(e.Run)
	}

	if err := bw.flush(); err != nil {
		return fmt.Errorf("descriptor: write: %w", err)
	}
	return nil
}

// reader decodes little-endian values and remembers the first error.
type reader struct {
	r   *bufio.Reader
	buf [4]byte
	err error
}

func newReader(r io.Reader) *reader {
	return &reader{r: bufio.NewReader(r)}
}

func (r *reader) uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if _, r.err = io.ReadFull(r.r, r.buf[:]); r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[:])
}

func (r *reader) float32() float32 {
	return math.Float32frombits(r.uint32())
}

func (r *reader) uint8() uint8 {
	if r.err != nil {
		return 0
	}
	var b byte
	b, r.err = r.r.ReadByte()
	return b
}

// atEOF reports whether the input is exhausted.
func (r *reader) atEOF() bool {
	if r.err != nil {
		return false
	}
	_, err := r.r.Peek(1)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		r.err = err
	}
	return false
}

// result maps a short read to ErrTruncated.
func (r *reader) result() error {
	if r.err == nil {
		return nil
	}
	if errors.Is(r.err, io.EOF) || errors.Is(r.err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return fmt.Errorf("descriptor: read: %w", r.err)
}

// Decode reads a binary descriptor. vector must match the mode the
// descriptor was written in, since the format does not record it.
func Decode(r io.Reader, vector bool) (*Descriptor, error) {
	br := newReader(r)

	n := br.uint32()
	d := &Descriptor{
		LineHeight: br.float32(),
		Ascender:   br.float32(),
		Descender:  br.float32(),
		Vector:     vector,
	}
	if err := br.result(); err != nil {
		return nil, err
	}

	d.Glyphs = make([]Glyph, 0, min(n, 1<<16))
	for i := uint32(0); i < n; i++ {
		g := Glyph{
			Codepoint: rune(br.uint32()),
			Advance:   br.float32(),
			OffsetX:   br.float32(),
			OffsetY:   br.float32(),
			Width:     br.float32(),
			Height:    br.float32(),
		}
		if !vector {
			g.UV.U = br.float32()
			g.UV.V = br.float32()
			g.UV.W = br.float32()
			g.UV.H = br.float32()
		}
		if err := br.result(); err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, err)
		}
		d.Glyphs = append(d.Glyphs, g)
	}

	for !br.atEOF() {
		e := kerning.Entry{Value: br.float32(), Run: br.uint32()}
		if err := br.result(); err != nil {
			return nil, fmt.Errorf("kerning run %d: %w", len(d.Kerning), err)
		}
		d.Kerning = append(d.Kerning, e)
	}
	if err := br.result(); err != nil {
		return nil, err
	}

	return d, nil
}
