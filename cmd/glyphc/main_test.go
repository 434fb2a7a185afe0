package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/descriptor"
)

func writeTestFont(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseInterleavedFlags(t *testing.T) {
	o, err := parse([]string{"font.ttf", "-chars=abc", "32", "4", "-json", "8", "256", "-o=out"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if len(o.args) != 5 || o.args[0] != "font.ttf" || o.args[4] != "256" {
		t.Errorf("args = %q, want five positionals", o.args)
	}
	if o.chars != "abc" || !o.json || o.output != "out" {
		t.Errorf("flags = %+v", o)
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"too few", []string{"font.ttf", "32"}},
		{"transform arity", []string{"-transform", "a.png", "4"}},
		{"exclusive modes", []string{"-transform", "-vector", "a"}},
		{"not a number", []string{"font.ttf", "big", "4", "8", "256"}},
		{"unknown flag", []string{"-bogus", "font.ttf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args, &bytes.Buffer{}); got != exitUsage {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, exitUsage)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	if got := run([]string{"-h"}, &bytes.Buffer{}); got != exitOK {
		t.Errorf("run(-h) = %d, want %d", got, exitOK)
	}
}

func TestRunMissingFont(t *testing.T) {
	var stderr bytes.Buffer
	args := []string{"no-such-font-file.ttf", "32", "2", "4", "0"}
	if got := run(args, &stderr); got != exitFatal {
		t.Errorf("run() = %d, want %d; stderr: %s", got, exitFatal, stderr.String())
	}
}

func TestRunEmptyChars(t *testing.T) {
	font := writeTestFont(t)
	name := filepath.Join(t.TempDir(), "empty")

	var stderr bytes.Buffer
	args := []string{font, "16", "1", "4", "0", "-chars=", "-o=" + name}
	if got := run(args, &stderr); got != exitFatal {
		t.Errorf("run(-chars=) = %d, want %d; stderr: %s", got, exitFatal, stderr.String())
	}
	if !bytes.Contains(stderr.Bytes(), []byte("EmptyCharset")) {
		t.Errorf("stderr = %q, want an EmptyCharset error", stderr.String())
	}
	if _, err := os.Stat(name + ".png"); err == nil {
		t.Error("atlas written for an empty charset")
	}
}

func TestRunBlankCharsNoGap(t *testing.T) {
	font := writeTestFont(t)
	name := filepath.Join(t.TempDir(), "blank")

	var stderr bytes.Buffer
	args := []string{font, "16", "0", "4", "64", "-chars= ", "-o=" + name}
	if got := run(args, &stderr); got != exitOK {
		t.Fatalf("run() = %d, want %d; stderr: %s", got, exitOK, stderr.String())
	}
	for _, ext := range []string{".png", ".dat"} {
		if fi, err := os.Stat(name + ext); err != nil || fi.Size() == 0 {
			t.Errorf("%s: %v, want a non-empty file", ext, err)
		}
	}
}

func TestRunCompile(t *testing.T) {
	font := writeTestFont(t)
	name := filepath.Join(t.TempDir(), "atlas")

	var stderr bytes.Buffer
	args := []string{font, "24", "2", "4", "128", "-chars=Hello", "-json", "-o=" + name}
	if got := run(args, &stderr); got != exitOK {
		t.Fatalf("run() = %d, want %d; stderr: %s", got, exitOK, stderr.String())
	}

	img, err := atlas.LoadGray(name + ".png")
	if err != nil {
		t.Fatalf("LoadGray() error = %v", err)
	}
	if b := img.Bounds(); max(b.Dx(), b.Dy()) != 128 {
		t.Errorf("distance field bounds = %v, want longer side 128", b)
	}

	f, err := os.Open(name + ".dat")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	d, err := descriptor.Decode(f, false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := len(d.Glyphs); got != 4 {
		t.Errorf("len(Glyphs) = %d, want 4", got)
	}

	if _, err := os.Stat(name + ".json"); err != nil {
		t.Errorf("JSON descriptor missing: %v", err)
	}
}

func TestRunVector(t *testing.T) {
	font := writeTestFont(t)
	name := filepath.Join(t.TempDir(), "vec")

	var stderr bytes.Buffer
	if got := run([]string{"-vector", font, "-chars=Oi", "-o=" + name}, &stderr); got != exitOK {
		t.Fatalf("run() = %d, want %d; stderr: %s", got, exitOK, stderr.String())
	}

	f, err := os.Open(name + ".outlines")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	glyphs, err := descriptor.DecodeOutlines(f)
	if err != nil {
		t.Fatalf("DecodeOutlines() error = %v", err)
	}
	if len(glyphs) != 2 || glyphs[0].Codepoint != 'O' {
		t.Errorf("DecodeOutlines() = %d glyphs, want O and i", len(glyphs))
	}
}

func TestRunTransform(t *testing.T) {
	dir := t.TempDir()
	src := image.NewGray(image.Rect(0, 0, 40, 20))
	for y := 5; y < 15; y++ {
		for x := 10; x < 30; x++ {
			src.Pix[y*src.Stride+x] = 255
		}
	}
	in := filepath.Join(dir, "coverage.png")
	if err := atlas.SavePNG(in, src); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	out := filepath.Join(dir, "field")
	if got := run([]string{"-transform", in, "4", "20", "-o=" + out}, &stderr); got != exitOK {
		t.Fatalf("run() = %d, want %d; stderr: %s", got, exitOK, stderr.String())
	}
	img, err := atlas.LoadGray(out + ".png")
	if err != nil {
		t.Fatalf("LoadGray() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("bounds = %v, want 20x10", b)
	}
}

func TestOutputName(t *testing.T) {
	o := &options{}
	if got := o.outputName("/fonts/DejaVuSans.ttf", ""); got != "DejaVuSans" {
		t.Errorf("outputName() = %q, want DejaVuSans", got)
	}
	if got := o.outputName("glyphs.png", "-sdf"); got != "glyphs-sdf" {
		t.Errorf("outputName() = %q, want glyphs-sdf", got)
	}
	o.output = "custom"
	if got := o.outputName("x.ttf", ""); got != "custom" {
		t.Errorf("outputName() = %q, want custom", got)
	}
}
