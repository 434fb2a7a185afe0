// Command glyphc compiles a font into a glyph atlas.
//
// Usage:
//
//	glyphc <font> <pxheight> <gap> <searchRadius> <outSize> [flags]
//	glyphc -transform <image> <searchRadius> <outSize> [-o=name]
//	glyphc -vector <font> [-chars=] [-charsfile=] [-o=name]
//
// The font is a file path or a font file name looked up in the system font
// directories. Flags may precede or follow the positional arguments.
// Bitmap compilation writes name.png and name.dat; vector compilation
// writes name.dat and name.outlines; -json adds name.json.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/descriptor"
	"github.com/gogpu/glyphatlas/text"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// options holds the parsed command line.
type options struct {
	transform bool
	vector    bool
	chars     string
	charsSet  bool
	charsFile string
	charsEnc  string
	charset   string
	kerning   string
	layout    string
	workers   int
	json      bool
	verbose   bool
	output    string

	args []string
}

// errUsage marks command line mistakes.
var errUsage = errors.New("usage")

func parse(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("glyphc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&o.transform, "transform", false, "turn an existing image into a distance field")
	fs.BoolVar(&o.vector, "vector", false, "emit glyph outlines instead of an atlas")
	fs.StringVar(&o.chars, "chars", "", "characters to compile")
	fs.StringVar(&o.charsFile, "charsfile", "", "file listing the characters to compile")
	fs.StringVar(&o.charsEnc, "charsenc", "utf-8", "encoding of -charsfile")
	fs.StringVar(&o.charset, "charset", "latin1", "built-in character set: ascii, latin1 or greek")
	fs.StringVar(&o.kerning, "kerning", "auto", "kerning source: auto, table, shaping or none")
	fs.StringVar(&o.layout, "layout", "tree", "atlas layout: tree or grid")
	fs.IntVar(&o.workers, "workers", 0, "distance field goroutines, 0 for all CPUs")
	fs.BoolVar(&o.json, "json", false, "also write a JSON descriptor")
	fs.BoolVar(&o.verbose, "v", false, "log pipeline details")
	fs.StringVar(&o.output, "o", "", "output name without extension")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage:")
		fmt.Fprintln(stderr, "  glyphc <font> <pxheight> <gap> <searchRadius> <outSize> [flags]")
		fmt.Fprintln(stderr, "  glyphc -transform <image> <searchRadius> <outSize> [-o=name]")
		fmt.Fprintln(stderr, "  glyphc -vector <font> [-chars=] [-charsfile=] [-o=name]")
		fs.PrintDefaults()
	}

	// Collect positionals between flags.
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		o.args = append(o.args, args[0])
		args = args[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "chars" {
			o.charsSet = true
		}
	})

	want := 5
	switch {
	case o.transform && o.vector:
		return nil, fmt.Errorf("%w: -transform and -vector are exclusive", errUsage)
	case o.transform:
		want = 3
	case o.vector:
		want = 1
	}
	if len(o.args) != want {
		fs.Usage()
		return nil, fmt.Errorf("%w: want %d arguments, got %d", errUsage, want, len(o.args))
	}
	return o, nil
}

// ints converts positional arguments to integers.
func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %q is not an integer", errUsage, a)
		}
		out[i] = n
	}
	return out, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(args []string, stderr io.Writer) int {
	o, err := parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "glyphc:", err)
		return exitUsage
	}

	log := newLogger(stderr, o.verbose)
	glyphatlas.SetLogger(log)
	defer glyphatlas.SetLogger(nil)

	switch {
	case o.transform:
		err = runTransform(o)
	case o.vector:
		err = runVector(o)
	default:
		err = runCompile(o)
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "glyphc:", err)
		return exitUsage
	default:
		log.Error("compilation failed", "kind", glyphatlas.KindOf(err), "err", err)
		return exitFatal
	}
}

// outputName returns the -o name or the input's base name without its
// extension.
func (o *options) outputName(input, suffix string) string {
	if o.output != "" {
		return o.output
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

func (o *options) config() (glyphatlas.Config, error) {
	cfg := glyphatlas.DefaultConfig()
	cfg.Workers = o.workers

	var err error
	if cfg.Kerning, err = text.ParseKernSource(o.kerning); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	if cfg.Layout, err = glyphatlas.ParseLayout(o.layout); err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}

	switch {
	case o.charsSet:
		// An explicit empty -chars= is an empty charset, not the default.
		cfg.Charset = glyphatlas.ParseCharset(o.chars)
	case o.charsFile != "":
		if cfg.Charset, err = glyphatlas.LoadCharsetFile(o.charsFile, o.charsEnc); err != nil {
			return cfg, err
		}
	default:
		if cfg.Charset, err = glyphatlas.NamedCharset(o.charset); err != nil {
			return cfg, fmt.Errorf("%w: %w", errUsage, err)
		}
	}
	return cfg, nil
}

func loadFont(name string) (*text.Font, error) {
	path, err := text.Locate(name)
	if err != nil {
		return nil, err
	}
	glyphatlas.Logger().Debug("loading font", "path", path)
	return text.ParseFile(path)
}

func runCompile(o *options) error {
	n, err := ints(o.args[1:])
	if err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	cfg.PixelHeight, cfg.Gap, cfg.SearchRadius, cfg.OutSize = n[0], n[1], n[2], n[3]

	f, err := loadFont(o.args[0])
	if err != nil {
		return err
	}
	res, err := glyphatlas.NewCompiler(f, cfg).Compile()
	if err != nil {
		return err
	}

	name := o.outputName(o.args[0], "")
	if err := atlas.SavePNG(name+".png", res.Image()); err != nil {
		return err
	}
	if err := writeFile(name+".dat", res.Descriptor.Encode); err != nil {
		return err
	}
	if o.json {
		if err := writeFile(name+".json", res.Descriptor.EncodeJSON); err != nil {
			return err
		}
	}
	glyphatlas.Logger().Info("wrote atlas", "name", name, "glyphs", len(res.Descriptor.Glyphs))
	return nil
}

func runVector(o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	f, err := loadFont(o.args[0])
	if err != nil {
		return err
	}
	res, err := glyphatlas.NewCompiler(f, cfg).CompileVector()
	if err != nil {
		return err
	}

	name := o.outputName(o.args[0], "")
	if err := writeFile(name+".dat", res.Descriptor.Encode); err != nil {
		return err
	}
	err = writeFile(name+".outlines", func(w io.Writer) error {
		return descriptor.EncodeOutlines(w, res.Outlines)
	})
	if err != nil {
		return err
	}
	if o.json {
		if err := writeFile(name+".json", res.Descriptor.EncodeJSON); err != nil {
			return err
		}
	}
	glyphatlas.Logger().Info("wrote outlines", "name", name, "glyphs", len(res.Outlines))
	return nil
}

func runTransform(o *options) error {
	n, err := ints(o.args[1:])
	if err != nil {
		return err
	}
	img, err := atlas.LoadGray(o.args[0])
	if err != nil {
		return err
	}
	field, err := glyphatlas.Transform(img, n[0], n[1])
	if err != nil {
		return err
	}
	return atlas.SavePNG(o.outputName(o.args[0], "-sdf")+".png", field)
}

// writeFile creates path and fills it with encode.
func writeFile(path string, encode func(io.Writer) error) error {
	// #nosec G304 -- Output path is provided by the user
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
