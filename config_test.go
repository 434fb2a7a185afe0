package glyphatlas

import (
	"errors"
	"testing"

	"github.com/gogpu/glyphatlas/sdf"
	"github.com/gogpu/glyphatlas/text"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.PixelHeight != 64 {
		t.Errorf("PixelHeight = %d, want 64", cfg.PixelHeight)
	}
	if cfg.Kerning != text.KernAuto {
		t.Errorf("Kerning = %v, want %v", cfg.Kerning, text.KernAuto)
	}
	if len(cfg.Charset) != len(CharsetLatin1()) {
		t.Errorf("len(Charset) = %d, want %d", len(cfg.Charset), len(CharsetLatin1()))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero pixel height", func(c *Config) { c.PixelHeight = 0 }, "PixelHeight"},
		{"negative gap", func(c *Config) { c.Gap = -1 }, "Gap"},
		{"negative out size", func(c *Config) { c.OutSize = -1 }, "OutSize"},
		{"zero radius", func(c *Config) { c.SearchRadius = 0 }, "SearchRadius"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "Workers"},
		{"bad polarity", func(c *Config) { c.Polarity = sdf.Polarity(7) }, "Polarity"},
		{"bad kerning", func(c *Config) { c.Kerning = text.KernSource(9) }, "Kerning"},
		{"bad layout", func(c *Config) { c.Layout = Layout(5) }, "Layout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestConfigValidateSkipsRadiusWithoutField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutSize = 0
	cfg.SearchRadius = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidateEmptyCharset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Charset = nil
	if err := cfg.Validate(); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("Validate() = %v, want ErrEmptyCharset", err)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "Gap", Reason: "must be non-negative"}
	want := "glyphatlas: invalid config.Gap: must be non-negative"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLayout(t *testing.T) {
	for _, l := range []Layout{LayoutTree, LayoutGrid} {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %v, %v, want %v", l.String(), got, err, l)
		}
	}
	if got, err := ParseLayout("GRID"); err != nil || got != LayoutGrid {
		t.Errorf("ParseLayout(GRID) = %v, %v, want grid", got, err)
	}
	if _, err := ParseLayout("spiral"); err == nil {
		t.Error("ParseLayout(spiral) error = nil, want error")
	}
	if got := Layout(9).String(); got != "Layout(9)" {
		t.Errorf("String() = %q, want Layout(9)", got)
	}
}
