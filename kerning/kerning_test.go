package kerning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		want   Table
	}{
		{"empty", nil, nil},
		{"single", []float32{1}, Table{{1, 1}}},
		{"all zero", []float32{0, 0, 0, 0}, Table{{0, 4}}},
		{
			"mixed",
			[]float32{0, 0, -0.1, -0.1, 0, 0.2},
			Table{{0, 2}, {-0.1, 2}, {0, 1}, {0.2, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
			}
			if got.Len() != len(tt.values) {
				t.Errorf("Len() = %d, want %d", got.Len(), len(tt.values))
			}
			if len(tt.values) > 0 {
				if diff := cmp.Diff(tt.values, got.Expand()); diff != "" {
					t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestEncodeRunsNeverRepeat(t *testing.T) {
	values := []float32{1, 1, 2, 2, 2, 1, 3, 3, 0, 0, 0, 0}
	table := Encode(values)
	for i := 1; i < len(table); i++ {
		if table[i].Value == table[i-1].Value {
			t.Errorf("runs %d and %d share value %v", i-1, i, table[i].Value)
		}
	}
	for i, e := range table {
		if e.Run == 0 {
			t.Errorf("run %d has zero length", i)
		}
	}
}

func TestBuild(t *testing.T) {
	chars := []rune("AVo")
	pairs := map[[2]rune]float64{
		{'A', 'V'}: -8,
		{'V', 'A'}: -8,
		{'V', 'o'}: -4,
	}
	kern := func(l, r rune) (float64, float64) {
		return pairs[[2]rune{l, r}], 0
	}

	table, warnings := Build(chars, 0.25, kern)
	if len(warnings) != 0 {
		t.Errorf("Build() warnings = %v, want none", warnings)
	}

	want := []float32{
		0, -2, 0, // A
		-2, 0, -1, // V
		0, 0, 0, // o
	}
	if diff := cmp.Diff(want, table.Expand()); diff != "" {
		t.Errorf("Build() values mismatch (-want +got):\n%s", diff)
	}
	if got := table.Lookup(3, 1, 2); got != -1 {
		t.Errorf("Lookup(V, o) = %v, want -1", got)
	}
	if got := table.Lookup(3, 0, 1); got != -2 {
		t.Errorf("Lookup(A, V) = %v, want -2", got)
	}
	if got := table.Lookup(3, 2, 2); got != 0 {
		t.Errorf("Lookup(o, o) = %v, want 0", got)
	}
	if got := table.Lookup(3, 3, 0); got != 0 {
		t.Errorf("Lookup(out of range) = %v, want 0", got)
	}
	if got := table.Nonzero(); got != 3 {
		t.Errorf("Nonzero() = %d, want 3", got)
	}
}

func TestBuildNoKerning(t *testing.T) {
	chars := []rune("abcdef")
	table, _ := Build(chars, 1, nil)
	want := Table{{0, 36}}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("Build(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildVerticalWarning(t *testing.T) {
	kern := func(l, r rune) (float64, float64) {
		if l == 'x' && r == 'y' {
			return 2, 3
		}
		return 0, 0
	}
	table, warnings := Build([]rune("xy"), 0.5, kern)

	want := []Warning{{Left: 'x', Right: 'y', DY: 3}}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Errorf("Build() warnings mismatch (-want +got):\n%s", diff)
	}
	if got := table.Lookup(2, 0, 1); got != 1 {
		t.Errorf("Lookup(x, y) = %v, want 1 (horizontal part kept)", got)
	}
}

func TestMatrix(t *testing.T) {
	table := Encode([]float32{0, 1, 2, 3})
	m, err := table.Matrix(2)
	if err != nil {
		t.Fatalf("Matrix(2) error = %v", err)
	}
	want := [][]float32{{0, 1}, {2, 3}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Matrix() mismatch (-want +got):\n%s", diff)
	}

	if _, err := table.Matrix(3); err == nil {
		t.Error("Matrix(3) error = nil, want size mismatch")
	}
}
