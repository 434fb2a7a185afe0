// Package kerning builds the run-length-encoded pair kerning table stored in
// glyph atlas descriptors.
//
// The table covers every ordered pair of a character set of n runes in
// first-character-major order: the value for (chars[i], chars[j]) sits at
// index i*n + j of the expanded sequence. Consecutive equal values collapse
// into one Entry, so a font without kerning yields a single run of n*n
// zeros.
package kerning

import (
	"fmt"
)

// Entry is one run of identical kerning values.
type Entry struct {
	Value float32
	Run   uint32
}

// Table is a run-length-encoded kerning sequence.
type Table []Entry

// KernFunc returns the kerning adjustment between left and right in pixels.
// dy is nonzero only for fonts with vertical kerning.
type KernFunc func(left, right rune) (dx, dy float64)

// Warning reports a pair whose vertical kerning component was dropped.
type Warning struct {
	Left, Right rune
	DY          float64
}

// String returns a string representation of the warning.
func (w Warning) String() string {
	return fmt.Sprintf("vertical kerning %g ignored for pair %q %q", w.DY, w.Left, w.Right)
}

// Build queries kern for every ordered pair of chars, multiplies the
// horizontal component by scale and run-length encodes the result.
// A nil kern produces an all-zero table.
func Build(chars []rune, scale float64, kern KernFunc) (Table, []Warning) {
	var (
		table    Table
		warnings []Warning
	)
	for _, left := range chars {
		for _, right := range chars {
			var value float32
			if kern != nil {
				dx, dy := kern(left, right)
				if dy != 0 {
					warnings = append(warnings, Warning{Left: left, Right: right, DY: dy})
				}
				value = float32(dx * scale)
			}
			table = table.push(value)
		}
	}
	return table, warnings
}

// Encode run-length encodes values.
func Encode(values []float32) Table {
	var table Table
	for _, v := range values {
		table = table.push(v)
	}
	return table
}

func (t Table) push(v float32) Table {
	if n := len(t); n > 0 && t[n-1].Value == v {
		t[n-1].Run++
		return t
	}
	return append(t, Entry{Value: v, Run: 1})
}

// Len returns the number of values the table expands to.
func (t Table) Len() int {
	total := 0
	for _, e := range t {
		total += int(e.Run)
	}
	return total
}

// Expand returns the decoded value sequence.
func (t Table) Expand() []float32 {
	values := make([]float32, 0, t.Len())
	for _, e := range t {
		for k := uint32(0); k < e.Run; k++ {
			values = append(values, e.Value)
		}
	}
	return values
}

// Lookup returns the kerning between chars[i] and chars[j] for a table
// built from n characters. Indices outside the table return 0.
func (t Table) Lookup(n, i, j int) float32 {
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0
	}
	idx := i*n + j
	for _, e := range t {
		if idx < int(e.Run) {
			return e.Value
		}
		idx -= int(e.Run)
	}
	return 0
}

// Matrix expands the table into an n x n matrix indexed [left][right].
// It returns an error if the table does not hold exactly n*n values.
func (t Table) Matrix(n int) ([][]float32, error) {
	if got := t.Len(); got != n*n {
		return nil, fmt.Errorf("kerning: table holds %d values, want %d", got, n*n)
	}
	flat := t.Expand()
	m := make([][]float32, n)
	for i := range m {
		m[i] = flat[i*n : (i+1)*n : (i+1)*n]
	}
	return m, nil
}

// Nonzero returns the number of pairs with a nonzero kerning value.
func (t Table) Nonzero() int {
	count := 0
	for _, e := range t {
		if e.Value != 0 {
			count += int(e.Run)
		}
	}
	return count
}
