// Package results defines the simulation engine's output table and its
// deterministic renderings.
//
// A Table is the entire contract between the engine and its consumers:
// one row per (parameter, noise level), in sweep order then parameter
// order. Tables are produced once per run and immutable thereafter.
package results

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// Row is one aggregated result for a single parameter at a single
// measurement-noise level.
type Row struct {
	// Name labels the parameter, "x_0" through "x_{n-1}".
	Name string `json:"name"`

	// Bias is the mean of (estimate - truth) over repetitions.
	Bias float64 `json:"bias"`

	// RMSE is the root-mean-square deviation of estimates from truth.
	RMSE float64 `json:"rmse"`

	// MeasSD is the measurement-error standard deviation of this sweep point.
	MeasSD float64 `json:"meas_sd"`
}

// Table is the flat result table for one simulation run.
// Row order is noise-level order crossed with parameter order.
type Table []Row

// Equal reports whether two tables are bit-identical.
//
// Floats are compared by their IEEE 754 bit patterns, not by tolerance:
// the reproducibility contract is exact, and this is what the replay
// command audits.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		a, b := t[i], other[i]
		if a.Name != b.Name {
			return false
		}
		if math.Float64bits(a.Bias) != math.Float64bits(b.Bias) {
			return false
		}
		if math.Float64bits(a.RMSE) != math.Float64bits(b.RMSE) {
			return false
		}
		if math.Float64bits(a.MeasSD) != math.Float64bits(b.MeasSD) {
			return false
		}
	}
	return true
}

// Names returns the distinct parameter names in first-appearance order.
func (t Table) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range t {
		if !seen[row.Name] {
			seen[row.Name] = true
			names = append(names, row.Name)
		}
	}
	return names
}

// Filter returns the rows for a single parameter, preserving sweep order.
func (t Table) Filter(name string) Table {
	var out Table
	for _, row := range t {
		if row.Name == name {
			out = append(out, row)
		}
	}
	return out
}

// NormalizeLabel returns the NFC normalization of a user-supplied run
// label. Labels are normalized before storage so that lookups are not
// sensitive to Unicode encoding forms.
func NormalizeLabel(label string) string {
	return norm.NFC.String(label)
}
