// Package profile defines the immutable report value objects produced by the
// analysis core: per-column summaries, the missing-value table, the numeric
// correlation matrix, top-category tables, and the quality-flag report. Each
// is constructed once per invocation from a table snapshot and never mutated.
package profile

import (
	"math"
)

// ColumnKind is the semantic kind assigned by the column classifier.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindBoolean     ColumnKind = "boolean"
	KindOther       ColumnKind = "other"
)

// NumericStats contains statistics for numeric columns
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// CategoricalStats contains statistics for categorical and boolean columns
type CategoricalStats struct {
	Top      string `json:"top"`       // Most frequent value
	TopCount int    `json:"top_count"` // Its frequency
}

// ColumnSummary is the structured per-column summary.
// Invariants: MissingCount <= n_rows; UniqueCount <= n_rows - MissingCount.
type ColumnSummary struct {
	Name         string            `json:"name"`
	Kind         ColumnKind        `json:"kind"`
	MissingCount int               `json:"missing_count"`
	MissingShare float64           `json:"missing_share"`
	UniqueCount  int               `json:"n_unique"`
	Numeric      *NumericStats     `json:"numeric_stats,omitempty"`
	Categorical  *CategoricalStats `json:"categorical_stats,omitempty"`
}

// DatasetSummary is the dataset-level shape plus ordered column summaries.
// Invariant: NCols == len(Columns), order mirrors the source column order.
type DatasetSummary struct {
	NRows   int             `json:"n_rows"`
	NCols   int             `json:"n_cols"`
	Columns []ColumnSummary `json:"columns"`
}

// KindCount returns the number of columns of the given kind.
func (s DatasetSummary) KindCount(kind ColumnKind) int {
	n := 0
	for _, c := range s.Columns {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// MissingEntry is one row of the missing-value table.
type MissingEntry struct {
	Name         string  `json:"name"`
	MissingCount int     `json:"missing_count"`
	MissingShare float64 `json:"missing_share"`
}

// MissingTable lists per-column missing counts in deterministic order:
// missing_count descending, ties broken by column name ascending.
type MissingTable []MissingEntry

// MaxShare returns the maximum missing share, or 0 for an empty table.
func (m MissingTable) MaxShare() float64 {
	max := 0.0
	for _, e := range m {
		if e.MissingShare > max {
			max = e.MissingShare
		}
	}
	return max
}

// Lookup returns the entry for a column name.
func (m MissingTable) Lookup(name string) (MissingEntry, bool) {
	for _, e := range m {
		if e.Name == name {
			return e, true
		}
	}
	return MissingEntry{}, false
}

// CorrelationMatrix is the square, symmetric Pearson matrix over numeric
// columns. Undefined entries are NaN. Empty when fewer than 2 numeric
// columns exist.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Empty reports whether the matrix has no rows/columns.
func (m CorrelationMatrix) Empty() bool {
	return len(m.Columns) == 0
}

// At returns entry (i, j).
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Defined reports whether entry (i, j) holds a defined correlation.
func (m CorrelationMatrix) Defined(i, j int) bool {
	return !math.IsNaN(m.Values[i][j])
}

// CategoryCount is one row of a top-category table.
type CategoryCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // Count / non-missing cells of the column
}

// TopCategoriesReport maps column name to its top-k most frequent values,
// ordered by count descending then first-seen order.
type TopCategoriesReport map[string][]CategoryCount

// QualityFlags is the composite quality-flag report: boolean heuristics plus
// one explainable [0,1] score. Pure function of a single table snapshot.
type QualityFlags struct {
	MaxMissingShare      float64 `json:"max_missing_share"`
	TooFewRows           bool    `json:"too_few_rows"`
	TooManyColumns       bool    `json:"too_many_columns"`
	TooManyMissing       bool    `json:"too_many_missing"`
	HasConstantColumns   bool    `json:"has_constant_columns"`
	HasManyZeroValues    bool    `json:"has_many_zero_values"`
	NoNumericColumns     bool    `json:"no_numeric_columns"`
	NoCategoricalColumns bool    `json:"no_categorical_columns"`
	QualityScore         float64 `json:"quality_score"`
}

// BoolMap returns only the boolean flags, keyed by their report names.
func (f QualityFlags) BoolMap() map[string]bool {
	return map[string]bool{
		"too_few_rows":           f.TooFewRows,
		"too_many_columns":       f.TooManyColumns,
		"too_many_missing":       f.TooManyMissing,
		"has_constant_columns":   f.HasConstantColumns,
		"has_many_zero_values":   f.HasManyZeroValues,
		"no_numeric_columns":     f.NoNumericColumns,
		"no_categorical_columns": f.NoCategoricalColumns,
	}
}

// Map returns the full flag mapping including the numeric entries.
func (f QualityFlags) Map() map[string]interface{} {
	out := map[string]interface{}{
		"max_missing_share": f.MaxMissingShare,
		"quality_score":     f.QualityScore,
	}
	for k, v := range f.BoolMap() {
		out[k] = v
	}
	return out
}
