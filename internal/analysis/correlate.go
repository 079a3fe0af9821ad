package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"edascope/domain/profile"
	"edascope/domain/table"
)

// Correlate computes the pairwise-complete Pearson correlation matrix over
// the numeric columns. With fewer than 2 numeric columns the matrix is empty,
// never an error. Each off-diagonal entry is computed once and mirrored, so
// the matrix is symmetric by construction; entries with fewer than 2
// overlapping rows are NaN. The diagonal is 1.0 for any column with at least
// one non-missing value and NaN otherwise.
func Correlate(t *table.Table) profile.CorrelationMatrix {
	numeric := make([]*table.Column, 0, t.NumCols())
	for i := range t.Columns {
		col := &t.Columns[i]
		if Classify(col) == profile.KindNumeric {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) < 2 {
		return profile.CorrelationMatrix{}
	}

	names := make([]string, len(numeric))
	values := make([][]float64, len(numeric))
	for i, col := range numeric {
		names[i] = col.Name
		values[i] = make([]float64, len(numeric))
	}

	for i := range numeric {
		values[i][i] = diagonal(numeric[i])
		for j := i + 1; j < len(numeric); j++ {
			r := pairwisePearson(numeric[i], numeric[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return profile.CorrelationMatrix{Columns: names, Values: values}
}

func diagonal(col *table.Column) float64 {
	for _, v := range col.Values {
		if !v.IsMissing {
			return 1.0
		}
	}
	return math.NaN()
}

// pairwisePearson correlates two columns over rows where both are present.
func pairwisePearson(a, b *table.Column) float64 {
	var x, y []float64
	for i := range a.Values {
		va, vb := a.Values[i], b.Values[i]
		if va.IsMissing || vb.IsMissing {
			continue
		}
		x = append(x, va.AsFloat64())
		y = append(y, vb.AsFloat64())
	}
	if len(x) < 2 {
		return math.NaN()
	}
	// stat.Correlation yields NaN for zero-variance inputs, which is the
	// undefined-entry representation we want.
	return stat.Correlation(x, y, nil)
}
