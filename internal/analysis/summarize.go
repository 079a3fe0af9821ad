package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"edascope/domain/profile"
	"edascope/domain/table"
)

// Summarize builds the per-column structured summary plus dataset shape.
// Column order mirrors the source order. A 0-row table yields missing_share 0
// and no type-specific stats for every column.
func Summarize(t *table.Table) profile.DatasetSummary {
	summary := profile.DatasetSummary{
		NRows:   t.NumRows(),
		NCols:   t.NumCols(),
		Columns: make([]profile.ColumnSummary, 0, t.NumCols()),
	}

	for i := range t.Columns {
		col := &t.Columns[i]
		summary.Columns = append(summary.Columns, summarizeColumn(col, summary.NRows))
	}
	return summary
}

func summarizeColumn(col *table.Column, nRows int) profile.ColumnSummary {
	cs := profile.ColumnSummary{
		Name: col.Name,
		Kind: Classify(col),
	}

	cs.MissingCount = col.MissingCount()
	if nRows > 0 {
		cs.MissingShare = float64(cs.MissingCount) / float64(nRows)
	}

	counts := valueCounts(col)
	cs.UniqueCount = len(counts)

	switch cs.Kind {
	case profile.KindNumeric:
		cs.Numeric = numericStats(col.Floats())
	case profile.KindCategorical, profile.KindBoolean:
		if len(counts) > 0 {
			cs.Categorical = &profile.CategoricalStats{
				Top:      counts[0].Value,
				TopCount: counts[0].Count,
			}
		}
	}
	return cs
}

// numericStats returns nil when the column has no non-missing values.
func numericStats(data []float64) *profile.NumericStats {
	if len(data) == 0 {
		return nil
	}
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)

	// Sample standard deviation to match the usual EDA convention; a single
	// observation has no spread to estimate, report 0.
	stdDev := 0.0
	if len(data) > 1 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}

	return &profile.NumericStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		StdDev: stdDev,
	}
}

// valueCounts tallies non-missing values, ordered by count descending with
// ties broken by first-seen order (stable).
func valueCounts(col *table.Column) []profile.CategoryCount {
	index := make(map[string]int)
	counts := make([]profile.CategoryCount, 0)

	for _, v := range col.Values {
		if v.IsMissing {
			continue
		}
		key := v.Key()
		if at, ok := index[key]; ok {
			counts[at].Count++
		} else {
			index[key] = len(counts)
			counts = append(counts, profile.CategoryCount{Value: key, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
