package analysis

import (
	"edascope/domain/profile"
	"edascope/domain/table"
)

// TopCategories computes, per categorical/other column, the topK most
// frequent values with counts and shares. Columns are selected in original
// dataset order and truncated to the first maxColumns of them. Shares are
// relative to the column's non-missing cells. If either limit is <= 0 the
// report is empty. A column with zero non-missing values keeps its key in the
// report with an empty row sequence.
func TopCategories(t *table.Table, maxColumns, topK int) profile.TopCategoriesReport {
	report := make(profile.TopCategoriesReport)
	if maxColumns <= 0 || topK <= 0 {
		return report
	}

	selected := 0
	for i := range t.Columns {
		if selected == maxColumns {
			break
		}
		col := &t.Columns[i]
		kind := Classify(col)
		if kind != profile.KindCategorical && kind != profile.KindOther {
			continue
		}
		selected++

		counts := valueCounts(col)
		if len(counts) > topK {
			counts = counts[:topK]
		}

		nonMissing := len(col.Values) - col.MissingCount()
		for j := range counts {
			counts[j].Share = float64(counts[j].Count) / float64(nonMissing)
		}
		report[col.Name] = counts
	}
	return report
}
