package analysis

import (
	"edascope/domain/profile"
)

// Flatten projects the structured summary into a flat, printable table with
// one row per column, in summary order. Stats a column does not have stay nil.
func Flatten(summary profile.DatasetSummary) []profile.SummaryRow {
	rows := make([]profile.SummaryRow, 0, len(summary.Columns))
	for _, c := range summary.Columns {
		row := profile.SummaryRow{
			Name:         c.Name,
			Kind:         c.Kind,
			MissingShare: c.MissingShare,
			UniqueCount:  c.UniqueCount,
		}
		if c.Numeric != nil {
			min, max, mean, stdDev := c.Numeric.Min, c.Numeric.Max, c.Numeric.Mean, c.Numeric.StdDev
			row.Min, row.Max, row.Mean, row.StdDev = &min, &max, &mean, &stdDev
		}
		if c.Categorical != nil {
			top, topCount := c.Categorical.Top, c.Categorical.TopCount
			row.Top, row.TopCount = &top, &topCount
		}
		rows = append(rows, row)
	}
	return rows
}
