package profile

import (
	"strconv"
)

// SummaryRow is the flat projection of one ColumnSummary. Absent stats stay
// nil and serialize as empty cells, never as zero.
type SummaryRow struct {
	Name         string     `json:"name"`
	Kind         ColumnKind `json:"kind"`
	MissingShare float64    `json:"missing_share"`
	UniqueCount  int        `json:"n_unique"`
	Min          *float64   `json:"min,omitempty"`
	Max          *float64   `json:"max,omitempty"`
	Mean         *float64   `json:"mean,omitempty"`
	StdDev       *float64   `json:"std_dev,omitempty"`
	Top          *string    `json:"top,omitempty"`
	TopCount     *int       `json:"top_count,omitempty"`
}

// SummaryHeader returns the column headers of the flat summary table.
func SummaryHeader() []string {
	return []string{"name", "kind", "missing_share", "n_unique", "min", "max", "mean", "std_dev", "top", "top_count"}
}

// Record serializes the row for CSV output, matching SummaryHeader order.
func (r SummaryRow) Record() []string {
	return []string{
		r.Name,
		string(r.Kind),
		strconv.FormatFloat(r.MissingShare, 'g', -1, 64),
		strconv.Itoa(r.UniqueCount),
		formatOptFloat(r.Min),
		formatOptFloat(r.Max),
		formatOptFloat(r.Mean),
		formatOptFloat(r.StdDev),
		formatOptString(r.Top),
		formatOptInt(r.TopCount),
	}
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatOptString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
