package analysis

import (
	"sort"

	"edascope/domain/profile"
	"edascope/domain/table"
)

// Missing derives the standalone missing-value table directly from raw data;
// it does not require a prior summary. Rows are sorted by missing_count
// descending with ties broken by column name ascending so repeated runs are
// byte-identical. A 0-row table yields missing_share 0 for every column.
func Missing(t *table.Table) profile.MissingTable {
	nRows := t.NumRows()
	entries := make(profile.MissingTable, 0, t.NumCols())

	for i := range t.Columns {
		col := &t.Columns[i]
		entry := profile.MissingEntry{
			Name:         col.Name,
			MissingCount: col.MissingCount(),
		}
		if nRows > 0 {
			entry.MissingShare = float64(entry.MissingCount) / float64(nRows)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MissingCount != entries[j].MissingCount {
			return entries[i].MissingCount > entries[j].MissingCount
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
