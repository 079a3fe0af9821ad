// Package report writes the CLI report artifacts: flat CSV tables, a
// Markdown report with an HTML rendering, and an Excel workbook. It only
// consumes the core's value objects; it never computes statistics itself.
package report

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"edascope/domain/profile"
	"edascope/internal/errors"
)

// Artifacts bundles everything one report run consumes. All fields derive
// from the same table snapshot.
type Artifacts struct {
	SourceName string
	Title      string
	TopK       int

	Summary profile.DatasetSummary
	Rows    []profile.SummaryRow
	Missing profile.MissingTable
	Corr    profile.CorrelationMatrix
	TopCats profile.TopCategoriesReport
	Flags   profile.QualityFlags
}

// Writer renders report artifacts into one output directory.
type Writer struct {
	outDir string
}

// NewWriter creates a writer rooted at outDir, creating it if needed.
func NewWriter(outDir string) (*Writer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to create report directory")
	}
	return &Writer{outDir: outDir}, nil
}

// WriteAll writes every artifact. Independent files fan out concurrently;
// the first failure cancels the run.
func (w *Writer) WriteAll(a Artifacts) error {
	var g errgroup.Group

	g.Go(func() error { return w.writeSummaryCSV(a.Rows) })
	g.Go(func() error { return w.writeMissingCSV(a.Missing) })
	g.Go(func() error { return w.writeCorrelationCSV(a.Corr) })
	g.Go(func() error { return w.writeTopCategories(a.TopCats) })
	g.Go(func() error { return w.writeWorkbook(a) })
	g.Go(func() error { return w.writeMarkdownAndHTML(a) })

	return g.Wait()
}

func (w *Writer) writeSummaryCSV(rows []profile.SummaryRow) error {
	records := [][]string{profile.SummaryHeader()}
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return w.writeCSV("summary.csv", records)
}

func (w *Writer) writeMissingCSV(missing profile.MissingTable) error {
	records := [][]string{{"name", "missing_count", "missing_share"}}
	for _, e := range missing {
		records = append(records, []string{
			e.Name,
			strconv.Itoa(e.MissingCount),
			formatFloat(e.MissingShare),
		})
	}
	return w.writeCSV("missing.csv", records)
}

// writeCorrelationCSV skips the file entirely for an empty matrix, matching
// the report text which then points at the absence.
func (w *Writer) writeCorrelationCSV(corr profile.CorrelationMatrix) error {
	if corr.Empty() {
		return nil
	}
	header := append([]string{""}, corr.Columns...)
	records := [][]string{header}
	for i, name := range corr.Columns {
		row := make([]string, 0, len(corr.Columns)+1)
		row = append(row, name)
		for j := range corr.Columns {
			row = append(row, formatCorr(corr.At(i, j)))
		}
		records = append(records, row)
	}
	return w.writeCSV("correlation.csv", records)
}

func (w *Writer) writeTopCategories(topCats profile.TopCategoriesReport) error {
	if len(topCats) == 0 {
		return nil
	}
	dir := filepath.Join(w.outDir, "top_categories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to create top_categories directory")
	}

	for _, name := range sortedKeys(topCats) {
		records := [][]string{{"value", "count", "share"}}
		for _, row := range topCats[name] {
			records = append(records, []string{
				row.Value,
				strconv.Itoa(row.Count),
				formatFloat(row.Share),
			})
		}
		path := filepath.Join("top_categories", sanitizeFilename(name)+".csv")
		if err := w.writeCSV(path, records); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCSV(name string, records [][]string) error {
	f, err := os.Create(filepath.Join(w.outDir, name))
	if err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeIOError, err), "failed to create %s", name)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeIOError, err), "failed to write %s", name)
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatCorr renders undefined correlations as empty cells.
func formatCorr(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func sortedKeys(m profile.TopCategoriesReport) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sanitizeFilename keeps report filenames portable across filesystems.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "column"
	}
	return string(out)
}
