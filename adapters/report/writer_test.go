package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edascope/domain/table"
	"edascope/internal/analysis"
)

func testArtifacts(t *testing.T) Artifacts {
	t.Helper()
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	tbl, err := table.New(
		table.ColumnFromFloats("age", []*float64{f(10), f(20), f(30), nil}),
		table.ColumnFromFloats("height", []*float64{f(140), f(150), f(160), f(170)}),
		table.ColumnFromStrings("city", []*string{s("A"), s("B"), s("A"), nil}),
	)
	require.NoError(t, err)

	summary := analysis.Summarize(tbl)
	missing := analysis.Missing(tbl)
	flags, err := analysis.EvaluateQuality(summary, missing, tbl, analysis.DefaultQualityConfig())
	require.NoError(t, err)

	return Artifacts{
		SourceName: "demo.csv",
		Title:      "Demo Report",
		TopK:       5,
		Summary:    summary,
		Rows:       analysis.Flatten(summary),
		Missing:    missing,
		Corr:       analysis.Correlate(tbl),
		TopCats:    analysis.TopCategories(tbl, 10, 5),
		Flags:      flags,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteAllProducesEveryArtifact(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteAll(testArtifacts(t)))

	for _, name := range []string{
		"summary.csv",
		"missing.csv",
		"correlation.csv",
		"report.md",
		"report.html",
		"report.xlsx",
		filepath.Join("top_categories", "city.csv"),
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestSummaryCSVContents(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(testArtifacts(t)))

	records := readCSV(t, filepath.Join(dir, "summary.csv"))
	require.Len(t, records, 4, "header plus one row per column")
	assert.Equal(t, "name", records[0][0])
	assert.Equal(t, "age", records[1][0])
	assert.Equal(t, "numeric", records[1][1])
	assert.Equal(t, "city", records[3][0])
	assert.Equal(t, "", records[3][4], "categorical rows leave numeric cells blank")
}

func TestMissingCSVKeepsDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(testArtifacts(t)))

	records := readCSV(t, filepath.Join(dir, "missing.csv"))
	require.Len(t, records, 4)
	assert.Equal(t, "age", records[1][0])
	assert.Equal(t, "city", records[2][0])
	assert.Equal(t, "height", records[3][0])
}

func TestCorrelationCSVSkippedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	a := testArtifacts(t)
	a.Corr = analysis.Correlate(mustSingleNumericTable(t))
	require.NoError(t, w.WriteAll(a))

	_, err = os.Stat(filepath.Join(dir, "correlation.csv"))
	assert.True(t, os.IsNotExist(err))
}

func mustSingleNumericTable(t *testing.T) *table.Table {
	t.Helper()
	v := 1.0
	tbl, err := table.New(table.ColumnFromFloats("only", []*float64{&v}))
	require.NoError(t, err)
	return tbl
}

func TestMarkdownReportMentionsSections(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(testArtifacts(t)))

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	text := string(md)
	assert.Contains(t, text, "# Demo Report")
	assert.Contains(t, text, "demo.csv")
	assert.Contains(t, text, "age")

	html, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(html)), "<html")
}

func TestWorkbookSheets(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteAll(testArtifacts(t)))

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Missing")
	assert.Contains(t, sheets, "Correlation")
	assert.NotContains(t, sheets, "Sheet1")

	top, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "name", top)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "city_name", sanitizeFilename("city name"))
	assert.Equal(t, "a-b_c", sanitizeFilename("a-b_c"))
	assert.Equal(t, "column", sanitizeFilename(""))
}
