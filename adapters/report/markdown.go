package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"edascope/domain/profile"
	"edascope/internal/errors"
)

// writeMarkdownAndHTML renders report.md and its report.html counterpart.
func (w *Writer) writeMarkdownAndHTML(a Artifacts) error {
	md := buildMarkdown(a)

	mdPath := filepath.Join(w.outDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to write report.md")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	rendered := markdown.ToHTML([]byte(md), p, renderer)

	htmlPath := filepath.Join(w.outDir, "report.html")
	if err := os.WriteFile(htmlPath, rendered, 0o644); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to write report.html")
	}
	return nil
}

func buildMarkdown(a Artifacts) string {
	var b strings.Builder

	title := a.Title
	if title == "" {
		title = "EDA report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source file: `%s`\n\n", a.SourceName)
	fmt.Fprintf(&b, "Rows: **%d**, columns: **%d**\n\n", a.Summary.NRows, a.Summary.NCols)

	b.WriteString("## Data quality (heuristics)\n\n")
	fmt.Fprintf(&b, "- Quality score: **%.2f**\n", a.Flags.QualityScore)
	fmt.Fprintf(&b, "- Max missing share per column: **%.2f%%**\n", a.Flags.MaxMissingShare*100)
	fmt.Fprintf(&b, "- Too few rows: **%t**\n", a.Flags.TooFewRows)
	fmt.Fprintf(&b, "- Too many columns: **%t**\n", a.Flags.TooManyColumns)
	fmt.Fprintf(&b, "- Too many missing values: **%t**\n", a.Flags.TooManyMissing)
	fmt.Fprintf(&b, "- Has constant columns: **%t**\n", a.Flags.HasConstantColumns)
	fmt.Fprintf(&b, "- Has many zero values: **%t**\n\n", a.Flags.HasManyZeroValues)

	b.WriteString("## Columns\n\n")
	writeTable(&b, profile.SummaryHeader(), summaryRecords(a.Rows))
	b.WriteString("\nFull table: `summary.csv`.\n\n")

	b.WriteString("## Missing values\n\n")
	if a.Missing.MaxShare() == 0 {
		b.WriteString("No missing values, or the dataset is empty.\n\n")
	} else {
		writeTable(&b, []string{"name", "missing_count", "missing_share"}, missingRecords(a.Missing))
		b.WriteString("\nFull table: `missing.csv`.\n\n")
	}

	b.WriteString("## Numeric correlations\n\n")
	if a.Corr.Empty() {
		b.WriteString("Not enough numeric columns for a correlation matrix.\n\n")
	} else {
		b.WriteString("See `correlation.csv` and the Correlation sheet of `report.xlsx`.\n\n")
	}

	b.WriteString("## Categorical columns\n\n")
	if len(a.TopCats) == 0 {
		b.WriteString("No categorical/text columns found.\n")
	} else {
		fmt.Fprintf(&b, "Top-%d values per column; see the files under `top_categories/`.\n", a.TopK)
	}

	return b.String()
}

// writeTable renders a GitHub-style markdown table.
func writeTable(b *strings.Builder, header []string, records [][]string) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(header, " | "))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(sep, " | "))
	for _, rec := range records {
		fmt.Fprintf(b, "| %s |\n", strings.Join(rec, " | "))
	}
}

func summaryRecords(rows []profile.SummaryRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return records
}

func missingRecords(missing profile.MissingTable) [][]string {
	records := make([][]string, 0, len(missing))
	for _, e := range missing {
		records = append(records, []string{
			e.Name,
			strconv.Itoa(e.MissingCount),
			formatFloat(e.MissingShare),
		})
	}
	return records
}
