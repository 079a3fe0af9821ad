package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"edascope/adapters/ingest"
	"edascope/adapters/report"
	"edascope/domain/profile"
	"edascope/domain/table"
	"edascope/internal/analysis"
	"edascope/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "eda-cli",
		Short:        "Exploratory data analysis for CSV and Excel files",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newOverviewCmd(),
		newHeadCmd(),
		newSampleCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newOverviewCmd() *cobra.Command {
	var sep string

	cmd := &cobra.Command{
		Use:   "overview [file]",
		Short: "Print dataset shape and a per-column summary table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(args[0], sep)
			if err != nil {
				return err
			}

			summary := analysis.Summarize(tbl)
			rows := analysis.Flatten(summary)

			if info, err := os.Stat(args[0]); err == nil {
				fmt.Printf("File: %s (%s)\n", filepath.Base(args[0]), humanize.Bytes(uint64(info.Size())))
			}
			fmt.Printf("Rows: %d\n", summary.NRows)
			fmt.Printf("Columns: %d\n\n", summary.NCols)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(profile.SummaryHeader(), "\t"))
			for _, r := range rows {
				fmt.Fprintln(w, strings.Join(r.Record(), "\t"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator (single character)")
	return cmd
}

func newHeadCmd() *cobra.Command {
	var n int
	var sep string

	cmd := &cobra.Command{
		Use:   "head [file]",
		Short: "Print the first N rows of the dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("--n must be a positive number")
			}
			tbl, err := loadTable(args[0], sep)
			if err != nil {
				return err
			}

			limit := n
			if limit > tbl.NumRows() {
				limit = tbl.NumRows()
			}
			fmt.Printf("First %d of %d rows (%d columns):\n\n", limit, tbl.NumRows(), tbl.NumCols())
			return printRows(tbl, firstIndices(limit))
		},
	}

	cmd.Flags().IntVar(&n, "n", 5, "Number of rows to print")
	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator (single character)")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var n int
	var seed int64
	var sep string

	cmd := &cobra.Command{
		Use:   "sample [file]",
		Short: "Print a deterministic random sample of N rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("--n must be a positive number")
			}
			tbl, err := loadTable(args[0], sep)
			if err != nil {
				return err
			}

			limit := n
			if limit > tbl.NumRows() {
				fmt.Fprintf(os.Stderr, "requested %d rows but the file has only %d; printing all rows\n", n, tbl.NumRows())
				limit = tbl.NumRows()
			}

			rng := rand.New(rand.NewSource(seed))
			indices := rng.Perm(tbl.NumRows())[:limit]

			fmt.Printf("Random sample of %d rows (file has %d rows, %d columns):\n\n", limit, tbl.NumRows(), tbl.NumCols())
			return printRows(tbl, indices)
		},
	}

	cmd.Flags().IntVar(&n, "n", 10, "Number of rows to sample")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for reproducible samples")
	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator (single character)")
	return cmd
}

func newReportCmd() *cobra.Command {
	var outDir, sep, title string
	var topK, maxColumns int

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Generate the full EDA report (CSV, Markdown, HTML, XLSX)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(args[0], sep)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			summary := analysis.Summarize(tbl)
			missing := analysis.Missing(tbl)
			corr := analysis.Correlate(tbl)
			topCats := analysis.TopCategories(tbl, maxColumns, topK)
			flags, err := analysis.EvaluateQuality(summary, missing, tbl, cfg.Quality)
			if err != nil {
				return err
			}

			writer, err := report.NewWriter(outDir)
			if err != nil {
				return err
			}
			artifacts := report.Artifacts{
				SourceName: filepath.Base(args[0]),
				Title:      title,
				TopK:       topK,
				Summary:    summary,
				Rows:       analysis.Flatten(summary),
				Missing:    missing,
				Corr:       corr,
				TopCats:    topCats,
				Flags:      flags,
			}
			if err := writer.WriteAll(artifacts); err != nil {
				return err
			}

			fmt.Printf("Report written to: %s\n", outDir)
			fmt.Println("- Main markdown: report.md (HTML: report.html)")
			fmt.Println("- Tables: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
			fmt.Println("- Workbook: report.xlsx")
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "reports", "Output directory for the report")
	cmd.Flags().StringVar(&title, "title", "EDA report", "Report title (Markdown heading)")
	cmd.Flags().IntVar(&topK, "top-k", 5, "Top values per categorical column")
	cmd.Flags().IntVar(&maxColumns, "max-cat-columns", 10, "Maximum categorical columns in the report")
	cmd.Flags().StringVar(&sep, "sep", ",", "CSV field separator (single character)")
	return cmd
}

func loadTable(path, sep string) (*table.Table, error) {
	runes := []rune(sep)
	if len(runes) != 1 {
		return nil, fmt.Errorf("--sep must be a single character")
	}
	reader := ingest.NewDataReaderWith(ingest.DefaultCoercionConfig(), runes[0])
	return reader.LoadFile(path)
}

func firstIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// printRows renders the selected rows with the header line first.
func printRows(tbl *table.Table, indices []int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(tbl.Names(), "\t"))
	for _, i := range indices {
		cells := make([]string, 0, tbl.NumCols())
		for _, v := range tbl.Row(i) {
			if v.IsMissing {
				cells = append(cells, "")
			} else {
				cells = append(cells, v.String())
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
