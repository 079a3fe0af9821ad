package report

import (
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"edascope/domain/profile"
	"edascope/internal/errors"
)

// writeWorkbook exports Summary, Missing, and Correlation sheets to
// report.xlsx so the artifacts open directly in a spreadsheet.
func (w *Writer) writeWorkbook(a Artifacts) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Summary", summaryCells(a.Rows)); err != nil {
		return err
	}
	if err := writeSheet(f, "Missing", missingCells(a.Missing)); err != nil {
		return err
	}
	if !a.Corr.Empty() {
		if err := writeSheet(f, "Correlation", correlationCells(a.Corr)); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize seeds the workbook with.
	f.DeleteSheet("Sheet1")

	path := filepath.Join(w.outDir, "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to save report.xlsx")
	}
	return nil
}

func writeSheet(f *excelize.File, name string, cells [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeIOError, err), "failed to create sheet %s", name)
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.WithCode(errors.CodeInternalError, err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return errors.Wrapf(errors.WithCode(errors.CodeIOError, err), "failed to write cell %s!%s", name, cell)
			}
		}
	}
	return nil
}

func summaryCells(rows []profile.SummaryRow) [][]interface{} {
	cells := [][]interface{}{toCells(profile.SummaryHeader())}
	for _, r := range rows {
		cells = append(cells, toCells(r.Record()))
	}
	return cells
}

func missingCells(missing profile.MissingTable) [][]interface{} {
	cells := [][]interface{}{{"name", "missing_count", "missing_share"}}
	for _, e := range missing {
		cells = append(cells, []interface{}{e.Name, e.MissingCount, e.MissingShare})
	}
	return cells
}

func correlationCells(corr profile.CorrelationMatrix) [][]interface{} {
	header := make([]interface{}, 0, len(corr.Columns)+1)
	header = append(header, "")
	for _, name := range corr.Columns {
		header = append(header, name)
	}

	cells := [][]interface{}{header}
	for i, name := range corr.Columns {
		row := make([]interface{}, 0, len(corr.Columns)+1)
		row = append(row, name)
		for j := range corr.Columns {
			v := corr.At(i, j)
			if math.IsNaN(v) {
				row = append(row, "")
			} else {
				row = append(row, v)
			}
		}
		cells = append(cells, row)
	}
	return cells
}

func toCells(record []string) []interface{} {
	out := make([]interface{}, len(record))
	for i, s := range record {
		out[i] = s
	}
	return out
}
