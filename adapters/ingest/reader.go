// Package ingest reads CSV and Excel files into table snapshots with
// deterministic type coercion. It is the only place that knows about
// delimiters, missing-value sentinels, and storage-type inference; the
// analysis core receives fully parsed tables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"edascope/domain/table"
	"edascope/internal/errors"
)

// DataReader handles reading Excel and CSV files into tables.
type DataReader struct {
	coercer   *TypeCoercer
	separator rune
}

// NewDataReader creates a reader with default coercion and comma separation.
func NewDataReader() *DataReader {
	return NewDataReaderWith(DefaultCoercionConfig(), ',')
}

// NewDataReaderWith creates a reader with explicit coercion config and separator.
func NewDataReaderWith(config CoercionConfig, separator rune) *DataReader {
	return &DataReader{
		coercer:   NewTypeCoercer(config),
		separator: separator,
	}
}

// LoadFile reads a dataset file, dispatching on extension (.csv, .xlsx, .xls).
func (r *DataReader) LoadFile(path string) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.WithCode(errors.CodeIOError, fmt.Errorf("file not found: %s", path))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return r.loadExcel(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithCode(errors.CodeIOError, err)
		}
		defer f.Close()
		return r.Parse(f)
	}
}

// Parse reads CSV content from a stream. The first record is the header;
// ragged rows are a parse error.
func (r *DataReader) Parse(reader io.Reader) (*table.Table, error) {
	cr := csv.NewReader(reader)
	cr.Comma = r.separator
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeParseError, err), "failed to read CSV")
	}
	return r.fromRecords(records)
}

// loadExcel reads the first sheet of a workbook.
func (r *DataReader) loadExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeParseError, err), "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeParseError, err), "failed to read sheet")
	}

	// Excel rows may be short when trailing cells are empty; pad to header width.
	if len(rows) > 0 {
		width := len(rows[0])
		for i := range rows {
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
			if len(rows[i]) > width {
				rows[i] = rows[i][:width]
			}
		}
	}
	return r.fromRecords(rows)
}

// fromRecords builds a table from header + data records.
func (r *DataReader) fromRecords(records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, errors.ParseError("input has no header row")
	}

	header := dedupeHeader(records[0])
	data := records[1:]

	cols := make([]table.Column, len(header))
	for j, name := range header {
		raw := make([]string, len(data))
		for i := range data {
			raw[i] = data[i][j]
		}
		cols[j] = r.coercer.CoerceColumn(name, raw)
	}
	return table.New(cols...)
}

// dedupeHeader disambiguates duplicate column names with numeric suffixes in
// encounter order: name, name_2, name_3, ...
func dedupeHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s_%d", name, seen[name])
		}
		out[i] = name
	}
	return out
}
