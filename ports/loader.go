package ports

import (
	"io"

	"edascope/domain/table"
)

// TableLoader turns raw bytes into an immutable table snapshot. Parsing rules
// (separator, missing-value sentinels, type coercion) belong to the
// implementation; the analysis core only ever sees an already-parsed table.
type TableLoader interface {
	// LoadFile reads a dataset file (CSV or XLSX, by extension).
	LoadFile(path string) (*table.Table, error)

	// Parse reads CSV content from a stream.
	Parse(r io.Reader) (*table.Table, error)
}
