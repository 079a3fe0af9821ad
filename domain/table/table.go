// Package table holds the immutable in-memory snapshot that every analysis
// function consumes. A Table is built once by a loader and never mutated;
// concurrent readers need no synchronization.
package table

import (
	"fmt"
)

// Column is an ordered sequence of cells sharing one declared storage type.
// Individual cells may still be missing regardless of the storage type.
type Column struct {
	Name   string    `json:"name"`
	Type   ValueType `json:"type"`
	Values []Value   `json:"values"`
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	Columns []Column `json:"columns"`
}

// New builds a table from columns, enforcing equal column lengths.
func New(cols ...Column) (*Table, error) {
	if len(cols) > 1 {
		n := len(cols[0].Values)
		for _, c := range cols[1:] {
			if len(c.Values) != n {
				return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), n)
			}
		}
	}
	return &Table{Columns: cols}, nil
}

// NumRows returns the row count (0 for a table with no columns).
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Names returns column names in source order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing {
			n++
		}
	}
	return n
}

// NonMissing returns the column's non-missing cells in row order.
func (c *Column) NonMissing() []Value {
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsMissing {
			out = append(out, v)
		}
	}
	return out
}

// Floats returns the column's non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsMissing && v.IsNumeric() {
			out = append(out, v.AsFloat64())
		}
	}
	return out
}

// ColumnFromFloats builds a numeric column; nil entries become missing cells.
func ColumnFromFloats(name string, values []*float64) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = NewMissingValue()
		} else {
			cells[i] = NewNumericValue(*v)
		}
	}
	return Column{Name: name, Type: ValueTypeNumeric, Values: cells}
}

// ColumnFromStrings builds a string column; nil entries become missing cells.
func ColumnFromStrings(name string, values []*string) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = NewMissingValue()
		} else {
			cells[i] = NewStringValue(*v)
		}
	}
	return Column{Name: name, Type: ValueTypeString, Values: cells}
}

// ColumnFromBools builds a boolean column; nil entries become missing cells.
func ColumnFromBools(name string, values []*bool) Column {
	cells := make([]Value, len(values))
	for i, v := range values {
		if v == nil {
			cells[i] = NewMissingValue()
		} else {
			cells[i] = NewBooleanValue(*v)
		}
	}
	return Column{Name: name, Type: ValueTypeBoolean, Values: cells}
}
