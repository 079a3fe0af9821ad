// Package analysis is the computational core: it turns a table snapshot into
// the per-column summary, the missing-value table, the numeric correlation
// matrix, top-category tables, and the composite quality-flag report. Every
// function is a pure, deterministic function of its inputs; concurrent
// callers may share read-only tables freely.
package analysis

import (
	"edascope/domain/profile"
	"edascope/domain/table"
)

// Classify assigns the semantic kind used by every downstream computation.
// The kind is derived from the column's declared storage type, computed once
// per column and reused; nothing re-infers it ad hoc.
func Classify(col *table.Column) profile.ColumnKind {
	switch col.Type {
	case table.ValueTypeNumeric:
		return profile.KindNumeric
	case table.ValueTypeBoolean:
		return profile.KindBoolean
	case table.ValueTypeString:
		return profile.KindCategorical
	default:
		// Timestamp and anything the loader could not pin down.
		return profile.KindOther
	}
}

// IsBinaryIndicator reports whether the column's non-missing value set is a
// subset of {0, 1}. Binary/indicator columns classify as Numeric but are
// exempt from numeric-only heuristics such as the zero-share flag.
func IsBinaryIndicator(col *table.Column) bool {
	if col.Type != table.ValueTypeNumeric {
		return false
	}
	for _, v := range col.Values {
		if v.IsMissing {
			continue
		}
		f := v.AsFloat64()
		if f != 0 && f != 1 {
			return false
		}
	}
	return true
}
