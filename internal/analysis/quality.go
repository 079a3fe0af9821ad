package analysis

import (
	"fmt"

	"edascope/domain/profile"
	"edascope/domain/table"
	"edascope/internal/errors"
)

// QualityConfig defines the thresholds and penalty weights of the heuristic
// quality evaluation. Magnitudes are tunable configuration, not data-derived.
type QualityConfig struct {
	RowThreshold      int     `json:"row_threshold"`       // Datasets with fewer rows are flagged
	ColumnThreshold   int     `json:"column_threshold"`    // Datasets with more columns are flagged
	MissingShareLimit float64 `json:"missing_share_limit"` // max_missing_share above this flags too_many_missing
	ZeroShareLimit    float64 `json:"zero_share_limit"`    // Strict lower bound for the zero-value flag

	MissingPenaltyWeight float64 `json:"missing_penalty_weight"` // Score penalty proportional to max_missing_share
	FewRowsPenalty       float64 `json:"few_rows_penalty"`
	ManyColumnsPenalty   float64 `json:"many_columns_penalty"`
	ConstantPenalty      float64 `json:"constant_penalty"`
	ZeroValuesPenalty    float64 `json:"zero_values_penalty"`
}

// DefaultQualityConfig returns the documented default thresholds. The
// penalties guarantee that a clean dataset scores exactly 1.0 and that a
// dataset with both a constant column and a >90%-zero column scores below 0.8.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		RowThreshold:      30,
		ColumnThreshold:   50,
		MissingShareLimit: 0.5,
		ZeroShareLimit:    0.90,

		MissingPenaltyWeight: 1.0,
		FewRowsPenalty:       0.2,
		ManyColumnsPenalty:   0.1,
		ConstantPenalty:      0.15,
		ZeroValuesPenalty:    0.15,
	}
}

// EvaluateQuality combines the summary, missing table, and raw data into the
// boolean heuristic flags plus one composite score in [0,1]. All three inputs
// must describe the same table snapshot; a shape mismatch is a contract
// violation, reported as an error rather than silently producing misleading
// flags.
func EvaluateQuality(summary profile.DatasetSummary, missing profile.MissingTable, t *table.Table, cfg QualityConfig) (profile.QualityFlags, error) {
	if summary.NRows != t.NumRows() || summary.NCols != t.NumCols() || len(missing) != t.NumCols() {
		return profile.QualityFlags{}, errors.ContractViolation(fmt.Sprintf(
			"summary (%dx%d), missing table (%d cols), and table (%dx%d) describe different snapshots",
			summary.NRows, summary.NCols, len(missing), t.NumRows(), t.NumCols()))
	}

	flags := profile.QualityFlags{
		MaxMissingShare:      missing.MaxShare(),
		NoNumericColumns:     summary.KindCount(profile.KindNumeric) == 0,
		NoCategoricalColumns: summary.KindCount(profile.KindCategorical) == 0,
	}
	flags.TooFewRows = summary.NRows < cfg.RowThreshold
	flags.TooManyColumns = summary.NCols > cfg.ColumnThreshold
	flags.TooManyMissing = flags.MaxMissingShare > cfg.MissingShareLimit
	flags.HasConstantColumns = hasConstantColumns(summary)
	flags.HasManyZeroValues = hasManyZeroValues(t, cfg.ZeroShareLimit)

	score := 1.0
	score -= cfg.MissingPenaltyWeight * flags.MaxMissingShare
	if flags.TooFewRows {
		score -= cfg.FewRowsPenalty
	}
	if flags.TooManyColumns {
		score -= cfg.ManyColumnsPenalty
	}
	if flags.HasConstantColumns {
		score -= cfg.ConstantPenalty
	}
	if flags.HasManyZeroValues {
		score -= cfg.ZeroValuesPenalty
	}
	flags.QualityScore = clamp01(score)

	return flags, nil
}

// hasConstantColumns reports whether any column shows no variation: at most
// one distinct non-missing value over at least one row. An entirely missing
// column counts as constant.
func hasConstantColumns(summary profile.DatasetSummary) bool {
	if summary.NRows == 0 {
		return false
	}
	for _, c := range summary.Columns {
		if c.UniqueCount <= 1 {
			return true
		}
	}
	return false
}

// hasManyZeroValues reports whether any non-binary numeric column has a
// zero-share strictly above the limit. The comparison is strict: exactly the
// limit does not trigger. Binary/indicator columns are exempt.
func hasManyZeroValues(t *table.Table, limit float64) bool {
	for i := range t.Columns {
		col := &t.Columns[i]
		if Classify(col) != profile.KindNumeric || IsBinaryIndicator(col) {
			continue
		}

		nonMissing, zeros := 0, 0
		for _, v := range col.Values {
			if v.IsMissing {
				continue
			}
			nonMissing++
			if v.AsFloat64() == 0 {
				zeros++
			}
		}
		if nonMissing == 0 {
			continue
		}
		if float64(zeros)/float64(nonMissing) > limit {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
