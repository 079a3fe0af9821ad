package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edascope/domain/profile"
	"edascope/domain/table"
	"edascope/internal/errors"
)

// numericColumn builds n rows where the first `zeros` cells are 0 and the rest
// are distinct non-zero values.
func numericColumn(name string, n, zeros int) table.Column {
	values := make([]*float64, n)
	for i := 0; i < n; i++ {
		if i < zeros {
			values[i] = fp(0)
		} else {
			values[i] = fp(float64(i + 1))
		}
	}
	return table.ColumnFromFloats(name, values)
}

func evaluate(t *testing.T, tbl *table.Table) profile.QualityFlags {
	t.Helper()
	flags, err := EvaluateQuality(Summarize(tbl), Missing(tbl), tbl, DefaultQualityConfig())
	require.NoError(t, err)
	return flags
}

func TestQualityCleanDatasetScoresFull(t *testing.T) {
	n := 30
	cities := make([]*string, n)
	for i := range cities {
		cities[i] = sp(fmt.Sprintf("city-%d", i%5))
	}
	tbl, err := table.New(
		numericColumn("a", n, 0),
		numericColumn("b", n, 0),
		table.ColumnFromStrings("city", cities),
	)
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.False(t, flags.TooFewRows)
	assert.False(t, flags.TooManyColumns)
	assert.False(t, flags.TooManyMissing)
	assert.False(t, flags.HasConstantColumns)
	assert.False(t, flags.HasManyZeroValues)
	assert.False(t, flags.NoNumericColumns)
	assert.False(t, flags.NoCategoricalColumns)
	assert.Equal(t, 0.0, flags.MaxMissingShare)
	assert.Equal(t, 1.0, flags.QualityScore, "no findings must mean a full score")
}

func TestQualityConstantColumns(t *testing.T) {
	constant := make([]*float64, 5)
	for i := range constant {
		constant[i] = fp(3)
	}
	tbl, err := table.New(
		table.ColumnFromFloats("const", constant),
		numericColumn("varied", 5, 0),
	)
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.True(t, flags.HasConstantColumns)
}

func TestQualityAllMissingColumnIsConstant(t *testing.T) {
	tbl, err := table.New(
		table.ColumnFromFloats("gap", []*float64{nil, nil, nil}),
		numericColumn("x", 3, 0),
	)
	require.NoError(t, err)

	assert.True(t, evaluate(t, tbl).HasConstantColumns)
}

func TestQualityZeroShareStrictComparison(t *testing.T) {
	// 9 zeros over 10 rows is exactly the 0.90 limit: not flagged.
	atLimit, err := table.New(numericColumn("v", 10, 9))
	require.NoError(t, err)
	assert.False(t, evaluate(t, atLimit).HasManyZeroValues)

	// 10 zeros over 11 rows is ~0.909: flagged.
	over, err := table.New(numericColumn("v", 11, 10))
	require.NoError(t, err)
	assert.True(t, evaluate(t, over).HasManyZeroValues)
}

func TestQualityBinaryIndicatorExemptFromZeroFlag(t *testing.T) {
	// 19 zeros and a single 1: 95% zeros, but the value set is {0,1}.
	values := make([]*float64, 20)
	for i := range values {
		values[i] = fp(0)
	}
	values[19] = fp(1)
	tbl, err := table.New(table.ColumnFromFloats("indicator", values))
	require.NoError(t, err)

	assert.False(t, evaluate(t, tbl).HasManyZeroValues)
}

func TestQualityZeroShareIgnoresMissing(t *testing.T) {
	// 19 zeros, one 2.5, and 10 missing cells: the share is over non-missing
	// cells (19/20 = 0.95), not over all rows.
	values := make([]*float64, 30)
	for i := 0; i < 19; i++ {
		values[i] = fp(0)
	}
	values[19] = fp(2.5)
	tbl, err := table.New(table.ColumnFromFloats("v", values))
	require.NoError(t, err)

	assert.True(t, evaluate(t, tbl).HasManyZeroValues)
}

func TestQualityTwoIssueDatasetScoresBelowThreshold(t *testing.T) {
	// A constant column plus a 95%-zero column on 20 rows: the combined
	// penalties must drag the score below 0.8.
	constant := make([]*float64, 20)
	for i := range constant {
		constant[i] = fp(7)
	}
	tbl, err := table.New(
		table.ColumnFromFloats("const", constant),
		numericColumn("zeros", 20, 19),
	)
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.True(t, flags.HasConstantColumns)
	assert.True(t, flags.HasManyZeroValues)
	assert.Less(t, flags.QualityScore, 0.8)
}

func TestQualityShapeAndTypeFlags(t *testing.T) {
	tbl, err := table.New(
		table.ColumnFromStrings("only_cat", []*string{sp("a"), sp("b"), sp("c")}),
	)
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.True(t, flags.TooFewRows)
	assert.True(t, flags.NoNumericColumns)
	assert.False(t, flags.NoCategoricalColumns)
}

func TestQualityMissingShareDrivesScoreAndFlag(t *testing.T) {
	n := 40
	values := make([]*float64, n)
	for i := 0; i < n; i++ {
		if i < 24 {
			values[i] = nil
		} else {
			values[i] = fp(float64(i))
		}
	}
	cities := make([]*string, n)
	for i := range cities {
		cities[i] = sp(fmt.Sprintf("c-%d", i%3))
	}
	tbl, err := table.New(
		table.ColumnFromFloats("holey", values),
		numericColumn("full", n, 0),
		table.ColumnFromStrings("city", cities),
	)
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.InDelta(t, 0.6, flags.MaxMissingShare, 1e-9)
	assert.True(t, flags.TooManyMissing)
	assert.InDelta(t, 0.4, flags.QualityScore, 1e-9)
}

func TestQualityScoreClampedAtZero(t *testing.T) {
	// One fully missing column maximizes the missing penalty, and the small
	// all-missing table trips the few-rows and constant flags on top.
	tbl, err := table.New(table.ColumnFromFloats("gap", []*float64{nil, nil}))
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	assert.Equal(t, 1.0, flags.MaxMissingShare)
	assert.Equal(t, 0.0, flags.QualityScore)
}

func TestQualityShapeMismatchIsContractViolation(t *testing.T) {
	tbl, err := table.New(numericColumn("x", 5, 0))
	require.NoError(t, err)

	summary := Summarize(tbl)
	summary.NRows = 99

	_, err = EvaluateQuality(summary, Missing(tbl), tbl, DefaultQualityConfig())
	require.Error(t, err)
	assert.Equal(t, errors.CodeContractViolation, errors.GetCode(err))
}

func TestQualityFlagMaps(t *testing.T) {
	tbl, err := table.New(numericColumn("x", 5, 0))
	require.NoError(t, err)

	flags := evaluate(t, tbl)
	bools := flags.BoolMap()
	assert.Len(t, bools, 7)
	assert.True(t, bools["too_few_rows"])

	full := flags.Map()
	assert.Len(t, full, 9)
	assert.Contains(t, full, "quality_score")
	assert.Contains(t, full, "max_missing_share")
}
