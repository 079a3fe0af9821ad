package ingest

import (
	"strconv"
	"strings"
	"time"

	"edascope/domain/table"
)

// CoercionConfig defines the thresholds of deterministic column typing.
type CoercionConfig struct {
	NumericThreshold   float64 `json:"numeric_threshold"`   // Share of values that must parse as numbers
	BooleanThreshold   float64 `json:"boolean_threshold"`   // Share of values that must parse as booleans
	TimestampThreshold float64 `json:"timestamp_threshold"` // Share of values that must parse as timestamps
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   0.8,
		BooleanThreshold:   0.9,
		TimestampThreshold: 0.8,
	}
}

// TypeCoercer decides one storage type per column from the raw strings and
// then coerces every cell to it. The decision is a function of the values
// alone, so re-loading the same file always produces the same table.
type TypeCoercer struct {
	config CoercionConfig
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// missing-value sentinels, checked case-insensitively after trimming
var missingSentinels = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CoerceColumn analyzes the raw cells, picks the winning storage type, and
// converts every cell. Cells that fail the winning parse become missing.
func (c *TypeCoercer) CoerceColumn(name string, raw []string) table.Column {
	storageType := c.analyze(raw)

	values := make([]table.Value, len(raw))
	for i, s := range raw {
		values[i] = c.coerceCell(s, storageType)
	}
	return table.Column{Name: name, Type: storageType, Values: values}
}

// analyze counts how many non-missing cells parse as each candidate type and
// applies the thresholds, most restrictive type first.
func (c *TypeCoercer) analyze(raw []string) table.ValueType {
	valid, numeric, boolean, timestamp := 0, 0, 0, 0
	for _, s := range raw {
		if isMissingCell(s) {
			continue
		}
		valid++
		if _, ok := tryParseNumeric(s); ok {
			numeric++
		}
		if _, ok := tryParseBoolean(s); ok {
			boolean++
		}
		if _, ok := tryParseTimestamp(s); ok {
			timestamp++
		}
	}
	if valid == 0 {
		// An all-missing column keeps string storage.
		return table.ValueTypeString
	}

	total := float64(valid)
	// Booleans also parse as little else, check them before numerics so
	// "true"/"false" columns do not fall through to string.
	if float64(boolean)/total >= c.config.BooleanThreshold {
		return table.ValueTypeBoolean
	}
	if float64(numeric)/total >= c.config.NumericThreshold {
		return table.ValueTypeNumeric
	}
	if float64(timestamp)/total >= c.config.TimestampThreshold {
		return table.ValueTypeTimestamp
	}
	return table.ValueTypeString
}

func (c *TypeCoercer) coerceCell(s string, storageType table.ValueType) table.Value {
	if isMissingCell(s) {
		return table.NewMissingValue()
	}
	switch storageType {
	case table.ValueTypeNumeric:
		if f, ok := tryParseNumeric(s); ok {
			return table.NewNumericValue(f)
		}
	case table.ValueTypeBoolean:
		if b, ok := tryParseBoolean(s); ok {
			return table.NewBooleanValue(b)
		}
	case table.ValueTypeTimestamp:
		if t, ok := tryParseTimestamp(s); ok {
			return table.NewTimestampValue(t)
		}
	default:
		return table.NewStringValue(strings.TrimSpace(s))
	}
	// Stragglers that fail the winning parse carry no usable information.
	return table.NewMissingValue()
}

func isMissingCell(s string) bool {
	return missingSentinels[strings.ToLower(strings.TrimSpace(s))]
}

func tryParseNumeric(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	// Tolerate currency prefixes and thousands separators.
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	return f, err == nil
}

func tryParseBoolean(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes":
		return true, true
	case "false", "f", "no":
		return false, true
	}
	return false, false
}

func tryParseTimestamp(s string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
