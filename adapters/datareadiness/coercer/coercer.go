package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"buret/domain/core"
	"buret/domain/survey"
	"buret/internal/errors"
)

// IntCoercer forces the survey columns to nullable integers.
// Unparseable cells become missing and are counted, never fatal.
type IntCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	MissingTokens     []string `json:"missing_tokens"`      // cells read as missing without a warning
	MaxWarningSamples int      `json:"max_warning_samples"` // offending cells kept for the log
}

// DefaultCoercionConfig returns the missing-value markers of common CSV exporters
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens: []string{
			"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
			"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
		},
		MaxWarningSamples: 5,
	}
}

// NewIntCoercer creates a coercer with the given config
func NewIntCoercer(config CoercionConfig) *IntCoercer {
	return &IntCoercer{config: config}
}

// CoercionWarning records one cell that failed integer parsing
type CoercionWarning struct {
	Row    int // 1-based data row, header excluded
	Column core.ColumnName
	Raw    string
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("row %d, %s=%q", w.Row, w.Column, w.Raw)
}

// CoercionReport summarises non-fatal coercion failures
type CoercionReport struct {
	Total    int
	ByColumn map[core.ColumnName]int
	Samples  []CoercionWarning
}

// HasWarnings reports whether any cell was dropped
func (r CoercionReport) HasWarnings() bool {
	return r.Total > 0
}

// CoerceValue parses one cell. ok is false when the cell held something that is
// neither a missing marker nor an integer; the value is then missing.
func (c *IntCoercer) CoerceValue(raw string) (value survey.NullInt, ok bool) {
	s := strings.TrimSpace(raw)
	if c.isMissingToken(s) {
		return survey.Missing(), true
	}

	if n, err := strconv.Atoi(s); err == nil {
		return survey.Int(n), true
	}

	// Integral floats such as "30.0" or "3e1" are accepted, anything fractional is not
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return survey.Missing(), false
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return survey.Missing(), false
	}
	return survey.Int(int(f)), true
}

func (c *IntCoercer) isMissingToken(s string) bool {
	for _, token := range c.config.MissingTokens {
		if s == token {
			return true
		}
	}
	return false
}

// CoerceTable validates the schema and builds the dataset from the required columns.
// Extra columns are ignored.
func (c *IntCoercer) CoerceTable(table *survey.Table) (*survey.Dataset, CoercionReport, error) {
	report := CoercionReport{ByColumn: make(map[core.ColumnName]int)}

	positions, err := survey.ValidateSchema(table.Headers)
	if err != nil {
		return nil, report, errors.SchemaError(err)
	}

	records := make([]survey.Record, len(table.Rows))
	for i := range table.Rows {
		for _, col := range survey.RequiredColumns {
			raw := table.Cell(i, positions[col])
			value, ok := c.CoerceValue(raw)
			if !ok {
				report.Total++
				report.ByColumn[col]++
				if len(report.Samples) < c.config.MaxWarningSamples {
					report.Samples = append(report.Samples, CoercionWarning{Row: i + 1, Column: col, Raw: raw})
				}
			}
			if err := records[i].SetInt(col, value); err != nil {
				return nil, report, errors.Wrapf(err, "assigning column %s", col)
			}
		}
	}

	return survey.NewDataset(records), report, nil
}
