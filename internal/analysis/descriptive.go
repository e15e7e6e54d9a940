package analysis

import (
	"fmt"
	"math"

	"buret/domain/core"
	"buret/domain/survey"

	"github.com/montanaflynn/stats"
)

// DescriptiveRow holds the summary of one numeric column, rounded to 2 decimals.
// Undefined statistics are NaN.
type DescriptiveRow struct {
	Column core.ColumnName
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation, ddof=1
	Min    float64
	Max    float64
}

// Describe summarises each column in the given order; missing values are ignored
func Describe(ds *survey.Dataset, cols []core.ColumnName) ([]DescriptiveRow, error) {
	rows := make([]DescriptiveRow, 0, len(cols))
	for _, col := range cols {
		values, err := ds.Column(col)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", col, err)
		}
		rows = append(rows, describeColumn(col, survey.Floats(values)))
	}
	return rows, nil
}

func describeColumn(col core.ColumnName, data []float64) DescriptiveRow {
	row := DescriptiveRow{
		Column: col,
		Count:  len(data),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(data) == 0 {
		return row
	}

	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	row.Mean = Round(mean, 2)
	row.Min = Round(min, 2)
	row.Max = Round(max, 2)

	if len(data) > 1 {
		std, _ := stats.StandardDeviationSample(data)
		row.Std = Round(std, 2)
	}
	return row
}
