package analysis

import (
	"fmt"
	"math"

	"buret/domain/core"
	"buret/domain/survey"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a symmetric Pearson matrix over Columns, rounded to 3 decimals
type CorrelationMatrix struct {
	Columns []core.ColumnName
	Values  [][]float64
}

// At returns the coefficient between columns i and j
func (m CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Correlations computes pairwise-complete Pearson correlations: each pair uses only
// the rows where both values are present. Pairs with fewer than two complete rows, or
// a constant column, are NaN.
func Correlations(ds *survey.Dataset, cols []core.ColumnName) (CorrelationMatrix, error) {
	columns := make([][]survey.NullInt, len(cols))
	for i, col := range cols {
		values, err := ds.Column(col)
		if err != nil {
			return CorrelationMatrix{}, fmt.Errorf("correlate %s: %w", col, err)
		}
		columns[i] = values
	}

	m := CorrelationMatrix{Columns: append([]core.ColumnName(nil), cols...), Values: make([][]float64, len(cols))}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(cols))
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pairwisePearson(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			r = Round(r, 3)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pairwisePearson(a, b []survey.NullInt) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(a))
	for k := range a {
		if a[k].Valid && b[k].Valid {
			x = append(x, float64(a[k].Value))
			y = append(y, float64(b[k].Value))
		}
	}
	if len(x) < 2 || stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}

	r := stat.Correlation(x, y, nil)
	return math.Max(-1, math.Min(1, r))
}
