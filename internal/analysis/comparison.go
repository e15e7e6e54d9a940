package analysis

import (
	"fmt"
	"math"

	"buret/domain/core"
	"buret/domain/survey"
	"buret/ports"

	"github.com/montanaflynn/stats"
)

// GroupSummary describes the outcome within one side of a median split
type GroupSummary struct {
	Rows int     // rows assigned to the group
	N    int     // rows with a present outcome
	Mean float64 // NaN when N == 0
	Std  float64 // sample sd, NaN when N < 2

	values []float64
}

// Comparison is the high/low median-split comparison of an outcome
type Comparison struct {
	Outcome core.ColumnName
	Split   core.ColumnName
	Median  float64 // NaN when the split column has no values

	High GroupSummary
	Low  GroupSummary

	CohensD    float64
	CohensDErr error

	// TTestAvailable is false when no StatTest was injected for the run
	TTestAvailable bool
	TTestName      string
	TTest          ports.TTestResult
	TTestErr       error
}

// MedianSplit partitions row indexes around the median of split: strictly greater
// goes high, the rest goes low. Rows with a missing split value join neither group.
func MedianSplit(split []survey.NullInt) (median float64, high, low []int) {
	present := survey.Floats(split)
	if len(present) == 0 {
		return math.NaN(), nil, nil
	}
	median, _ = stats.Median(present)

	for i, v := range split {
		if !v.Valid {
			continue
		}
		if float64(v.Value) > median {
			high = append(high, i)
		} else {
			low = append(low, i)
		}
	}
	return median, high, low
}

// CohensD is the standardised mean difference (mean(x1) - mean(x2)) / pooled sd,
// with sample variances. Swapping the groups negates the result.
func CohensD(x1, x2 []float64) (float64, error) {
	n1, n2 := len(x1), len(x2)
	if n1+n2 <= 2 {
		return math.NaN(), fmt.Errorf("%w: cohen's d needs n1+n2 > 2 (got %d and %d)",
			core.ErrInsufficientData, n1, n2)
	}
	// sample variance is undefined for fewer than two values
	if n1 < 2 || n2 < 2 {
		return math.NaN(), fmt.Errorf("%w: cohen's d needs at least 2 values per group (got %d and %d)",
			core.ErrInsufficientData, n1, n2)
	}

	pooledSD := math.Sqrt((sumSquares(x1) + sumSquares(x2)) / float64(n1+n2-2))
	if pooledSD == 0 {
		return math.NaN(), fmt.Errorf("%w: pooled standard deviation is zero", core.ErrDegenerate)
	}

	mean1, _ := stats.Mean(x1)
	mean2, _ := stats.Mean(x2)
	return (mean1 - mean2) / pooledSD, nil
}

// sumSquares is (n-1)*sample variance
func sumSquares(x []float64) float64 {
	mean, _ := stats.Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss
}

// CompareHighLow splits the dataset at the median of split and compares outcome
// between the halves. test may be nil, in which case the t-test is reported unavailable.
func CompareHighLow(ds *survey.Dataset, outcome, split core.ColumnName, test ports.StatTest) (Comparison, error) {
	outcomeValues, err := ds.Column(outcome)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare outcome %s: %w", outcome, err)
	}
	splitValues, err := ds.Column(split)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare split %s: %w", split, err)
	}

	median, highRows, lowRows := MedianSplit(splitValues)
	cmp := Comparison{
		Outcome: outcome,
		Split:   split,
		Median:  median,
		High:    summarizeGroup(outcomeValues, highRows),
		Low:     summarizeGroup(outcomeValues, lowRows),
	}

	cmp.CohensD, cmp.CohensDErr = CohensD(cmp.High.values, cmp.Low.values)

	if test != nil {
		cmp.TTestAvailable = true
		cmp.TTestName = test.Name()
		cmp.TTest, cmp.TTestErr = test.Compare(cmp.High.values, cmp.Low.values)
	}
	return cmp, nil
}

func summarizeGroup(outcome []survey.NullInt, rows []int) GroupSummary {
	g := GroupSummary{Rows: len(rows), Mean: math.NaN(), Std: math.NaN()}
	for _, i := range rows {
		if outcome[i].Valid {
			g.values = append(g.values, float64(outcome[i].Value))
		}
	}
	g.N = len(g.values)
	if g.N > 0 {
		g.Mean, _ = stats.Mean(g.values)
	}
	if g.N > 1 {
		g.Std, _ = stats.StandardDeviationSample(g.values)
	}
	return g
}

// Values returns the present outcome values of the group
func (g GroupSummary) Values() []float64 {
	return append([]float64(nil), g.values...)
}
