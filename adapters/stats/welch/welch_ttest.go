package welch

import (
	"fmt"
	"math"

	"buret/domain/core"
	"buret/ports"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest compares two group means without assuming equal variances
type WelchTTest struct{}

// NewWelchTTest creates a new Welch's t-test
func NewWelchTTest() *WelchTTest {
	return &WelchTTest{}
}

// Name returns the test name
func (s *WelchTTest) Name() string {
	return "welch_ttest"
}

// Compare performs Welch's t-test of a against b. Each group needs at least two
// observations and the pooled standard error must be positive.
func (s *WelchTTest) Compare(a, b []float64) (ports.TTestResult, error) {
	n1 := float64(len(a))
	n2 := float64(len(b))
	if n1 < 2 || n2 < 2 {
		return ports.TTestResult{}, fmt.Errorf("%w: welch t-test needs two observations per group (got %d and %d)",
			core.ErrInsufficientData, len(a), len(b))
	}

	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	// t = (mean1 - mean2) / sqrt(var1/n1 + var2/n2)
	se2 := var1/n1 + var2/n2
	if se2 == 0 {
		return ports.TTestResult{}, fmt.Errorf("%w: both groups are constant", core.ErrDegenerate)
	}
	tStat := (mean1 - mean2) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * tDist.Survival(math.Abs(tStat))

	return ports.TTestResult{T: tStat, DegreesOfFreedom: df, PValue: pValue}, nil
}
