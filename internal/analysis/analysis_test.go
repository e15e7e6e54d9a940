package analysis

import (
	"errors"
	"math"
	"testing"

	"buret/domain/core"
	"buret/domain/survey"
	"buret/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(values ...interface{}) []survey.NullInt {
	out := make([]survey.NullInt, len(values))
	for i, v := range values {
		if n, ok := v.(int); ok {
			out[i] = survey.Int(n)
		}
	}
	return out
}

func datasetFrom(edad, uso, burnout, factores []survey.NullInt) *survey.Dataset {
	records := make([]survey.Record, len(edad))
	for i := range records {
		records[i] = survey.Record{
			Edad:                  edad[i],
			Sexo:                  survey.Int(i % 2),
			UsoRedes:              uso[i],
			Burnout:               burnout[i],
			FactoresPsicosociales: factores[i],
		}
	}
	ds := survey.NewDataset(records)
	ds.Classify()
	return ds
}

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 2.5, Round(2.5, 1))
	assert.Equal(t, 2.0, Round(2.5, 0))
	assert.Equal(t, 0.333, Round(1.0/3.0, 3))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}

func TestDescribe(t *testing.T) {
	ds := datasetFrom(
		ints(20, 30, nil, 40),
		ints(1, 1, 1, 1),
		ints(10, nil, nil, nil),
		ints(nil, nil, nil, nil),
	)

	rows, err := Describe(ds, []core.ColumnName{survey.ColEdad, survey.ColBurnout, survey.ColFactoresPsicosociales})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	edad := rows[0]
	assert.Equal(t, survey.ColEdad, edad.Column)
	assert.Equal(t, 3, edad.Count)
	assert.Equal(t, 30.0, edad.Mean)
	assert.Equal(t, 10.0, edad.Std)
	assert.Equal(t, 20.0, edad.Min)
	assert.Equal(t, 40.0, edad.Max)

	burnout := rows[1]
	assert.Equal(t, 1, burnout.Count)
	assert.Equal(t, 10.0, burnout.Mean)
	assert.True(t, math.IsNaN(burnout.Std), "sd of a single value is undefined")

	empty := rows[2]
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Min))

	_, err = Describe(ds, []core.ColumnName{"unknown"})
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}

func TestDescribeRoundsToTwoDecimals(t *testing.T) {
	ds := datasetFrom(ints(1, 2, 2), ints(0, 0, 0), ints(0, 0, 0), ints(0, 0, 0))

	rows, err := Describe(ds, []core.ColumnName{survey.ColEdad})
	require.NoError(t, err)
	assert.Equal(t, 1.67, rows[0].Mean)
	assert.Equal(t, 0.58, rows[0].Std)
}

func TestFrequenciesOrderingAndMissing(t *testing.T) {
	values := ints(1, nil, 0, 0, 1, nil, 0)
	table := Frequencies("sexo", values)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, 7, table.Total)
	assert.Equal(t, FrequencyRow{Category: "0", N: 3, Percent: Round(3.0/7.0, 3) * 100}, table.Rows[0])
	// 1 and <NA> tie at 2; 1 was seen first
	assert.Equal(t, "1", table.Rows[1].Category)
	assert.Equal(t, survey.MissingLabel, table.Rows[2].Category)
	assert.InDelta(t, 42.9, table.Rows[0].Percent, 1e-9)
	assert.InDelta(t, 28.6, table.Rows[1].Percent, 1e-9)
}

func TestFrequenciesSumToHundred(t *testing.T) {
	cases := [][]survey.Level{
		{survey.BurnoutLevel(survey.Int(1)), survey.BurnoutLevel(survey.Int(20)), survey.BurnoutLevel(survey.Int(40))},
		{survey.BurnoutLevel(survey.Int(1)), survey.BurnoutLevel(survey.Missing())},
		{survey.CopsoqLevel(survey.Int(1))},
	}
	for _, levels := range cases {
		table := Frequencies("nivel", levels)
		assert.InDelta(t, 100.0, table.TotalPercent(), 0.5)
	}

	// larger mixed sample
	var levels []survey.Level
	for s := -5; s < 70; s++ {
		levels = append(levels, survey.CopsoqLevel(survey.Int(s)))
		if s%7 == 0 {
			levels = append(levels, survey.CopsoqLevel(survey.Missing()))
		}
	}
	assert.InDelta(t, 100.0, Frequencies("nivel_copsoq", levels).TotalPercent(), 0.5)
}

func TestFrequenciesEmpty(t *testing.T) {
	table := Frequencies[survey.Level]("nivel_burnout", nil)
	assert.Empty(t, table.Rows)
	assert.Equal(t, 0.0, table.TotalPercent())
}

func TestCorrelationsSymmetricUnitDiagonal(t *testing.T) {
	ds := datasetFrom(
		ints(20, 25, 30, 35, 40, nil),
		ints(5, 9, 4, 12, 8, 3),
		ints(10, 14, 18, 30, 28, 40),
		ints(40, 33, 30, 20, nil, 10),
	)

	m, err := Correlations(ds, survey.NumericColumns)
	require.NoError(t, err)
	require.Len(t, m.Values, 4)

	for i := range m.Columns {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := range m.Columns {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.LessOrEqual(t, math.Abs(m.At(i, j)), 1.0)
		}
	}
}

func TestCorrelationsPairwiseComplete(t *testing.T) {
	// edad and burnout are perfectly linear on the rows where both are present
	ds := datasetFrom(
		ints(1, 2, 3, nil, 5),
		ints(3, 1, 2, 9, 4),
		ints(2, 4, 6, 100, nil),
		ints(1, 1, 1, 1, 1),
	)

	m, err := Correlations(ds, []core.ColumnName{survey.ColEdad, survey.ColBurnout, survey.ColFactoresPsicosociales})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.At(0, 1))
	assert.True(t, math.IsNaN(m.At(0, 2)), "constant column has no correlation")
	assert.True(t, math.IsNaN(m.At(2, 2)))
}

func TestCorrelationsRounding(t *testing.T) {
	ds := datasetFrom(
		ints(1, 2, 3, 4),
		ints(0, 0, 0, 0),
		ints(1, 3, 2, 4),
		ints(0, 0, 0, 0),
	)
	m, err := Correlations(ds, []core.ColumnName{survey.ColEdad, survey.ColBurnout})
	require.NoError(t, err)
	assert.Equal(t, 0.8, m.At(0, 1))
}

func TestCohensDScenario(t *testing.T) {
	d, err := CohensD([]float64{10, 20}, []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-12)
}

func TestCohensDAntisymmetric(t *testing.T) {
	groups := [][2][]float64{
		{{10, 20}, {0, 0}},
		{{1, 2, 3, 4}, {2, 2, 5}},
		{{-4, 8, 15, 16, 23, 42}, {0, 1, 1, 2, 3, 5, 8}},
	}
	for _, g := range groups {
		ab, err := CohensD(g[0], g[1])
		require.NoError(t, err)
		ba, err := CohensD(g[1], g[0])
		require.NoError(t, err)
		assert.InDelta(t, ab, -ba, 1e-12)
	}
}

func TestCohensDGuards(t *testing.T) {
	_, err := CohensD([]float64{1}, []float64{2})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = CohensD(nil, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, core.ErrInsufficientData))

	_, err = CohensD([]float64{3, 3}, []float64{1, 1})
	assert.True(t, errors.Is(err, core.ErrDegenerate))
}

func TestCohensDSingleValueGroup(t *testing.T) {
	groups := [][2][]float64{
		{{10}, {0, 2, 4}},
		{{0, 2, 4}, {10}},
		{{7}, {1, 3}},
	}
	for _, g := range groups {
		d, err := CohensD(g[0], g[1])
		assert.True(t, math.IsNaN(d), "%v vs %v", g[0], g[1])
		assert.True(t, errors.Is(err, core.ErrInsufficientData), "%v vs %v", g[0], g[1])
	}
}

func TestCompareHighLowSingleOutcomeGroup(t *testing.T) {
	// uso_redes median is 2: only the row with 3 is high, and its group has one outcome
	ds := datasetFrom(
		ints(20, 21, 22),
		ints(1, 2, 3),
		ints(0, 2, 10),
		ints(0, 0, 0),
	)

	cmp, err := CompareHighLow(ds, survey.ColBurnout, survey.ColUsoRedes, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp.High.N)
	assert.True(t, math.IsNaN(cmp.High.Std))
	assert.True(t, math.IsNaN(cmp.CohensD))
	assert.True(t, errors.Is(cmp.CohensDErr, core.ErrInsufficientData))
}

func TestMedianSplit(t *testing.T) {
	median, high, low := MedianSplit(ints(1, 5, nil, 3, 8))
	assert.Equal(t, 4.0, median)
	assert.Equal(t, []int{1, 4}, high)
	assert.Equal(t, []int{0, 3}, low)

	median, high, low = MedianSplit(ints(2, 2, 2))
	assert.Equal(t, 2.0, median)
	assert.Empty(t, high)
	assert.Equal(t, []int{0, 1, 2}, low)

	median, high, low = MedianSplit(ints(nil, nil))
	assert.True(t, math.IsNaN(median))
	assert.Empty(t, high)
	assert.Empty(t, low)
}

type fakeTest struct {
	gotA, gotB []float64
}

func (f *fakeTest) Name() string { return "fake" }

func (f *fakeTest) Compare(a, b []float64) (ports.TTestResult, error) {
	f.gotA, f.gotB = a, b
	return ports.TTestResult{T: 1.5, DegreesOfFreedom: 3, PValue: 0.2}, nil
}

func TestCompareHighLow(t *testing.T) {
	// uso_redes median is 5: rows with 7 and 9 are high, the rest low
	ds := datasetFrom(
		ints(20, 21, 22, 23, 24, 25),
		ints(1, 7, 5, 9, nil, 3),
		ints(0, 10, 0, 20, 50, nil),
		ints(0, 0, 0, 0, 0, 0),
	)

	fake := &fakeTest{}
	cmp, err := CompareHighLow(ds, survey.ColBurnout, survey.ColUsoRedes, fake)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cmp.Median)
	assert.Equal(t, 2, cmp.High.Rows)
	assert.Equal(t, 2, cmp.High.N)
	assert.Equal(t, 15.0, cmp.High.Mean)
	assert.InDelta(t, math.Sqrt(50), cmp.High.Std, 1e-12)

	assert.Equal(t, 3, cmp.Low.Rows)
	assert.Equal(t, 2, cmp.Low.N, "missing outcome stays in the group but not in its statistics")
	assert.Equal(t, 0.0, cmp.Low.Mean)

	require.NoError(t, cmp.CohensDErr)
	assert.InDelta(t, 3.0, cmp.CohensD, 1e-12)

	assert.True(t, cmp.TTestAvailable)
	assert.Equal(t, "fake", cmp.TTestName)
	assert.Equal(t, []float64{10, 20}, fake.gotA)
	assert.Equal(t, []float64{0, 0}, fake.gotB)
	assert.Equal(t, 0.2, cmp.TTest.PValue)
}

func TestCompareHighLowWithoutStatTest(t *testing.T) {
	ds := datasetFrom(ints(1, 2, 3), ints(1, 2, 3), ints(4, 5, 6), ints(0, 0, 0))

	cmp, err := CompareHighLow(ds, survey.ColBurnout, survey.ColUsoRedes, nil)
	require.NoError(t, err)
	assert.False(t, cmp.TTestAvailable)
	assert.NoError(t, cmp.TTestErr)
	assert.Equal(t, []float64{6}, cmp.High.Values())
}

func TestCompareHighLowUnknownColumn(t *testing.T) {
	ds := datasetFrom(ints(1), ints(1), ints(1), ints(1))
	_, err := CompareHighLow(ds, "missing", survey.ColUsoRedes, nil)
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}
