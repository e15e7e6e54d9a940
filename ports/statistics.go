package ports

// TTestResult is the outcome of a two-sample test
type TTestResult struct {
	T                float64
	DegreesOfFreedom float64
	PValue           float64 // two-tailed
}

// StatTest is an optional two-sample mean comparison capability.
// A nil StatTest means the capability is unavailable for the run.
type StatTest interface {
	Name() string
	Compare(a, b []float64) (TTestResult, error)
}
