package analysis

import "math"

// Round rounds half-to-even at the given number of decimals, the way numpy's
// around does: scale, round to nearest even integer, unscale. NaN and Inf pass through.
func Round(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(x*scale) / scale
}
