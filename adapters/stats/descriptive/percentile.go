package descriptive

import "math"

// Percentile returns the p-th percentile (0-100) of sorted using linear
// interpolation between the two nearest ranks: index = p/100 * (n-1).
// sorted must be in ascending order. An empty input yields 0.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return math.Min(sorted[lower]+(sorted[upper]-sorted[lower])*weight, sorted[upper])
}
