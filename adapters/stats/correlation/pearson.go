package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Series is a numeric column with a per-row validity mask
type Series struct {
	Name   string
	Values []float64
	Valid  []bool
}

// PairwiseComplete returns the rows where both series are valid.
func PairwiseComplete(a, b Series) (xs, ys []float64) {
	n := len(a.Values)
	if len(b.Values) < n {
		n = len(b.Values)
	}
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if a.Valid[i] && b.Valid[i] {
			xs = append(xs, a.Values[i])
			ys = append(ys, b.Values[i])
		}
	}
	return xs, ys
}

// Pearson computes r between two series with pairwise deletion and returns it
// with the number of complete rows used. Fewer than two complete rows, or
// zero variance on either side, yields r = 0.
func Pearson(a, b Series) (r float64, n int) {
	xs, ys := PairwiseComplete(a, b)
	return PearsonComplete(xs, ys), len(xs)
}

// PearsonComplete computes r over already-aligned slices.
func PearsonComplete(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0
	}
	if constant(xs) || constant(ys) {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
