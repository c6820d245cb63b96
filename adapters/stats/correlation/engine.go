package correlation

import (
	"math"
	"sort"

	"goprofile/adapters/datareadiness/coercer"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// Strength thresholds on |r|
const (
	VeryStrongThreshold = 0.7
	StrongThreshold     = 0.5
	ModerateThreshold   = 0.3
)

// Classify buckets a coefficient by its absolute value.
func Classify(r float64) profile.Strength {
	abs := math.Abs(r)
	switch {
	case abs >= VeryStrongThreshold:
		return profile.StrengthVeryStrong
	case abs >= StrongThreshold:
		return profile.StrengthStrong
	case abs >= ModerateThreshold:
		return profile.StrengthModerate
	default:
		return profile.StrengthWeak
	}
}

// Result holds the full matrix and the pair list sorted for reporting
type Result struct {
	Matrix *profile.CorrelationMatrix
	Pairs  []profile.CorrelationPair
}

// NewSeries parses a raw column into a Series.
func NewSeries(name string, values []dataset.Value) Series {
	nums, valid := coercer.NumericSlice(values)
	return Series{Name: name, Values: nums, Valid: valid}
}

// Compute correlates every pair i<j of the given numeric series. Pairs are
// sorted by |r| descending; equal magnitudes keep column order.
func Compute(series []Series) Result {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}

	matrix := profile.NewCorrelationMatrix(names)
	pairs := make([]profile.CorrelationPair, 0, len(series)*(len(series)-1)/2)

	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			r, n := Pearson(series[i], series[j])
			matrix.Set(i, j, r)
			pairs = append(pairs, profile.CorrelationPair{
				Feature1:    series[i].Name,
				Feature2:    series[j].Name,
				Coefficient: r,
				Strength:    Classify(r),
				SampleSize:  n,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Coefficient) > math.Abs(pairs[b].Coefficient)
	})

	return Result{Matrix: matrix, Pairs: pairs}
}
