package descriptive

import (
	"math"
	"sort"

	"goprofile/adapters/datareadiness/coercer"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"

	"github.com/montanaflynn/stats"
)

// IQRFenceMultiplier scales the IQR into the Tukey outlier fences
const IQRFenceMultiplier = 1.5

// ProfileNumeric computes the numeric statistic for one column. Values that
// do not parse as numbers count as missing.
func ProfileNumeric(name string, values []dataset.Value) profile.NumericStatistic {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := coercer.ParseNumber(v); ok {
			nums = append(nums, f)
		}
	}

	total := len(values)
	info := profile.ColumnInfo{
		Name:         name,
		Type:         profile.TypeNumerical,
		ValidCount:   len(nums),
		MissingCount: total - len(nums),
	}

	if len(nums) == 0 {
		info.MissingPct = 100
		return profile.NumericStatistic{ColumnInfo: info}
	}
	info.MissingPct = percent(info.MissingCount, total)

	return profile.NumericStatistic{
		ColumnInfo: info,
		Summary:    Summarize(nums),
	}
}

// Summarize computes the descriptive summary of a non-empty sample. The
// input slice is not modified.
func Summarize(nums []float64) *profile.NumericSummary {
	if len(nums) == 0 {
		return nil
	}

	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	mean, std, scaled := meanStd(sorted)

	q1 := Percentile(sorted, 25)
	median := Percentile(sorted, 50)
	q3 := Percentile(sorted, 75)
	iqr := clampFinite(q3 - q1)

	lower := clampFinite(q1 - IQRFenceMultiplier*iqr)
	upper := clampFinite(q3 + IQRFenceMultiplier*iqr)
	outliers := 0
	for _, x := range sorted {
		if x < lower || x > upper {
			outliers++
		}
	}

	// moments are scale free, so they are taken on the scaled sample
	scale := scaleOf(sorted)
	skew, kurt := Moments(scaled, mean/scale, std/scale)
	outlierFraction := float64(outliers) / float64(len(sorted))

	return &profile.NumericSummary{
		Mean:         mean,
		Median:       median,
		Std:          std,
		Min:          lo,
		Max:          hi,
		Q1:           q1,
		Q3:           q3,
		IQR:          iqr,
		Skewness:     skew,
		Kurtosis:     kurt,
		LowerFence:   lower,
		UpperFence:   upper,
		OutlierCount: outliers,
		OutlierPct:   outlierFraction * 100,
		Transforms:   RecommendTransforms(Shape{Skewness: skew, OutlierFraction: outlierFraction}),
	}
}

// meanStd returns the mean and population standard deviation of a sorted,
// non-empty sample together with the sample divided by scaleOf. Scaling keeps
// sums of values near MaxFloat64 finite. A constant sample has its value as
// mean and a std of exactly 0.
func meanStd(sorted []float64) (mean, std float64, scaled []float64) {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	scale := scaleOf(sorted)
	scaled = make([]float64, len(sorted))
	for i, x := range sorted {
		scaled[i] = x / scale
	}
	if lo == hi {
		return lo, 0, scaled
	}

	m, _ := stats.Mean(scaled)
	sd, _ := stats.StandardDeviationPopulation(scaled)
	mean = math.Max(lo, math.Min(hi, m*scale))
	return mean, clampFinite(sd * scale), scaled
}

// scaleOf is the power of two at or just below the largest magnitude in
// sorted, or 1 for an all-zero sample. Dividing by a power of two is exact, so scaled
// arithmetic rounds exactly like the unscaled sample would.
func scaleOf(sorted []float64) float64 {
	peak := math.Max(math.Abs(sorted[0]), math.Abs(sorted[len(sorted)-1]))
	if peak == 0 {
		return 1
	}
	_, exp := math.Frexp(peak)
	return math.Ldexp(1, exp-1)
}

// clampFinite maps an overflowed result to the nearest finite float
func clampFinite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}
	return x
}

// Moments returns the population skewness (third standardized moment) and
// excess kurtosis (fourth standardized moment minus 3). Both are 0 when std
// is 0 or not finite.
func Moments(nums []float64, mean, std float64) (skewness, kurtosis float64) {
	if len(nums) == 0 || std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return 0, 0
	}

	var m3, m4 float64
	for _, x := range nums {
		z := (x - mean) / std
		z2 := z * z
		m3 += z2 * z
		m4 += z2 * z2
	}
	n := float64(len(nums))
	return m3 / n, m4/n - 3
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
