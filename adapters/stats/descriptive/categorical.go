package descriptive

import (
	"math"
	"sort"

	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// DefaultTopN is how many frequent values are reported
const DefaultTopN = 10

// Frequencies counts non-missing values by exact string representation.
// Keys are returned in first-encountered order.
func Frequencies(values []dataset.Value) (keys []string, counts map[string]int) {
	counts = make(map[string]int)
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		repr := v.String()
		if _, seen := counts[repr]; !seen {
			keys = append(keys, repr)
		}
		counts[repr]++
	}
	return keys, counts
}

// ProfileCategorical computes the frequency statistic for one column of the
// given semantic type. topN <= 0 falls back to DefaultTopN.
func ProfileCategorical(name string, typ profile.SemanticType, values []dataset.Value, topN int) profile.CategoricalStatistic {
	if topN <= 0 {
		topN = DefaultTopN
	}

	keys, counts := Frequencies(values)
	valid := 0
	for _, c := range counts {
		valid += c
	}

	total := len(values)
	missing := total - valid

	// keys are in first-seen order; the stable sort keeps that order on ties
	ordered := append([]string(nil), keys...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	if len(ordered) > topN {
		ordered = ordered[:topN]
	}

	top := make([]profile.ValueCount, len(ordered))
	for i, key := range ordered {
		top[i] = profile.ValueCount{
			Value: key,
			Count: counts[key],
			Pct:   percent(counts[key], valid),
		}
	}

	return profile.CategoricalStatistic{
		ColumnInfo: profile.ColumnInfo{
			Name:         name,
			Type:         typ,
			ValidCount:   valid,
			MissingCount: missing,
			MissingPct:   percent(missing, total),
		},
		UniqueCount: len(keys),
		TopValues:   top,
		Entropy:     entropy(keys, counts, valid),
	}
}

func entropy(keys []string, counts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	h := 0.0
	n := float64(total)
	for _, key := range keys {
		p := float64(counts[key]) / n
		h -= p * math.Log2(p)
	}
	return h
}
