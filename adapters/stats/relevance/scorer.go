package relevance

import (
	"math"
	"sort"

	"goprofile/adapters/datareadiness/coercer"
	"goprofile/adapters/stats/correlation"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// Encoding is how the target column is read when scoring features
type Encoding string

const (
	EncodingNumeric     Encoding = "numeric"
	EncodingBinary      Encoding = "binary"
	EncodingCategorical Encoding = "categorical"
)

// Column is a typed input column, either a feature or the target
type Column struct {
	Name   string
	Type   profile.SemanticType
	Values []dataset.Value
}

// Target is the encoded target column
type Target struct {
	Name     string
	Encoding Encoding
	Series   correlation.Series // numeric and binary encodings
	Labels   Labels             // categorical encoding
}

// EncodeTarget classifies the target. A boolean column is binary with true as
// 1. Any other column with exactly two distinct values is binary with the
// lexically greater value as 1. Otherwise numerical columns are numeric and
// everything else is categorical.
func EncodeTarget(col Column) Target {
	if col.Type == profile.TypeBoolean {
		return binaryTarget(col, func(v dataset.Value) (float64, bool) {
			b, ok := coercer.ParseBoolean(v)
			if !ok {
				return 0, false
			}
			if b {
				return 1, true
			}
			return 0, true
		})
	}

	if distinct := distinctValues(col.Values); len(distinct) == 2 {
		sort.Strings(distinct)
		positive := distinct[1]
		return binaryTarget(col, func(v dataset.Value) (float64, bool) {
			if v.IsMissing() {
				return 0, false
			}
			if v.String() == positive {
				return 1, true
			}
			return 0, true
		})
	}

	if col.Type == profile.TypeNumerical {
		return Target{
			Name:     col.Name,
			Encoding: EncodingNumeric,
			Series:   correlation.NewSeries(col.Name, col.Values),
		}
	}

	return Target{Name: col.Name, Encoding: EncodingCategorical, Labels: NewLabels(col.Values)}
}

// ScoreFeature scores one feature against the target. ok is false for
// feature types that are not scored.
func ScoreFeature(target Target, feature Column) (profile.FeatureImportance, bool) {
	fi := profile.FeatureImportance{Feature: feature.Name}

	switch feature.Type {
	case profile.TypeNumerical:
		series := correlation.NewSeries(feature.Name, feature.Values)
		if target.Encoding == EncodingCategorical {
			fi.Method = profile.MethodEtaSquared
			fi.Score = EtaSquared(target.Labels, series.Values, series.Valid)
			return fi, true
		}
		r, _ := correlation.Pearson(series, target.Series)
		fi.Method = profile.MethodPearson
		fi.Score = math.Abs(r)
		return fi, true

	case profile.TypeCategorical, profile.TypeBoolean:
		groups := NewLabels(feature.Values)
		if target.Encoding == EncodingCategorical {
			fi.Method = profile.MethodMutualInformation
			fi.Score = NormalizedMutualInformation(groups, target.Labels)
			return fi, true
		}
		fi.Method = profile.MethodEtaSquared
		fi.Score = EtaSquared(groups, target.Series.Values, target.Series.Valid)
		return fi, true
	}

	return fi, false
}

// Score ranks every scoreable feature against the target, highest first.
// Ties keep input order. The target itself is skipped.
func Score(target Column, features []Column) []profile.FeatureImportance {
	encoded := EncodeTarget(target)

	out := make([]profile.FeatureImportance, 0, len(features))
	for _, f := range features {
		if f.Name == target.Name {
			continue
		}
		if fi, ok := ScoreFeature(encoded, f); ok {
			out = append(out, fi)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func binaryTarget(col Column, encode func(dataset.Value) (float64, bool)) Target {
	nums := make([]float64, len(col.Values))
	valid := make([]bool, len(col.Values))
	for i, v := range col.Values {
		nums[i], valid[i] = encode(v)
	}
	return Target{
		Name:     col.Name,
		Encoding: EncodingBinary,
		Series:   correlation.Series{Name: col.Name, Values: nums, Valid: valid},
	}
}

// NewLabels reads values by exact representation. Only missing values are
// invalid, so an empty string is its own category.
func NewLabels(values []dataset.Value) Labels {
	l := Labels{Values: make([]string, len(values)), Valid: make([]bool, len(values))}
	for i, v := range values {
		if !v.IsMissing() {
			l.Values[i] = v.String()
			l.Valid[i] = true
		}
	}
	return l
}

func distinctValues(values []dataset.Value) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
