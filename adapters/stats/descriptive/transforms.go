package descriptive

import (
	"math"

	"goprofile/domain/profile"
)

// Transform recommendation thresholds
const (
	ModerateSkewThreshold   = 1.0
	SevereSkewThreshold     = 2.0
	OutlierFractionForClamp = 0.05
)

// Shape is what transform rules look at
type Shape struct {
	Skewness        float64
	OutlierFraction float64 // outliers / valid values
}

// TransformRule recommends transforms when its predicate holds
type TransformRule struct {
	Name       string
	Transforms []profile.Transform
	Matches    func(Shape) bool
}

// TransformRules are evaluated in order and every match contributes.
var TransformRules = []TransformRule{
	{
		Name:       "moderate_skew",
		Transforms: []profile.Transform{profile.TransformLog, profile.TransformSqrt},
		Matches:    func(s Shape) bool { return math.Abs(s.Skewness) > ModerateSkewThreshold },
	},
	{
		Name:       "severe_skew",
		Transforms: []profile.Transform{profile.TransformBoxCox},
		Matches:    func(s Shape) bool { return math.Abs(s.Skewness) > SevereSkewThreshold },
	},
	{
		Name:       "outlier_heavy",
		Transforms: []profile.Transform{profile.TransformWinsorize},
		Matches:    func(s Shape) bool { return s.OutlierFraction > OutlierFractionForClamp },
	},
}

// RecommendTransforms collects the transforms of every matching rule.
func RecommendTransforms(s Shape) []profile.Transform {
	out := []profile.Transform{}
	for _, rule := range TransformRules {
		if rule.Matches(s) {
			out = append(out, rule.Transforms...)
		}
	}
	return out
}
