package inference

import (
	"unicode/utf8"

	"goprofile/adapters/datareadiness/coercer"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// Inference thresholds. Each rule in Rules reads only these constants.
const (
	// SampleSize caps how many non-missing values are inspected
	SampleSize = 100

	BooleanMaxDistinct = 2

	NumericParseRatio     = 0.8
	NumericMinUniqueRatio = 0.05
	NumericMinDistinct    = 20

	DatetimeParseRatio = 0.8

	TextMinAvgLength = 50.0
)

// Sample is the per-column evidence every rule evaluates
type Sample struct {
	Values        []dataset.Value
	Distinct      int     // distinct representations
	UniqueRatio   float64 // Distinct / len(Values)
	NumericRatio  float64
	DatetimeRatio float64
	AvgLength     float64 // runes
	AllBoolTokens bool
	BoolDistinct  int // distinct normalised boolean tokens
}

// Rule maps a predicate over a Sample to a semantic type
type Rule struct {
	Name    string
	Result  profile.SemanticType
	Matches func(Sample) bool
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{
		Name:   "boolean_tokens",
		Result: profile.TypeBoolean,
		Matches: func(s Sample) bool {
			return s.AllBoolTokens && s.BoolDistinct <= BooleanMaxDistinct
		},
	},
	{
		Name:   "numeric_high_cardinality",
		Result: profile.TypeNumerical,
		Matches: func(s Sample) bool {
			return s.NumericRatio >= NumericParseRatio &&
				(s.UniqueRatio > NumericMinUniqueRatio || s.Distinct > NumericMinDistinct)
		},
	},
	{
		Name:   "datetime_pattern",
		Result: profile.TypeDatetime,
		Matches: func(s Sample) bool {
			return s.DatetimeRatio >= DatetimeParseRatio
		},
	},
	{
		Name:   "long_text",
		Result: profile.TypeText,
		Matches: func(s Sample) bool {
			return s.AvgLength > TextMinAvgLength
		},
	},
}

// DefaultRule applies when no rule in Rules matches, including empty columns.
const DefaultRule = "default_categorical"

// Decision is the inferred type plus the rule that produced it
type Decision struct {
	Type profile.SemanticType `json:"type"`
	Rule string               `json:"rule"`
}

// Infer classifies a column from its raw values.
func Infer(values []dataset.Value) profile.SemanticType {
	return Decide(values).Type
}

// Decide is Infer with the deciding rule attached.
func Decide(values []dataset.Value) Decision {
	s := Collect(values)
	if len(s.Values) == 0 {
		return Decision{Type: profile.TypeCategorical, Rule: DefaultRule}
	}
	for _, rule := range Rules {
		if rule.Matches(s) {
			return Decision{Type: rule.Result, Rule: rule.Name}
		}
	}
	return Decision{Type: profile.TypeCategorical, Rule: DefaultRule}
}

// Collect samples the first SampleSize non-missing values and computes the
// ratios the rules read.
func Collect(values []dataset.Value) Sample {
	sample := make([]dataset.Value, 0, SampleSize)
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		sample = append(sample, v)
		if len(sample) == SampleSize {
			break
		}
	}

	s := Sample{Values: sample}
	if len(sample) == 0 {
		return s
	}

	distinct := make(map[string]struct{}, len(sample))
	boolTokens := make(map[string]struct{}, 2)
	allBool := true
	numeric, dates, runes := 0, 0, 0

	for _, v := range sample {
		repr := v.String()
		distinct[repr] = struct{}{}
		runes += utf8.RuneCountInString(repr)

		if coercer.IsBooleanToken(v) {
			boolTokens[coercer.NormalizeToken(v)] = struct{}{}
		} else {
			allBool = false
		}
		if _, ok := coercer.ParseNumber(v); ok {
			numeric++
		}
		if _, ok := coercer.ParseTimestamp(v); ok {
			dates++
		}
	}

	n := float64(len(sample))
	s.Distinct = len(distinct)
	s.UniqueRatio = float64(s.Distinct) / n
	s.NumericRatio = float64(numeric) / n
	s.DatetimeRatio = float64(dates) / n
	s.AvgLength = float64(runes) / n
	s.AllBoolTokens = allBool
	s.BoolDistinct = len(boolTokens)
	return s
}
