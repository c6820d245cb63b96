package summary

import "goprofile/domain/profile"

const (
	HighMissingPct          = 50.0
	HighCardinalityRatio    = 0.9
	HighCardinalityMinValid = 50
)

// FlagRule raises a quality flag on a column when Check holds
type FlagRule struct {
	Flag  profile.QualityFlag
	Check func(profile.FeatureStatistic) bool
}

// FlagRules are evaluated in order; every matching rule contributes a flag.
var FlagRules = []FlagRule{
	{
		Flag: profile.FlagHighMissingRate,
		Check: func(fs profile.FeatureStatistic) bool {
			return fs.Info().MissingPct > HighMissingPct
		},
	},
	{
		Flag: profile.FlagConstant,
		Check: func(fs profile.FeatureStatistic) bool {
			switch s := fs.(type) {
			case profile.NumericStatistic:
				return s.Summary != nil && s.Summary.Std == 0
			case profile.CategoricalStatistic:
				return s.UniqueCount == 1
			}
			return false
		},
	},
	{
		Flag: profile.FlagHighCardinality,
		Check: func(fs profile.FeatureStatistic) bool {
			s, ok := fs.(profile.CategoricalStatistic)
			if !ok || s.ValidCount <= HighCardinalityMinValid {
				return false
			}
			return float64(s.UniqueCount)/float64(s.ValidCount) > HighCardinalityRatio
		},
	},
	{
		Flag: profile.FlagHasOutliers,
		Check: func(fs profile.FeatureStatistic) bool {
			s, ok := fs.(profile.NumericStatistic)
			return ok && s.Summary != nil && s.Summary.OutlierCount > 0
		},
	},
}

// Flags returns the flags raised for one column, never nil.
func Flags(fs profile.FeatureStatistic) []profile.QualityFlag {
	flags := []profile.QualityFlag{}
	for _, rule := range FlagRules {
		if rule.Check(fs) {
			flags = append(flags, rule.Flag)
		}
	}
	return flags
}
