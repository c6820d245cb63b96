package descriptive

import (
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// Profile dispatches a column to the profiler matching its semantic type.
// Numerical columns get the numeric variant; every other type is profiled by
// frequency.
func Profile(name string, typ profile.SemanticType, values []dataset.Value, topN int) profile.FeatureStatistic {
	if typ == profile.TypeNumerical {
		return ProfileNumeric(name, values)
	}
	return ProfileCategorical(name, typ, values, topN)
}
