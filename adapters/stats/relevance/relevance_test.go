package relevance

import (
	"testing"

	"goprofile/domain/dataset"
	"goprofile/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(raw ...interface{}) []dataset.Value {
	return dataset.NewColumn("c", raw...).Values
}

func col(name string, typ profile.SemanticType, raw ...interface{}) Column {
	return Column{Name: name, Type: typ, Values: dataset.NewColumn(name, raw...).Values}
}

func present(values ...string) Labels {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return Labels{Values: values, Valid: valid}
}

func TestEtaSquared(t *testing.T) {
	valid := []bool{true, true, true, true}

	eta := EtaSquared(present("A", "A", "B", "B"), []float64{1, 2, 5, 6}, valid)
	assert.InDelta(t, 16.0/17.0, eta, 1e-12)

	// one group explains everything
	assert.InDelta(t, 1.0, EtaSquared(present("A", "A", "B", "B"), []float64{1, 1, 5, 5}, valid), 1e-12)

	// identical group means explain nothing
	assert.InDelta(t, 0.0, EtaSquared(present("A", "B", "A", "B"), []float64{1, 1, 5, 5}, valid), 1e-12)

	// zero total variance
	assert.Equal(t, 0.0, EtaSquared(present("A", "B"), []float64{3, 3}, valid[:2]))

	// missing labels and invalid values are skipped
	groups := Labels{Values: []string{"A", "", "B", "B"}, Valid: []bool{true, false, true, true}}
	eta = EtaSquared(groups, []float64{1, 99, 5, 7}, []bool{true, true, true, false})
	assert.InDelta(t, 1.0, eta, 1e-12)
	assert.Equal(t, 0.0, EtaSquared(present("A"), []float64{1}, []bool{true}))
}

func TestEtaSquaredEmptyStringIsAGroup(t *testing.T) {
	groups := NewLabels(column("", "", "x", "x"))
	assert.Equal(t, []bool{true, true, true, true}, groups.Valid)

	eta := EtaSquared(groups, []float64{1, 1, 5, 5}, []bool{true, true, true, true})
	assert.InDelta(t, 1.0, eta, 1e-12)

	missing := NewLabels(column(nil, nil, "x", "x"))
	assert.Equal(t, 0.0, EtaSquared(missing, []float64{1, 1, 5, 5}, []bool{true, true, true, true}))
}

func TestNormalizedMutualInformation(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizedMutualInformation(
		present("a", "a", "b", "b"), present("p", "p", "q", "q")), 1e-12)

	assert.InDelta(t, 0.0, NormalizedMutualInformation(
		present("a", "b", "a", "b"), present("p", "p", "q", "q")), 1e-12)

	// x determines y, y does not determine x: normalised by the smaller entropy
	assert.InDelta(t, 1.0, NormalizedMutualInformation(
		present("a", "b", "c", "d"), present("p", "p", "q", "q")), 1e-12)

	assert.Equal(t, 0.0, NormalizedMutualInformation(
		present("a", "a", "a"), present("p", "q", "r")))
	assert.Equal(t, 0.0, NormalizedMutualInformation(
		NewLabels(column(nil, nil)), present("p", "q")))

	// an empty string is a category of its own
	assert.InDelta(t, 1.0, NormalizedMutualInformation(
		NewLabels(column("", "", "b", "b")), present("p", "p", "q", "q")), 1e-12)
}

func TestEncodeTarget(t *testing.T) {
	tests := []struct {
		name   string
		target Column
		want   Encoding
	}{
		{"numeric", col("y", profile.TypeNumerical, 1.5, 2, 3, 4), EncodingNumeric},
		{"two numeric values", col("y", profile.TypeNumerical, 0, 1, 1, 0), EncodingBinary},
		{"boolean", col("y", profile.TypeBoolean, "yes", "no", "Yes"), EncodingBinary},
		{"two labels", col("y", profile.TypeCategorical, "churn", "stay", nil), EncodingBinary},
		{"many labels", col("y", profile.TypeCategorical, "a", "b", "c"), EncodingCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeTarget(tt.target).Encoding)
		})
	}

	enc := EncodeTarget(col("y", profile.TypeCategorical, "stay", "churn", nil, "stay"))
	assert.Equal(t, []float64{1, 0, 0, 1}, enc.Series.Values)
	assert.Equal(t, []bool{true, true, false, true}, enc.Series.Valid)

	enc = EncodeTarget(col("y", profile.TypeBoolean, "Yes", "no", true, nil))
	assert.Equal(t, []float64{1, 0, 1, 0}, enc.Series.Values)
	assert.Equal(t, []bool{true, true, true, false}, enc.Series.Valid)
}

func TestScoreNumericTarget(t *testing.T) {
	target := col("price", profile.TypeNumerical, 10, 20, 30, 40, 50, 60)
	features := []Column{
		col("noise", profile.TypeNumerical, 3, 1, 4, 1, 5, 9),
		col("size", profile.TypeNumerical, 1, 2, 3, 4, 5, 6),
		col("price", profile.TypeNumerical, 10, 20, 30, 40, 50, 60),
		col("region", profile.TypeCategorical, "n", "n", "n", "s", "s", "s"),
		col("created", profile.TypeDatetime, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"),
		col("notes", profile.TypeText, "a", "b", "c", "d", "e", "f"),
	}

	got := Score(target, features)
	require.Len(t, got, 3)

	assert.Equal(t, "size", got[0].Feature)
	assert.Equal(t, profile.MethodPearson, got[0].Method)
	assert.InDelta(t, 1.0, got[0].Score, 1e-12)

	assert.Equal(t, "region", got[1].Feature)
	assert.Equal(t, profile.MethodEtaSquared, got[1].Method)
	// group means 20 and 50 around 35: 6*225 / 1750
	assert.InDelta(t, 1350.0/1750.0, got[1].Score, 1e-12)

	assert.Equal(t, "noise", got[2].Feature)
	for i, fi := range got {
		assert.Equal(t, i+1, fi.Rank)
		assert.GreaterOrEqual(t, fi.Score, 0.0)
		assert.LessOrEqual(t, fi.Score, 1.0)
	}
}

func TestScoreCategoricalTarget(t *testing.T) {
	target := col("segment", profile.TypeCategorical, "a", "a", "b", "b", "c", "c")
	features := []Column{
		col("spend", profile.TypeNumerical, 1, 1, 5, 5, 9, 9),
		col("tier", profile.TypeCategorical, "x", "x", "y", "y", "z", "z"),
		col("flag", profile.TypeBoolean, true, false, true, false, true, false),
	}

	got := Score(target, features)
	require.Len(t, got, 3)

	byName := map[string]profile.FeatureImportance{}
	for _, fi := range got {
		byName[fi.Feature] = fi
	}
	assert.Equal(t, profile.MethodEtaSquared, byName["spend"].Method)
	assert.InDelta(t, 1.0, byName["spend"].Score, 1e-12)
	assert.Equal(t, profile.MethodMutualInformation, byName["tier"].Method)
	assert.InDelta(t, 1.0, byName["tier"].Score, 1e-12)
	assert.Equal(t, profile.MethodMutualInformation, byName["flag"].Method)
	assert.InDelta(t, 0.0, byName["flag"].Score, 1e-12)

	// equal scores keep input order
	assert.Equal(t, "spend", got[0].Feature)
	assert.Equal(t, "tier", got[1].Feature)
	assert.Equal(t, "flag", got[2].Feature)
}

func TestScoreIsDeterministic(t *testing.T) {
	target := col("y", profile.TypeCategorical, "p", "q", "p", "r", "q", "p", "r", "r")
	features := []Column{
		col("f1", profile.TypeCategorical, "u", "v", "u", "w", "v", "u", "v", "w"),
		col("f2", profile.TypeNumerical, 1.1, 2.3, 0.7, 9.4, 2.2, 1.0, 8.8, 9.9),
	}

	first := Score(target, features)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(target, features))
	}
}
