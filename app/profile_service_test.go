package app

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"goprofile/domain/core"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
	"goprofile/internal"
	"goprofile/internal/errors"
	"goprofile/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *ProfileService {
	return NewProfileService(internal.NewLogger(internal.LogLevelError), profile.Options{})
}

func sampleDataset(rows int) *dataset.Dataset {
	x := make([]float64, rows)
	y := make([]float64, rows)
	labels := make([]string, rows)
	flags := make([]interface{}, rows)
	for i := 0; i < rows; i++ {
		x[i] = float64(i)
		y[i] = 2*float64(i) + 1
		labels[i] = []string{"a", "b", "c"}[i%3]
		flags[i] = i%2 == 0
	}
	return testkit.NewBuilder("sample").
		Floats("x", x...).
		Floats("y", y...).
		Strings("label", labels...).
		Column("flag", flags...).
		Column("const", testkit.Repeat(5, rows)...).
		Build()
}

func TestAnalyzeEndToEnd(t *testing.T) {
	report, err := newService().Analyze(context.Background(), sampleDataset(30), profile.Options{Target: "y"})
	require.NoError(t, err)

	require.Len(t, report.Features, 5)
	wantTypes := []profile.SemanticType{
		profile.TypeNumerical, profile.TypeNumerical, profile.TypeCategorical, profile.TypeBoolean, profile.TypeCategorical,
	}
	for i, f := range report.Features {
		assert.Equal(t, wantTypes[i], f.Info().Type, f.Info().Name)
	}
	assert.Equal(t, []string{"x", "y", "label", "flag", "const"}, func() []string {
		names := make([]string, len(report.Features))
		for i, f := range report.Features {
			names[i] = f.Info().Name
		}
		return names
	}())

	require.Len(t, report.Correlations, 1)
	assert.Equal(t, "x", report.Correlations[0].Feature1)
	assert.Equal(t, "y", report.Correlations[0].Feature2)
	assert.InDelta(t, 1.0, report.Correlations[0].Coefficient, 1e-12)
	assert.Equal(t, []string{"x", "y"}, report.Correlation.Columns())

	require.NotEmpty(t, report.TargetRelevance)
	assert.Equal(t, "x", report.TargetRelevance[0].Feature)
	assert.Equal(t, profile.MethodPearson, report.TargetRelevance[0].Method)
	assert.Equal(t, 1, report.TargetRelevance[0].Rank)
	for _, fi := range report.TargetRelevance {
		assert.NotEqual(t, "y", fi.Feature)
	}

	s := report.Summary
	assert.Equal(t, 30, s.RowCount)
	assert.Equal(t, 5, s.ColumnCount)
	assert.Equal(t, 1.0, s.Completeness)
	assert.Equal(t, 0, s.DuplicateRows)
	assert.Equal(t, profile.TypeCounts{Numerical: 2, Categorical: 2, Boolean: 1}, s.TypeCounts)

	_, err = core.ParseReportID(report.ID.String())
	assert.NoError(t, err)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	ds := sampleDataset(40)
	svc := newService()

	first, err := svc.Analyze(context.Background(), ds, profile.Options{Target: "label", Workers: 1})
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), ds, profile.Options{Target: "label", Workers: 8})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.ID, second.ID)

	other, err := svc.Analyze(context.Background(), ds, profile.Options{Target: "x"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestAnalyzeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		ds   *dataset.Dataset
		opts profile.Options
		want error
	}{
		{"nil dataset", nil, profile.Options{}, core.ErrNilDataset},
		{"no columns", dataset.New("empty"), profile.Options{}, core.ErrNoColumns},
		{"duplicate column", dataset.New("d", dataset.NewColumn("a", 1), dataset.NewColumn("a", 2)), profile.Options{}, core.ErrDuplicateColumn},
		{"empty name", dataset.New("d", dataset.NewColumn("", 1)), profile.Options{}, core.ErrEmptyColumnName},
		{"ragged", dataset.New("d", dataset.NewColumn("a", 1, 2), dataset.NewColumn("b", 1)), profile.Options{}, core.ErrRowCountMismatch},
		{"unknown target", sampleDataset(3), profile.Options{Target: "nope"}, core.ErrTargetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Analyze(context.Background(), tt.ds, tt.opts)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.want), err.Error())
			assert.True(t, stderrors.Is(err, core.ErrInvalidInput))
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService().Analyze(ctx, sampleDataset(30), profile.Options{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestAnalyzeZeroRows(t *testing.T) {
	ds := dataset.New("empty", dataset.NewColumn("a"), dataset.NewColumn("b"))

	report, err := newService().Analyze(context.Background(), ds, profile.Options{})
	require.NoError(t, err)
	assert.Len(t, report.Features, 2)
	assert.Equal(t, 1.0, report.Summary.Completeness)
	assert.Empty(t, report.Correlations)
}

func TestAnalyzeShoppingData(t *testing.T) {
	config := testkit.DefaultShoppingConfig()
	config.CustomerCount = 300
	ds := testkit.NewShoppingDataGenerator(config).Generate()

	report, err := newService().Analyze(context.Background(), ds, profile.Options{Target: "churned"})
	require.NoError(t, err)

	typeOf := func(name string) profile.SemanticType {
		f, ok := report.Feature(name)
		require.True(t, ok, name)
		return f.Info().Type
	}
	assert.Equal(t, profile.TypeCategorical, typeOf("customer_id"))
	assert.Equal(t, profile.TypeBoolean, typeOf("marketing_opt_in"))
	assert.Equal(t, profile.TypeDatetime, typeOf("signup_date"))
	assert.Equal(t, profile.TypeNumerical, typeOf("tenure_days"))
	assert.Equal(t, profile.TypeNumerical, typeOf("total_spend"))
	assert.Equal(t, profile.TypeText, typeOf("review"))
	assert.Equal(t, profile.TypeBoolean, typeOf("churned"))

	flags := map[string][]profile.QualityFlag{}
	for _, cq := range report.Summary.ColumnQuality {
		flags[cq.Column] = cq.Flags
	}
	assert.Contains(t, flags["deprecated_field"], profile.FlagConstant)
	assert.Contains(t, flags["customer_id"], profile.FlagHighCardinality)

	total := 0
	for _, typ := range profile.AllSemanticTypes {
		total += report.Summary.TypeCounts.Get(typ)
	}
	assert.Equal(t, len(ds.Columns), total)

	scored := map[string]bool{}
	for _, fi := range report.TargetRelevance {
		scored[fi.Feature] = true
		assert.GreaterOrEqual(t, fi.Score, 0.0)
		assert.LessOrEqual(t, fi.Score, 1.0)
	}
	assert.False(t, scored["churned"])
	assert.False(t, scored["signup_date"])
	assert.False(t, scored["review"])
	assert.True(t, scored["tenure_days"])
}

func TestInfer(t *testing.T) {
	decisions, err := newService().Infer(context.Background(), sampleDataset(30))
	require.NoError(t, err)
	require.Len(t, decisions, 5)
	assert.Equal(t, profile.TypeNumerical, decisions[0].Type)
	assert.Equal(t, "numeric_high_cardinality", decisions[0].Rule)
	assert.Equal(t, "boolean_tokens", decisions[3].Rule)

	_, err = newService().Infer(context.Background(), dataset.New("empty"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
