package profile

import (
	"encoding/json"

	"goprofile/domain/core"
)

// SemanticType represents the automatically detected column type
type SemanticType string

const (
	TypeNumerical   SemanticType = "numerical"
	TypeCategorical SemanticType = "categorical"
	TypeDatetime    SemanticType = "datetime"
	TypeText        SemanticType = "text"
	TypeBoolean     SemanticType = "boolean"
)

// AllSemanticTypes lists every type in reporting order.
var AllSemanticTypes = []SemanticType{
	TypeNumerical,
	TypeCategorical,
	TypeDatetime,
	TypeText,
	TypeBoolean,
}

// StatisticKind discriminates the FeatureStatistic variants
type StatisticKind string

const (
	KindNumeric     StatisticKind = "numeric"
	KindCategorical StatisticKind = "categorical"
)

// FeatureStatistic is the per-column result. It is implemented only by
// NumericStatistic and CategoricalStatistic.
type FeatureStatistic interface {
	Info() ColumnInfo
	Kind() StatisticKind
	isFeatureStatistic()
}

// ColumnInfo holds the fields shared by every variant
type ColumnInfo struct {
	Name         string       `json:"name" yaml:"name"`
	Type         SemanticType `json:"type" yaml:"type"`
	ValidCount   int          `json:"valid_count" yaml:"valid_count"`
	MissingCount int          `json:"missing_count" yaml:"missing_count"`
	MissingPct   float64      `json:"missing_pct" yaml:"missing_pct"` // 0-100
}

// Transform is a recommended preprocessing step for a skewed or noisy column
type Transform string

const (
	TransformLog       Transform = "log"
	TransformSqrt      Transform = "sqrt"
	TransformBoxCox    Transform = "box_cox"
	TransformWinsorize Transform = "winsorize"
)

// NumericSummary contains descriptive statistics over the parseable values
type NumericSummary struct {
	Mean         float64     `json:"mean" yaml:"mean"`
	Median       float64     `json:"median" yaml:"median"`
	Std          float64     `json:"std" yaml:"std"` // population
	Min          float64     `json:"min" yaml:"min"`
	Max          float64     `json:"max" yaml:"max"`
	Q1           float64     `json:"q1" yaml:"q1"`
	Q3           float64     `json:"q3" yaml:"q3"`
	IQR          float64     `json:"iqr" yaml:"iqr"`
	Skewness     float64     `json:"skewness" yaml:"skewness"`
	Kurtosis     float64     `json:"kurtosis" yaml:"kurtosis"` // excess
	LowerFence   float64     `json:"lower_fence" yaml:"lower_fence"`
	UpperFence   float64     `json:"upper_fence" yaml:"upper_fence"`
	OutlierCount int         `json:"outlier_count" yaml:"outlier_count"`
	OutlierPct   float64     `json:"outlier_pct" yaml:"outlier_pct"`
	Transforms   []Transform `json:"recommended_transforms" yaml:"recommended_transforms"`
}

// NumericStatistic is the variant for Numerical columns. Summary is nil when
// the column has no parseable values.
type NumericStatistic struct {
	ColumnInfo
	Summary *NumericSummary
}

func (s NumericStatistic) Info() ColumnInfo    { return s.ColumnInfo }
func (s NumericStatistic) Kind() StatisticKind { return KindNumeric }
func (NumericStatistic) isFeatureStatistic()   {}

// ValueCount represents a value and its frequency
type ValueCount struct {
	Value string  `json:"value" yaml:"value"`
	Count int     `json:"count" yaml:"count"`
	Pct   float64 `json:"pct" yaml:"pct"` // of non-missing values, 0-100
}

// CategoricalStatistic is the variant for every non-numerical column
type CategoricalStatistic struct {
	ColumnInfo
	UniqueCount int
	TopValues   []ValueCount
	Entropy     float64 // Shannon entropy in bits
}

func (s CategoricalStatistic) Info() ColumnInfo    { return s.ColumnInfo }
func (s CategoricalStatistic) Kind() StatisticKind { return KindCategorical }
func (CategoricalStatistic) isFeatureStatistic()   {}

type numericWire struct {
	Kind StatisticKind `json:"kind" yaml:"kind"`

	ColumnInfo `yaml:",inline"`

	Summary *NumericSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type categoricalWire struct {
	Kind StatisticKind `json:"kind" yaml:"kind"`

	ColumnInfo `yaml:",inline"`

	UniqueCount int          `json:"unique_count" yaml:"unique_count"`
	TopValues   []ValueCount `json:"top_values" yaml:"top_values"`
	Entropy     float64      `json:"entropy" yaml:"entropy"`
}

// MarshalJSON adds the kind discriminator
func (s NumericStatistic) MarshalJSON() ([]byte, error) {
	return json.Marshal(numericWire{Kind: KindNumeric, ColumnInfo: s.ColumnInfo, Summary: s.Summary})
}

// MarshalYAML adds the kind discriminator
func (s NumericStatistic) MarshalYAML() (interface{}, error) {
	return numericWire{Kind: KindNumeric, ColumnInfo: s.ColumnInfo, Summary: s.Summary}, nil
}

// MarshalJSON adds the kind discriminator
func (s CategoricalStatistic) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// MarshalYAML adds the kind discriminator
func (s CategoricalStatistic) MarshalYAML() (interface{}, error) {
	return s.wire(), nil
}

func (s CategoricalStatistic) wire() categoricalWire {
	top := s.TopValues
	if top == nil {
		top = []ValueCount{}
	}
	return categoricalWire{
		Kind:        KindCategorical,
		ColumnInfo:  s.ColumnInfo,
		UniqueCount: s.UniqueCount,
		TopValues:   top,
		Entropy:     s.Entropy,
	}
}

// Strength buckets |r|
type Strength string

const (
	StrengthVeryStrong Strength = "very_strong"
	StrengthStrong     Strength = "strong"
	StrengthModerate   Strength = "moderate"
	StrengthWeak       Strength = "weak"
)

// CorrelationPair is one numeric x numeric Pearson result, Feature1 before
// Feature2 in column order
type CorrelationPair struct {
	Feature1    string   `json:"feature1" yaml:"feature1"`
	Feature2    string   `json:"feature2" yaml:"feature2"`
	Coefficient float64  `json:"coefficient" yaml:"coefficient"`
	Strength    Strength `json:"strength" yaml:"strength"`
	SampleSize  int      `json:"sample_size" yaml:"sample_size"` // rows where both values are valid
}

// RelevanceMethod names the statistic used to score a feature
type RelevanceMethod string

const (
	MethodPearson           RelevanceMethod = "pearson"
	MethodEtaSquared        RelevanceMethod = "eta_squared"
	MethodMutualInformation RelevanceMethod = "mutual_information"
)

// FeatureImportance is one feature's association with the target
type FeatureImportance struct {
	Feature string          `json:"feature" yaml:"feature"`
	Method  RelevanceMethod `json:"method" yaml:"method"`
	Score   float64         `json:"score" yaml:"score"` // 0-1
	Rank    int             `json:"rank" yaml:"rank"`
}

// TypeCounts tallies columns per semantic type
type TypeCounts struct {
	Numerical   int `json:"numerical" yaml:"numerical"`
	Categorical int `json:"categorical" yaml:"categorical"`
	Datetime    int `json:"datetime" yaml:"datetime"`
	Text        int `json:"text" yaml:"text"`
	Boolean     int `json:"boolean" yaml:"boolean"`
}

// Add increments the counter for t.
func (c *TypeCounts) Add(t SemanticType) {
	switch t {
	case TypeNumerical:
		c.Numerical++
	case TypeCategorical:
		c.Categorical++
	case TypeDatetime:
		c.Datetime++
	case TypeText:
		c.Text++
	case TypeBoolean:
		c.Boolean++
	}
}

// Get returns the counter for t.
func (c TypeCounts) Get(t SemanticType) int {
	switch t {
	case TypeNumerical:
		return c.Numerical
	case TypeCategorical:
		return c.Categorical
	case TypeDatetime:
		return c.Datetime
	case TypeText:
		return c.Text
	case TypeBoolean:
		return c.Boolean
	}
	return 0
}

// QualityFlag names a column-level data quality issue
type QualityFlag string

const (
	FlagHighMissingRate QualityFlag = "high_missing_rate"
	FlagConstant        QualityFlag = "constant"
	FlagHighCardinality QualityFlag = "high_cardinality"
	FlagHasOutliers     QualityFlag = "has_outliers"
)

// ColumnQuality lists the flags raised for one column
type ColumnQuality struct {
	Column string        `json:"column" yaml:"column"`
	Flags  []QualityFlag `json:"flags" yaml:"flags"`
}

// DatasetSummary is the dataset-level fold of all column results
type DatasetSummary struct {
	RowCount        int             `json:"row_count" yaml:"row_count"`
	ColumnCount     int             `json:"column_count" yaml:"column_count"`
	TypeCounts      TypeCounts      `json:"type_counts" yaml:"type_counts"`
	MissingCells    int             `json:"missing_cells" yaml:"missing_cells"`
	MissingPct      float64         `json:"missing_pct" yaml:"missing_pct"`
	Completeness    float64         `json:"completeness" yaml:"completeness"` // 0-1
	DuplicateRows   int             `json:"duplicate_rows" yaml:"duplicate_rows"`
	DuplicatePct    float64         `json:"duplicate_pct" yaml:"duplicate_pct"`
	UniquenessScore float64         `json:"uniqueness_score" yaml:"uniqueness_score"`
	QualityScore    float64         `json:"quality_score" yaml:"quality_score"`
	ColumnQuality   []ColumnQuality `json:"column_quality" yaml:"column_quality"`
}

// Report is the complete output of one profiling run
type Report struct {
	ID              core.ReportID       `json:"id" yaml:"id"`
	DatasetName     string              `json:"dataset_name,omitempty" yaml:"dataset_name,omitempty"`
	Target          string              `json:"target,omitempty" yaml:"target,omitempty"`
	Summary         DatasetSummary      `json:"summary" yaml:"summary"`
	Features        []FeatureStatistic  `json:"features" yaml:"features"`
	Correlation     *CorrelationMatrix  `json:"correlation_matrix" yaml:"correlation_matrix"`
	Correlations    []CorrelationPair   `json:"correlations" yaml:"correlations"`
	TargetRelevance []FeatureImportance `json:"target_relevance,omitempty" yaml:"target_relevance,omitempty"`
}

// Feature returns the statistic for the named column.
func (r *Report) Feature(name string) (FeatureStatistic, bool) {
	for _, f := range r.Features {
		if f.Info().Name == name {
			return f, true
		}
	}
	return nil, false
}

// Options tunes a profiling run
type Options struct {
	Target  string // optional target column for relevance scoring
	TopN    int    // frequent values per categorical column; <= 0 uses the default
	Workers int    // per-column parallelism; <= 0 uses the CPU count
}
