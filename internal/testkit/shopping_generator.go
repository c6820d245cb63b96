package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"goprofile/domain/dataset"
)

// ShoppingGeneratorConfig configures the shopping data generator
type ShoppingGeneratorConfig struct {
	CustomerCount  int       `json:"customer_count"`
	MissingRate    float64   `json:"missing_rate"`   // share of blank risk scores
	DuplicateRate  float64   `json:"duplicate_rate"` // share of rows repeating the previous row
	ChurnRateBase  float64   `json:"churn_rate_base"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Seed           int64     `json:"seed"`
	IncludeReviews bool      `json:"include_reviews"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		CustomerCount:  500,
		MissingRate:    0.2,
		DuplicateRate:  0.02,
		ChurnRateBase:  0.25,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:           42,
		IncludeReviews: true,
	}
}

// ShoppingDataGenerator generates a customer table with known structure:
// spend tracks order count, churn falls with tenure, loyalty tier derives from
// tenure, noise columns are independent and deprecated_field is constant.
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// ShoppingColumns lists the generated columns in order
var ShoppingColumns = []string{
	"customer_id", "country", "signup_channel", "marketing_opt_in", "signup_date",
	"tenure_days", "orders", "total_spend", "risk_score", "loyalty_tier",
	"random_noise_1", "random_noise_2", "deprecated_field", "review", "churned",
}

// Generate builds the dataset. The same seed always yields the same table.
func (g *ShoppingDataGenerator) Generate() *dataset.Dataset {
	rows := make([][]interface{}, 0, g.config.CustomerCount)
	for i := 0; i < g.config.CustomerCount; i++ {
		if i > 0 && g.rng.Float64() < g.config.DuplicateRate {
			rows = append(rows, rows[len(rows)-1])
			continue
		}
		rows = append(rows, g.customerRow(i))
	}

	columns := make([]dataset.Column, len(ShoppingColumns))
	for c, name := range ShoppingColumns {
		raw := make([]interface{}, len(rows))
		for r := range rows {
			raw[r] = rows[r][c]
		}
		columns[c] = dataset.NewColumn(name, raw...)
	}
	if !g.config.IncludeReviews {
		columns = append(columns[:13], columns[14:]...)
	}
	return dataset.New("shopping_customers", columns...)
}

func (g *ShoppingDataGenerator) customerRow(i int) []interface{} {
	span := g.config.EndDate.Sub(g.config.StartDate)
	signup := g.config.StartDate.Add(time.Duration(g.rng.Int63n(int64(span))))
	tenure := math.Round(g.config.EndDate.Sub(signup).Hours()/24*10) / 10

	orders := int(math.Max(0, math.Round(tenure/60+g.rng.NormFloat64())))
	// lognormal basket size keeps spend right-skewed with a long tail
	spend := 0.0
	for o := 0; o < orders; o++ {
		spend += math.Exp(3.5 + 0.6*g.rng.NormFloat64())
	}
	spend = math.Round(spend*100) / 100

	var risk interface{}
	if g.rng.Float64() >= g.config.MissingRate {
		risk = math.Round(g.rng.Float64()*1000) / 1000
	}

	var tier interface{}
	switch {
	case tenure > 180:
		tier = "gold"
	case tenure > 90:
		tier = "silver"
	case tenure > 30:
		tier = "bronze"
	}

	churnP := g.config.ChurnRateBase * (1.5 - math.Min(tenure, 365)/365)
	churned := "no"
	if g.rng.Float64() < churnP {
		churned = "yes"
	}

	var review interface{}
	if g.rng.Float64() < 0.7 {
		review = g.randomReview()
	}

	return []interface{}{
		fmt.Sprintf("customer_%04d", i+1),
		g.pick([]string{"US", "UK", "DE", "FR", "CA"}),
		g.pick([]string{"organic", "paid_search", "referral", "social"}),
		g.rng.Float64() < 0.6,
		signup.Format("2006-01-02"),
		tenure,
		orders,
		spend,
		risk,
		tier,
		math.Round(g.rng.Float64()*10000) / 100,
		math.Round(g.rng.NormFloat64()*1000) / 100,
		0,
		review,
		churned,
	}
}

func (g *ShoppingDataGenerator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

var reviewOpeners = []string{
	"Delivery arrived on time and the packaging was intact",
	"The product quality was lower than the photos suggested",
	"Customer support resolved my billing question quickly",
	"Checkout kept failing on mobile so I ordered from desktop",
}

var reviewClosers = []string{
	"and I would order again.",
	"but the price felt a little high for what it is.",
	"so I left four stars overall.",
	"which made the whole experience frustrating.",
}

func (g *ShoppingDataGenerator) randomReview() string {
	return g.pick(reviewOpeners) + ", " + g.pick(reviewClosers)
}
