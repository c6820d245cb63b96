package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"goprofile/domain/dataset"
)

// BooleanTokens is the fixed, case-insensitive boolean vocabulary
var BooleanTokens = map[string]bool{
	"true":  true,
	"false": false,
	"1":     true,
	"0":     false,
	"yes":   true,
	"no":    false,
}

// A date must start with a 4-digit year or end its date part with one,
// separated by '-' or '/'.
var datePattern = regexp.MustCompile(`^(\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{4})`)

// timestampLayouts are tried in order after datePattern matches
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2-1-2006",
}

var currencySymbols = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}

// ParseNumber returns the numeric reading of v. Numeric values pass through,
// strings are parsed strictly first and then leniently (currency, percent,
// thousands separators, accounting negatives). Booleans are not numbers.
func ParseNumber(v dataset.Value) (float64, bool) {
	switch v.Type {
	case dataset.ValueTypeNumeric:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return v.Num, true
	case dataset.ValueTypeString:
		return ParseNumericString(v.Str)
	}
	return 0, false
}

// ParseNumericString attempts to parse s as a finite number
func ParseNumericString(s string) (float64, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, false
	}

	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return finite(f)
	}

	// Handle parentheses for negative numbers: (123) -> -123
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range currencySymbols {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "%")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeToken lower-cases and trims a value representation
func NormalizeToken(v dataset.Value) string {
	return strings.ToLower(strings.TrimSpace(v.String()))
}

// IsBooleanToken reports whether v belongs to the boolean vocabulary
func IsBooleanToken(v dataset.Value) bool {
	if v.IsMissing() {
		return false
	}
	_, ok := BooleanTokens[NormalizeToken(v)]
	return ok
}

// ParseBoolean returns the boolean reading of v
func ParseBoolean(v dataset.Value) (bool, bool) {
	if v.Type == dataset.ValueTypeBoolean {
		return v.Bool, true
	}
	if v.IsMissing() {
		return false, false
	}
	b, ok := BooleanTokens[NormalizeToken(v)]
	return b, ok
}

// ParseTimestamp parses v as a date. The value must match the
// year/date-separator pattern before any layout is tried.
func ParseTimestamp(v dataset.Value) (time.Time, bool) {
	if v.Type != dataset.ValueTypeString {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Str)
	if !datePattern.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NumericSlice extracts the parseable numbers of values together with a
// per-row validity mask
func NumericSlice(values []dataset.Value) ([]float64, []bool) {
	nums := make([]float64, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		if f, ok := ParseNumber(v); ok {
			nums[i] = f
			valid[i] = true
		}
	}
	return nums, valid
}
