package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContentIDIsStable(t *testing.T) {
	h := NewHash([]byte("column-a|1|2|3"))

	first := NewContentID(h)
	second := NewContentID(h)
	other := NewContentID(NewHash([]byte("column-a|1|2|4")))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	parsed, err := uuid.Parse(first.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestHasherFieldBoundaries(t *testing.T) {
	a := NewHasher()
	a.WriteString("ab")
	a.WriteString("c")

	b := NewHasher()
	b.WriteString("a")
	b.WriteString("bc")

	assert.False(t, a.Sum().Equals(b.Sum()))
}

// TestParseReportID tests report ID parsing
func TestParseReportID(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{NewContentID(NewHash([]byte("x"))).String(), false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		_, err := ParseReportID(tt.input)
		if tt.hasError && err == nil {
			t.Errorf("ParseReportID(%q) expected error", tt.input)
		}
		if !tt.hasError && err != nil {
			t.Errorf("ParseReportID(%q) unexpected error: %v", tt.input, err)
		}
	}
}
