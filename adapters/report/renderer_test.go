package report

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"goprofile/app"
	"goprofile/domain/core"
	"goprofile/domain/profile"
	"goprofile/internal"
	"goprofile/internal/testkit"
)

func sampleReport(t *testing.T) *profile.Report {
	t.Helper()
	config := testkit.DefaultShoppingConfig()
	config.CustomerCount = 60
	ds := testkit.NewShoppingDataGenerator(config).Generate()

	svc := app.NewProfileService(internal.NewLogger(internal.LogLevelError), profile.Options{})
	report, err := svc.Analyze(context.Background(), ds, profile.Options{Target: "churned", TopN: 3})
	require.NoError(t, err)
	return report
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatJSON,
		"JSON":     FormatJSON,
		"yml":      FormatYAML,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		" html ":   FormatHTML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.True(t, stderrors.Is(err, core.ErrUnsupportedFormat))
}

func TestRenderJSON(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, report, "json"))

	var decoded struct {
		ID       string `json:"id"`
		Features []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"features"`
		Matrix struct {
			Columns []string    `json:"columns"`
			Values  [][]float64 `json:"values"`
		} `json:"correlation_matrix"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, report.ID.String(), decoded.ID)
	require.Len(t, decoded.Features, len(report.Features))
	for i, f := range report.Features {
		assert.Equal(t, f.Info().Name, decoded.Features[i].Name)
		assert.Equal(t, string(f.Kind()), decoded.Features[i].Kind)
	}
	assert.Len(t, decoded.Matrix.Values, len(decoded.Matrix.Columns))
}

func TestRenderYAML(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, report, "yaml"))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	features, ok := decoded["features"].([]interface{})
	require.True(t, ok)
	assert.Len(t, features, len(report.Features))

	first, ok := features[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, report.Features[0].Info().Name, first["name"])
	assert.Contains(t, first, "kind")
}

func TestRenderMarkdownAndHTMLContainEveryFeature(t *testing.T) {
	report := sampleReport(t)

	var md, page bytes.Buffer
	require.NoError(t, NewRenderer().Render(&md, report, "markdown"))
	require.NoError(t, NewRenderer().Render(&page, report, "html"))

	assert.True(t, strings.HasPrefix(md.String(), "# Profile: shopping_customers"))
	assert.Contains(t, md.String(), "## Relevance to `churned`")
	assert.Contains(t, page.String(), "<html")
	assert.Contains(t, page.String(), "<table>")
	for _, f := range report.Features {
		name := f.Info().Name
		assert.Contains(t, md.String(), "### "+name)
		assert.Contains(t, page.String(), name)
	}
}

func TestRenderUnsupported(t *testing.T) {
	err := NewRenderer().Render(&bytes.Buffer{}, &profile.Report{}, "pdf")
	assert.True(t, stderrors.Is(err, core.ErrUnsupportedFormat))
}

func TestCellEscapesTableSyntax(t *testing.T) {
	assert.Equal(t, "a/b c", cell("a|b\nc"))
}
