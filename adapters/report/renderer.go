package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"

	"goprofile/domain/core"
	"goprofile/domain/profile"
)

// Format names an output encoding
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats in help-text order
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name or common alias
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", core.NewUnsupportedFormatError(fmt.Sprintf("output %q", s))
}

// ContentType is the MIME type served for f
func ContentType(f Format) string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/json"
}

// Renderer writes reports in every supported format
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes report to w in the named format
func (r *Renderer) Render(w io.Writer, report *profile.Report, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatMarkdown:
		if _, err := io.WriteString(w, Markdown(report)); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	case FormatHTML:
		if _, err := w.Write(HTML(report)); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	return nil
}

// HTML renders the markdown report as a standalone page
func HTML(report *profile.Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title(report),
	})
	return markdown.ToHTML([]byte(Markdown(report)), p, renderer)
}

func title(report *profile.Report) string {
	if report.DatasetName != "" {
		return "Profile: " + report.DatasetName
	}
	return "Dataset profile"
}
