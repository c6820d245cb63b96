package report

import (
	"fmt"
	"strings"

	"goprofile/domain/profile"
)

// Markdown renders a human-readable summary of report
func Markdown(report *profile.Report) string {
	var b strings.Builder
	s := report.Summary

	fmt.Fprintf(&b, "# %s\n\n", title(report))
	fmt.Fprintf(&b, "Report `%s`\n\n", report.ID)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rows | %d |\n", s.RowCount)
	fmt.Fprintf(&b, "| Columns | %d |\n", s.ColumnCount)
	fmt.Fprintf(&b, "| Missing cells | %d (%.2f%%) |\n", s.MissingCells, s.MissingPct)
	fmt.Fprintf(&b, "| Completeness | %.4f |\n", s.Completeness)
	fmt.Fprintf(&b, "| Duplicate rows | %d (%.2f%%) |\n", s.DuplicateRows, s.DuplicatePct)
	fmt.Fprintf(&b, "| Uniqueness score | %.4f |\n", s.UniquenessScore)
	fmt.Fprintf(&b, "| Quality score | %.4f |\n", s.QualityScore)
	b.WriteString("\n")

	var counts []string
	for _, t := range profile.AllSemanticTypes {
		if n := s.TypeCounts.Get(t); n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", t, n))
		}
	}
	if len(counts) > 0 {
		fmt.Fprintf(&b, "Types: %s\n\n", strings.Join(counts, ", "))
	}

	b.WriteString("## Features\n\n")
	for _, f := range report.Features {
		writeFeature(&b, f)
	}

	if len(report.Correlations) > 0 {
		b.WriteString("## Correlations\n\n")
		b.WriteString("| Feature 1 | Feature 2 | r | Strength | n |\n|---|---|---|---|---|\n")
		for _, p := range report.Correlations {
			fmt.Fprintf(&b, "| %s | %s | %.4f | %s | %d |\n",
				cell(p.Feature1), cell(p.Feature2), p.Coefficient, p.Strength, p.SampleSize)
		}
		b.WriteString("\n")
	}

	if len(report.TargetRelevance) > 0 {
		fmt.Fprintf(&b, "## Relevance to `%s`\n\n", report.Target)
		b.WriteString("| Rank | Feature | Method | Score |\n|---|---|---|---|\n")
		for _, fi := range report.TargetRelevance {
			fmt.Fprintf(&b, "| %d | %s | %s | %.4f |\n", fi.Rank, cell(fi.Feature), fi.Method, fi.Score)
		}
		b.WriteString("\n")
	}

	var flagged []string
	for _, cq := range s.ColumnQuality {
		if len(cq.Flags) == 0 {
			continue
		}
		names := make([]string, len(cq.Flags))
		for i, f := range cq.Flags {
			names[i] = string(f)
		}
		flagged = append(flagged, fmt.Sprintf("- **%s**: %s", cell(cq.Column), strings.Join(names, ", ")))
	}
	if len(flagged) > 0 {
		b.WriteString("## Data quality\n\n")
		b.WriteString(strings.Join(flagged, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func writeFeature(b *strings.Builder, f profile.FeatureStatistic) {
	info := f.Info()
	fmt.Fprintf(b, "### %s\n\n", cell(info.Name))
	fmt.Fprintf(b, "%s, %d valid, %d missing (%.2f%%)\n\n", info.Type, info.ValidCount, info.MissingCount, info.MissingPct)

	switch s := f.(type) {
	case profile.NumericStatistic:
		if s.Summary == nil {
			b.WriteString("No parseable values.\n\n")
			return
		}
		n := s.Summary
		b.WriteString("| mean | std | min | q1 | median | q3 | max | skew | kurtosis | outliers |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
		fmt.Fprintf(b, "| %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.3f | %.3f | %d (%.1f%%) |\n\n",
			n.Mean, n.Std, n.Min, n.Q1, n.Median, n.Q3, n.Max, n.Skewness, n.Kurtosis, n.OutlierCount, n.OutlierPct)
		if len(n.Transforms) > 0 {
			names := make([]string, len(n.Transforms))
			for i, t := range n.Transforms {
				names[i] = string(t)
			}
			fmt.Fprintf(b, "Suggested transforms: %s\n\n", strings.Join(names, ", "))
		}
	case profile.CategoricalStatistic:
		fmt.Fprintf(b, "%d unique, entropy %.3f bits\n\n", s.UniqueCount, s.Entropy)
		if len(s.TopValues) == 0 {
			return
		}
		b.WriteString("| Value | Count | % |\n|---|---|---|\n")
		for _, tv := range s.TopValues {
			fmt.Fprintf(b, "| %s | %d | %.2f |\n", cell(tv.Value), tv.Count, tv.Pct)
		}
		b.WriteString("\n")
	}
}

// cell keeps user text from breaking table rows
func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
