package summary

import (
	"math"

	"goprofile/adapters/stats/quality"
	"goprofile/domain/profile"
)

// Aggregate folds per-column statistics and the duplicate-row count into the
// dataset summary. It performs no analysis of its own.
func Aggregate(rows int, features []profile.FeatureStatistic, dups quality.DuplicateResult) profile.DatasetSummary {
	s := profile.DatasetSummary{
		RowCount:      rows,
		ColumnCount:   len(features),
		DuplicateRows: dups.Rows,
		DuplicatePct:  dups.Pct,
		ColumnQuality: make([]profile.ColumnQuality, 0, len(features)),
	}

	for _, fs := range features {
		info := fs.Info()
		s.TypeCounts.Add(info.Type)
		s.MissingCells += info.MissingCount
		s.ColumnQuality = append(s.ColumnQuality, profile.ColumnQuality{
			Column: info.Name,
			Flags:  Flags(fs),
		})
	}

	cells := rows * len(features)
	if cells > 0 {
		s.MissingPct = float64(s.MissingCells) / float64(cells) * 100
		s.Completeness = 1 - float64(s.MissingCells)/float64(cells)
	} else {
		s.Completeness = 1
	}

	s.UniquenessScore = 1 - s.DuplicatePct/100
	s.QualityScore = math.Max(0, 1-s.MissingPct/100-s.DuplicatePct/200)
	return s
}
