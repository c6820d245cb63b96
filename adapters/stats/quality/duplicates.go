package quality

import (
	"goprofile/domain/core"
	"goprofile/domain/dataset"
)

// DuplicateResult counts rows that repeat an earlier row exactly
type DuplicateResult struct {
	Rows int
	Pct  float64 // percentage of all rows, 0-100
}

// RowKey fingerprints row i across all columns. Missing cells compare equal
// to each other; values of different kinds never do, so 1 and "1" differ.
func RowKey(ds *dataset.Dataset, i int) core.Hash {
	h := core.NewHasher()
	for _, col := range ds.Columns {
		v := col.Values[i]
		if v.IsMissing() {
			h.WriteString(string(dataset.ValueTypeMissing))
			h.WriteString("")
			continue
		}
		h.WriteString(string(v.Type))
		h.WriteString(v.String())
	}
	return h.Sum()
}

// Duplicates counts rows identical to an earlier row. The first occurrence
// of each distinct row is not counted.
func Duplicates(ds *dataset.Dataset) DuplicateResult {
	if ds == nil || ds.RowCount == 0 || len(ds.Columns) == 0 {
		return DuplicateResult{}
	}

	seen := make(map[core.Hash]struct{}, ds.RowCount)
	dups := 0
	for i := 0; i < ds.RowCount; i++ {
		key := RowKey(ds, i)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}

	return DuplicateResult{
		Rows: dups,
		Pct:  float64(dups) / float64(ds.RowCount) * 100,
	}
}
