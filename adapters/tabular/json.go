package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"goprofile/domain/dataset"
)

// ReadJSON decodes {"name": ..., "columns": [{"name": ..., "values": [...]}]}.
// A missing row_count is taken from the first column, and string cells that
// are missing tokens become missing values.
func ReadJSON(r io.Reader) (*dataset.Dataset, error) {
	var ds dataset.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if ds.RowCount == 0 && len(ds.Columns) > 0 {
		ds.RowCount = len(ds.Columns[0].Values)
	}
	for c := range ds.Columns {
		values := ds.Columns[c].Values
		for i, v := range values {
			if v.Type == dataset.ValueTypeString {
				if _, ok := MissingTokens[strings.ToLower(strings.TrimSpace(v.Str))]; ok {
					values[i] = dataset.NewMissingValue()
				}
			}
		}
	}
	return &ds, nil
}
