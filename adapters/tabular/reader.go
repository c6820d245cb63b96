package tabular

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"goprofile/domain/core"
	"goprofile/domain/dataset"
	"goprofile/internal"
)

// Format names a supported input encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// MissingTokens are cell texts read as missing, compared case-insensitively
var MissingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// Reader decodes CSV, TSV, XLSX and JSON into a dataset
type Reader struct {
	logger *internal.Logger
}

// NewReader creates a reader. A nil logger uses the default logger.
func NewReader(logger *internal.Logger) *Reader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Reader{logger: logger.With("tabular")}
}

// DetectFormat maps a filename extension to a Format
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", core.NewUnsupportedFormatError(fmt.Sprintf("file %q", filepath.Base(filename)))
}

// Read decodes r using the format implied by filename. The dataset is named
// after the file without its extension.
func (rd *Reader) Read(ctx context.Context, filename string, r io.Reader) (*dataset.Dataset, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var ds *dataset.Dataset
	switch format {
	case FormatCSV:
		ds, err = ReadCSV(ctx, r, 0)
	case FormatTSV:
		ds, err = ReadCSV(ctx, r, '\t')
	case FormatXLSX:
		ds, err = ReadXLSX(ctx, r)
	case FormatJSON:
		ds, err = ReadJSON(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}

	if ds.Name == "" {
		base := filepath.Base(filename)
		ds.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	rd.logger.Debug("read %s (%s): %d columns, %d rows in %s",
		filepath.Base(filename), format, len(ds.Columns), ds.RowCount, time.Since(start))
	return ds, nil
}

// Cell converts one text cell, mapping missing tokens to a missing value
func Cell(raw string) dataset.Value {
	s := strings.TrimSpace(raw)
	if _, ok := MissingTokens[strings.ToLower(s)]; ok {
		return dataset.NewMissingValue()
	}
	return dataset.NewStringValue(s)
}

// fromRows turns a header row plus data rows into columns. Short rows are
// padded with missing values and cells past the header are dropped.
func fromRows(ctx context.Context, rows [][]string) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", core.ErrInvalidInput)
	}

	header := rows[0]
	columns := make([]dataset.Column, len(header))
	for j, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		columns[j] = dataset.Column{Name: name, Values: make([]dataset.Value, 0, len(rows)-1)}
	}

	for i, row := range rows[1:] {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for j := range columns {
			v := dataset.NewMissingValue()
			if j < len(row) {
				v = Cell(row[j])
			}
			columns[j].Values = append(columns[j].Values, v)
		}
	}

	return dataset.New("", columns...), nil
}
