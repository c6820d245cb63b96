package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"goprofile/domain/dataset"
)

// candidateDelimiters are tried by SniffDelimiter; ties go to the earlier one
var candidateDelimiters = []rune{',', ';', '\t'}

// SniffDelimiter picks the candidate that occurs most often, outside quotes,
// on the first line of data. Defaults to comma.
func SniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := make(map[rune]int, len(candidateDelimiters))
	quoted := false
	for _, r := range string(line) {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// ReadCSV decodes delimited text. A zero delim is sniffed from the header.
func ReadCSV(ctx context.Context, r io.Reader, delim rune) (*dataset.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if delim == 0 {
		delim = SniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = delim != '\t'

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return fromRows(ctx, rows)
}
