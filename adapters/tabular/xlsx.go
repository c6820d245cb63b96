package tabular

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"goprofile/domain/core"
	"goprofile/domain/dataset"
)

// ReadXLSX decodes the first worksheet of a workbook
func ReadXLSX(ctx context.Context, r io.Reader) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return fromRows(ctx, rows)
}
