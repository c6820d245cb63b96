package ports

import (
	"context"
	"io"

	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// DatasetReaderPort decodes tabular input. The filename selects the format.
type DatasetReaderPort interface {
	Read(ctx context.Context, filename string, r io.Reader) (*dataset.Dataset, error)
}

// ReportRendererPort writes a report in one of the supported formats
type ReportRendererPort interface {
	Render(w io.Writer, report *profile.Report, format string) error
}
