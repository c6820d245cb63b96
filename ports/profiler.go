package ports

import (
	"context"

	"goprofile/domain/dataset"
	"goprofile/domain/profile"
)

// ProfilerPort analyzes a dataset into a profile report
type ProfilerPort interface {
	Analyze(ctx context.Context, ds *dataset.Dataset, opts profile.Options) (*profile.Report, error)
}
