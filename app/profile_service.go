package app

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"goprofile/adapters/datareadiness/inference"
	"goprofile/adapters/stats/correlation"
	"goprofile/adapters/stats/descriptive"
	"goprofile/adapters/stats/quality"
	"goprofile/adapters/stats/relevance"
	"goprofile/adapters/stats/summary"
	"goprofile/domain/core"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
	"goprofile/internal"
	"goprofile/internal/errors"
)

// ProfileService runs the full profiling pipeline over one dataset
type ProfileService struct {
	logger   *internal.Logger
	defaults profile.Options
}

// NewProfileService creates a profile service. Zero fields in defaults are
// filled per run: TopN from the descriptive default, Workers from the CPU count.
func NewProfileService(logger *internal.Logger, defaults profile.Options) *ProfileService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ProfileService{
		logger:   logger.With("profile"),
		defaults: defaults,
	}
}

// columnResult is what the per-column stage produces for one column
type columnResult struct {
	decision inference.Decision
	stat     profile.FeatureStatistic
}

// Analyze validates ds, profiles every column in parallel and then runs the
// cross-column stages. Features come back in input order.
func (s *ProfileService) Analyze(ctx context.Context, ds *dataset.Dataset, opts profile.Options) (*profile.Report, error) {
	opts = s.resolve(opts)

	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate dataset")
	}
	if opts.Target != "" && ds.ColumnIndex(opts.Target) < 0 {
		return nil, errors.Wrap(core.NewColumnError(core.ErrTargetNotFound, opts.Target), "validate target")
	}

	start := time.Now()
	results, err := s.profileColumns(ctx, ds, opts)
	if err != nil {
		return nil, errors.Wrap(err, "profile columns")
	}
	s.logger.Debug("profiled %d columns x %d rows with %d workers in %s",
		len(ds.Columns), ds.RowCount, opts.Workers, time.Since(start))

	features := make([]profile.FeatureStatistic, len(results))
	for i, r := range results {
		features[i] = r.stat
	}

	// join barrier: everything below reads all columns
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "profile canceled")
	}

	stageStart := time.Now()
	var series []correlation.Series
	for i, col := range ds.Columns {
		if results[i].decision.Type == profile.TypeNumerical {
			series = append(series, correlation.NewSeries(col.Name, col.Values))
		}
	}
	corr := correlation.Compute(series)
	s.logger.Debug("correlated %d numeric columns (%d pairs) in %s", len(series), len(corr.Pairs), time.Since(stageStart))

	var importance []profile.FeatureImportance
	if opts.Target != "" {
		stageStart = time.Now()
		columns := make([]relevance.Column, len(ds.Columns))
		var target relevance.Column
		for i, col := range ds.Columns {
			columns[i] = relevance.Column{Name: col.Name, Type: results[i].decision.Type, Values: col.Values}
			if col.Name == opts.Target {
				target = columns[i]
			}
		}
		importance = relevance.Score(target, columns)
		s.logger.Debug("scored %d features against %q in %s", len(importance), opts.Target, time.Since(stageStart))
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "profile canceled")
	}

	dups := quality.Duplicates(ds)
	report := &profile.Report{
		ID:              ReportID(ds, opts),
		DatasetName:     ds.Name,
		Target:          opts.Target,
		Summary:         summary.Aggregate(ds.RowCount, features, dups),
		Features:        features,
		Correlation:     corr.Matrix,
		Correlations:    corr.Pairs,
		TargetRelevance: importance,
	}

	s.logger.Debug("report %s ready in %s", report.ID, time.Since(start))
	return report, nil
}

// Infer runs only the type inference stage and returns one decision per
// column in input order.
func (s *ProfileService) Infer(ctx context.Context, ds *dataset.Dataset) ([]inference.Decision, error) {
	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate dataset")
	}
	out := make([]inference.Decision, len(ds.Columns))
	for i, col := range ds.Columns {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "infer canceled")
		}
		out[i] = inference.Decide(col.Values)
	}
	return out, nil
}

func (s *ProfileService) profileColumns(ctx context.Context, ds *dataset.Dataset, opts profile.Options) ([]columnResult, error) {
	results := make([]columnResult, len(ds.Columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, col := range ds.Columns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decision := inference.Decide(col.Values)
			results[i] = columnResult{
				decision: decision,
				stat:     descriptive.Profile(col.Name, decision.Type, col.Values, opts.TopN),
			}
			s.logger.Trace("column %q typed %s by %s", col.Name, decision.Type, decision.Rule)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ProfileService) resolve(opts profile.Options) profile.Options {
	if opts.TopN <= 0 {
		opts.TopN = s.defaults.TopN
	}
	if opts.TopN <= 0 {
		opts.TopN = descriptive.DefaultTopN
	}
	if opts.Workers <= 0 {
		opts.Workers = s.defaults.Workers
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return opts
}

// ReportID derives the report identifier from the dataset content and the
// options that shape the output, so re-running identical input reproduces it.
func ReportID(ds *dataset.Dataset, opts profile.Options) core.ReportID {
	h := core.NewHasher()
	h.WriteString(ds.ContentHash().String())
	h.WriteString(opts.Target)
	h.WriteInt(opts.TopN)
	return core.ReportID(core.NewContentID(h.Sum()))
}
