package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goprofile/adapters/report"
	"goprofile/adapters/tabular"
	"goprofile/app"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
	"goprofile/internal/testkit"
)

// outputFlags are shared by every command that writes a report
type outputFlags struct {
	target  string
	format  string
	output  string
	topN    int
	workers int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	cmd.Flags().StringVar(&o.target, "target", "", "column to score feature relevance against")
	cmd.Flags().StringVarP(&o.format, "format", "f", "json", "output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().IntVar(&o.topN, "top-n", 0, "frequent values kept per categorical column (default from config)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "parallel column profilers (default from config)")
}

func newProfileCmd() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "Profile a CSV, TSV, XLSX or JSON dataset",
		Long: `Profile a dataset file and write the report.

Example: goprofile profile customers.csv --target churned --format markdown -o report.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runProfile(cmd.Context(), ds, out)
		},
	}
	out.register(cmd)
	return cmd
}

func newInferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer [file]",
		Short: "Print the inferred semantic type of every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := readFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			service := app.NewProfileService(logger, profile.Options{TopN: cfg.TopN, Workers: cfg.Workers})
			decisions, err := service.Infer(cmd.Context(), ds)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tTYPE\tRULE")
			for i, d := range decisions {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ds.Columns[i].Name, d.Type, d.Rule)
			}
			return w.Flush()
		},
	}
}

func newDemoCmd() *cobra.Command {
	var out outputFlags
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Profile a generated customer dataset",
		Long: `Generate a deterministic synthetic shopping dataset and profile it.

Example: goprofile demo --rows 1000 --seed 7 --target churned --format html -o demo.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := testkit.DefaultShoppingConfig()
			config.CustomerCount = rows
			config.Seed = seed
			ds := testkit.NewShoppingDataGenerator(config).Generate()
			logger.Info("generated %d rows x %d columns (seed %d)", ds.RowCount, len(ds.Columns), seed)
			return runProfile(cmd.Context(), ds, out)
		},
	}
	out.register(cmd)
	cmd.Flags().IntVar(&rows, "rows", 500, "number of customers to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for deterministic generation")
	return cmd
}

func readFile(ctx context.Context, path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return tabular.NewReader(logger).Read(ctx, path, f)
}

func runProfile(ctx context.Context, ds *dataset.Dataset, out outputFlags) error {
	if _, err := report.ParseFormat(out.format); err != nil {
		return err
	}

	service := app.NewProfileService(logger, profile.Options{TopN: cfg.TopN, Workers: cfg.Workers})
	rep, err := service.Analyze(ctx, ds, profile.Options{Target: out.target, TopN: out.topN, Workers: out.workers})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out.output != "" {
		f, err := os.Create(out.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := report.NewRenderer().Render(w, rep, out.format); err != nil {
		return err
	}
	if out.output != "" {
		logger.Info("wrote %s report %s to %s", out.format, rep.ID, out.output)
	}
	return nil
}
