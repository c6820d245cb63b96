package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"goprofile/internal"
	"goprofile/internal/config"
)

var (
	cfgFile string
	debug   bool

	cfg    *config.Config
	logger *internal.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goprofile",
		Short: "Profile tabular datasets: types, statistics, correlations and target relevance",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newProfileCmd(),
		newInferCmd(),
		newDemoCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if debug {
		c.LogLevel = "debug"
	}
	cfg = c
	logger = cfg.Logger()
	return nil
}
