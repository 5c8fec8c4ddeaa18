package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/neelsbester/lo-phi/config"
	"github.com/neelsbester/lo-phi/logger"
	"github.com/neelsbester/lo-phi/pkg/generator"
	"github.com/neelsbester/lo-phi/report"
)

// newGenerateCommand creates the generate command.
func newGenerateCommand() *cobra.Command {
	cfg := config.DefaultGenerateConfig()
	var configPath string
	var reportPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic benchmark dataset",
		Long: `The generate command builds the full table in memory and writes it to
<output-dir>/<base-name>.parquet (snappy) and <output-dir>/<base-name>.csv.

Output is byte-reproducible for a fixed parameter set and seed. Peak memory
scales with rows x total columns; the whole table is held in memory before
either file is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A config file provides the base values; explicit flags win.
			if configPath != "" {
				loaded, err := config.LoadGenerateConfig(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				merged := *loaded
				applyFlagOverrides(cmd, &merged, cfg)
				cfg = merged
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runGenerate(cfg, reportPath, quiet)
		},
	}

	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "Number of rows")
	cmd.Flags().IntVar(&cfg.NumCols, "num-cols", cfg.NumCols, "Number of numeric columns")
	cmd.Flags().IntVar(&cfg.CatCols, "cat-cols", cfg.CatCols, "Number of categorical columns")
	cmd.Flags().IntVar(&cfg.CorrelatedPairs, "correlated-pairs", cfg.CorrelatedPairs, "Number of correlated column pairs")
	cmd.Flags().IntVar(&cfg.HighMissingCols, "high-missing-cols", cfg.HighMissingCols, "Number of high-missing columns")
	cmd.Flags().Float64Var(&cfg.MissingRate, "missing-rate", cfg.MissingRate, "Missing value rate for numeric columns (0-1)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory")
	cmd.Flags().StringVar(&cfg.BaseName, "base-name", cfg.BaseName, "Base filename without extension")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file with generation parameters")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON generation report to this path")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress the progress spinner")

	return cmd
}

// applyFlagOverrides copies explicitly set flag values over a file-loaded
// config so the CLI always wins.
func applyFlagOverrides(cmd *cobra.Command, dst *config.GenerateConfig, flags config.GenerateConfig) {
	if cmd.Flags().Changed("rows") {
		dst.Rows = flags.Rows
	}
	if cmd.Flags().Changed("num-cols") {
		dst.NumCols = flags.NumCols
	}
	if cmd.Flags().Changed("cat-cols") {
		dst.CatCols = flags.CatCols
	}
	if cmd.Flags().Changed("correlated-pairs") {
		dst.CorrelatedPairs = flags.CorrelatedPairs
	}
	if cmd.Flags().Changed("high-missing-cols") {
		dst.HighMissingCols = flags.HighMissingCols
	}
	if cmd.Flags().Changed("missing-rate") {
		dst.MissingRate = flags.MissingRate
	}
	if cmd.Flags().Changed("seed") {
		dst.Seed = flags.Seed
	}
	if cmd.Flags().Changed("output-dir") {
		dst.OutputDir = flags.OutputDir
	}
	if cmd.Flags().Changed("base-name") {
		dst.BaseName = flags.BaseName
	}
}

// runGenerate executes the generation with the given configuration.
func runGenerate(cfg config.GenerateConfig, reportPath string, quiet bool) error {
	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nCancelling generation...")
		cancel()
	}()

	params := cfg.Params()
	fmt.Printf("Generating %d rows x %d columns...\n", cfg.Rows, params.TotalColumns())

	var spin *spinner.Spinner
	if !quiet {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " generating..."
		spin.Start()
	}

	out := generator.OutputOptions{OutputDir: cfg.OutputDir, BaseName: cfg.BaseName}
	run, err := generator.Run(ctx, params, out, logger.GetLogger())

	if spin != nil {
		spin.Stop()
	}
	logger.Sync()

	if err != nil {
		return err
	}

	run.WriteSummary(os.Stdout)

	if reportPath != "" {
		gen := &report.JSONGenerator{}
		if err := gen.SaveToFile(run, reportPath); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}

	return nil
}
