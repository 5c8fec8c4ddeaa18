// Package main provides the entry point for the lo-phi test data generator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neelsbester/lo-phi/version"
)

// Main entry point for the datagen tool
func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "datagen",
		Short: "datagen synthesizes large tabular benchmark datasets",
		Long: `datagen generates a large synthetic table with controlled
characteristics (numeric, correlated, categorical and high-missing columns
plus a binary target) and writes it to Parquet and CSV for benchmarking
feature-reduction pipelines.`,
	}

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of datagen",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("datagen v%s (built %s)\n", version.Version, version.BuildDate)
		},
	})

	// Add subcommands
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newServeCommand())

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
