package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neelsbester/lo-phi/pkg/core"
	"github.com/neelsbester/lo-phi/pkg/generator"
	"github.com/neelsbester/lo-phi/pkg/readers"
)

// newInspectCommand creates the inspect command.
func newInspectCommand() *cobra.Command {
	var fileType string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Read a generated file back and print its shape",
		Long: `The inspect command reads a generated Parquet or CSV file back into
memory and prints its shape and column-group breakdown, as a sanity check
on generator output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], fileType)
		},
	}

	cmd.Flags().StringVar(&fileType, "type", "auto", "File type (parquet, csv, auto)")

	return cmd
}

// runInspect loads the file and prints the shape summary.
func runInspect(path, fileType string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	reader, err := readers.DefaultFactory.Create(core.ReaderConfig{Type: fileType, Path: path})
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}
	defer reader.Close()

	record, err := reader.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer record.Release()

	schema := record.Schema()
	var numeric, correlated, categorical, highMissing, other int
	for _, field := range schema.Fields() {
		switch {
		case generator.IsPlainNumeric(field.Name):
			numeric++
		case field.Name == generator.TargetName:
			// reported separately below
		case strings.HasPrefix(field.Name, "num_corr_"):
			correlated++
		case strings.HasPrefix(field.Name, "cat_"):
			categorical++
		case strings.HasPrefix(field.Name, "high_missing_"):
			highMissing++
		default:
			other++
		}
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Shape: (%d, %d)\n", record.NumRows(), record.NumCols())
	fmt.Printf("Columns: %d numeric, %d correlated, %d categorical, %d high-missing, %d other\n",
		numeric, correlated, categorical, highMissing, other)
	if idx := schema.FieldIndices(generator.TargetName); len(idx) > 0 {
		fmt.Println("Target column: present")
	} else {
		fmt.Println("Target column: absent")
	}

	return nil
}
