package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"

	"github.com/neelsbester/lo-phi/pkg/core"
	"github.com/neelsbester/lo-phi/pkg/writers"
	"github.com/neelsbester/lo-phi/report"
)

// OutputOptions names the destination of a generation run.
type OutputOptions struct {
	OutputDir string
	BaseName  string
}

// ParquetPath returns the columnar output path.
func (o OutputOptions) ParquetPath() string {
	return filepath.Join(o.OutputDir, o.BaseName+".parquet")
}

// CSVPath returns the delimited text output path.
func (o OutputOptions) CSVPath() string {
	return filepath.Join(o.OutputDir, o.BaseName+".csv")
}

// Run generates the table and serializes it to both output formats.
// The whole table is held in memory between generation and the two writes.
func Run(ctx context.Context, params Params, out OutputOptions, log *zap.Logger) (report.GenerationReport, error) {
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()

	log.Info("generating table",
		zap.Int("rows", params.Rows),
		zap.Int("columns", params.TotalColumns()),
		zap.Int64("seed", params.Seed))

	record, err := New(params).WithLogger(log).Generate(ctx)
	if err != nil {
		return report.GenerationReport{}, err
	}
	defer record.Release()

	if err := os.MkdirAll(out.OutputDir, 0755); err != nil {
		return report.GenerationReport{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	parquetPath := out.ParquetPath()
	log.Info("writing parquet", zap.String("path", parquetPath))
	if err := writeRecord(ctx, "parquet", parquetPath, record); err != nil {
		return report.GenerationReport{}, err
	}

	csvPath := out.CSVPath()
	log.Info("writing csv", zap.String("path", csvPath))
	if err := writeRecord(ctx, "csv", csvPath, record); err != nil {
		return report.GenerationReport{}, err
	}

	parquetFile, err := report.StatFile(parquetPath)
	if err != nil {
		return report.GenerationReport{}, err
	}
	csvFile, err := report.StatFile(csvPath)
	if err != nil {
		return report.GenerationReport{}, err
	}

	end := time.Now()
	return report.GenerationReport{
		Rows:      record.NumRows(),
		Columns:   record.NumCols(),
		Seed:      params.Seed,
		Parquet:   parquetFile,
		CSV:       csvFile,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}, nil
}

// writeRecord serializes one record through a factory-created writer.
func writeRecord(ctx context.Context, typ, path string, record arrow.Record) error {
	writer, err := writers.DefaultFactory.Create(core.WriterConfig{Type: typ, Path: path})
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", typ, err)
	}

	if err := writer.Write(ctx, record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write %s output: %w", typ, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close %s output: %w", typ, err)
	}
	return nil
}
