package writers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"

	"github.com/neelsbester/lo-phi/pkg/core"
)

// CSVWriter implements a writer for CSV files. Output is UTF-8 with a
// header row; nulls render as empty fields and no index column is written.
type CSVWriter struct {
	writer *csv.Writer
	file   *os.File
	schema *arrow.Schema
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(config core.WriterConfig) (core.TableWriter, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for CSV writer")
	}

	file, err := os.Create(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	// The writer itself is created on the first record, when the schema
	// is known.
	return &CSVWriter{file: file}, nil
}

// Write writes a record to the file.
func (w *CSVWriter) Write(ctx context.Context, record arrow.Record) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.writer == nil {
		schema := record.Schema()
		w.writer = csv.NewWriter(
			w.file,
			schema,
			csv.WithHeader(true),
			csv.WithNullWriter(""), // Nulls render as empty fields
			csv.WithComma(','),
		)
		w.schema = schema
	}

	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}

// Close flushes pending rows and closes the file.
func (w *CSVWriter) Close() error {
	var err error

	if w.writer != nil {
		if flushErr := w.writer.Flush(); flushErr != nil {
			err = flushErr
		}
		if wErr := w.writer.Error(); wErr != nil && err == nil {
			err = wErr
		}
		w.writer = nil
	}

	if w.file != nil {
		if closeErr := w.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		w.file = nil
	}

	return err
}
