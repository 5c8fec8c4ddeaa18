package readers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/neelsbester/lo-phi/pkg/core"
)

// CSVReader reads a generated CSV file back into memory, inferring column
// types from the text.
type CSVReader struct {
	schema *arrow.Schema
	file   *os.File
	reader *csv.Reader
	alloc  memory.Allocator
}

// NewCSVReader creates a new CSV reader.
func NewCSVReader(config core.ReaderConfig) (core.TableReader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for CSV reader")
	}

	f, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	chunkSize := config.BatchSize
	if chunkSize <= 0 {
		chunkSize = 10000 // Default chunk size
	}

	alloc := memory.NewGoAllocator()

	reader := csv.NewInferringReader(
		f,
		csv.WithChunk(int(chunkSize)),
		csv.WithHeader(true),
		csv.WithNullReader(true, ""), // Empty string is treated as null
		csv.WithAllocator(alloc),
	)

	return &CSVReader{
		file:   f,
		reader: reader,
		alloc:  alloc,
	}, nil
}

// ReadAll loads the whole CSV into a single record.
func (r *CSVReader) ReadAll(ctx context.Context) (arrow.Record, error) {
	var records []arrow.Record
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()

	for r.reader.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if r.schema == nil {
			r.schema = r.reader.Schema()
		}

		rec := r.reader.Record()
		rec.Retain()
		records = append(records, rec)
	}

	if r.reader.Err() != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", r.reader.Err())
	}

	if len(records) == 0 {
		return nil, io.EOF
	}

	if len(records) == 1 {
		record := records[0]
		records = nil
		return record, nil
	}

	table := array.NewTableFromRecords(r.schema, records)
	defer table.Release()

	return tableToRecord(r.schema, table)
}

// Schema returns the schema of the dataset. The inferring reader only knows
// it after the first batch has been read.
func (r *CSVReader) Schema() *arrow.Schema {
	return r.schema
}

// Close closes the reader and releases resources.
func (r *CSVReader) Close() error {
	if r.reader != nil {
		r.reader.Release()
		r.reader = nil
	}
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
