package readers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/neelsbester/lo-phi/pkg/core"
)

// ParquetReader reads a generated Parquet file back into memory.
type ParquetReader struct {
	schema     *arrow.Schema
	fileReader *file.Reader
	arrow      *pqarrow.FileReader
	file       *os.File
	alloc      memory.Allocator
}

// NewParquetReader creates a new Parquet reader.
func NewParquetReader(config core.ReaderConfig) (core.TableReader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Parquet reader")
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 10000 // Default batch size
	}

	f, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Parquet file: %w", err)
	}

	alloc := memory.NewGoAllocator()

	parquetReader, err := file.NewParquetReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create Parquet file reader: %w", err)
	}

	arrowProps := pqarrow.ArrowReadProperties{
		Parallel:  true,
		BatchSize: batchSize,
	}
	arrowReader, err := pqarrow.NewFileReader(parquetReader, arrowProps, alloc)
	if err != nil {
		parquetReader.Close()
		f.Close()
		return nil, fmt.Errorf("failed to create Arrow reader: %w", err)
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		parquetReader.Close()
		f.Close()
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}

	return &ParquetReader{
		schema:     schema,
		fileReader: parquetReader,
		arrow:      arrowReader,
		file:       f,
		alloc:      alloc,
	}, nil
}

// ReadAll loads the entire file into a single record.
func (r *ParquetReader) ReadAll(ctx context.Context) (arrow.Record, error) {
	table, err := r.arrow.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read Parquet table: %w", err)
	}
	defer table.Release()

	return tableToRecord(r.schema, table)
}

// Schema returns the schema of the dataset.
func (r *ParquetReader) Schema() *arrow.Schema {
	return r.schema
}

// Close closes the reader and releases resources.
func (r *ParquetReader) Close() error {
	var err error
	if r.fileReader != nil {
		err = r.fileReader.Close()
		r.fileReader = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	return err
}

// tableToRecord flattens a chunked table into one owned record.
func tableToRecord(schema *arrow.Schema, table arrow.Table) (arrow.Record, error) {
	reader := array.NewTableReader(table, table.NumRows())
	defer reader.Release()

	if !reader.Next() {
		if reader.Err() != nil {
			return nil, fmt.Errorf("failed to flatten table: %w", reader.Err())
		}
		// Zero-row table: return an empty record with the right schema.
		cols := emptyColumns(schema)
		record := array.NewRecord(schema, cols, 0)
		for _, col := range cols {
			col.Release()
		}
		return record, nil
	}

	record := reader.Record()
	record.Retain()
	return record, nil
}

func emptyColumns(schema *arrow.Schema) []arrow.Array {
	alloc := memory.NewGoAllocator()
	cols := make([]arrow.Array, schema.NumFields())
	for i, field := range schema.Fields() {
		b := array.NewBuilder(alloc, field.Type)
		cols[i] = b.NewArray()
		b.Release()
	}
	return cols
}
