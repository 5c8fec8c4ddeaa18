// Package core provides the core types and interfaces for the lo-phi
// test data generator.
package core

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// TableWriter defines an interface for writing a full table to a destination.
type TableWriter interface {
	// Write writes a record to the destination.
	Write(ctx context.Context, record arrow.Record) error

	// Close closes the writer and flushes any pending data.
	Close() error
}

// TableReader defines an interface for reading a generated file back into
// memory. Generator outputs are read whole, for verification.
type TableReader interface {
	// ReadAll returns the entire table as a single record.
	ReadAll(ctx context.Context) (arrow.Record, error)

	// Schema returns the schema of the dataset.
	Schema() *arrow.Schema

	// Close closes the reader and releases resources.
	Close() error
}

// WriterConfig provides configuration for creating a writer.
type WriterConfig struct {
	// Type is the type of the writer.
	Type string

	// Path is the path to the output file.
	Path string
}

// ReaderConfig provides configuration for creating a reader.
type ReaderConfig struct {
	// Type is the type of the reader.
	Type string

	// Path is the path to the file.
	Path string

	// BatchSize is the size of batches to read.
	BatchSize int64
}
