// Package readers provides read-back support for generated files, used to
// inspect and verify generator output.
package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/neelsbester/lo-phi/pkg/core"
)

// Factory creates a reader based on the given configuration.
type Factory struct {
	// registered readers by type
	readers map[string]Creator
}

// Creator is a function that creates a reader from a configuration.
type Creator func(config core.ReaderConfig) (core.TableReader, error)

// NewFactory creates a new reader factory.
func NewFactory() *Factory {
	return &Factory{
		readers: make(map[string]Creator),
	}
}

// Register registers a creator for a reader type.
func (f *Factory) Register(typ string, creator Creator) {
	f.readers[typ] = creator
}

// Create creates a reader based on the given configuration. An empty or
// "auto" type is detected from the file extension.
func (f *Factory) Create(config core.ReaderConfig) (core.TableReader, error) {
	typ := config.Type
	if typ == "" || typ == "auto" {
		typ = DetectType(config.Path)
	}
	creator, ok := f.readers[typ]
	if !ok {
		return nil, fmt.Errorf("unsupported reader type: %s", typ)
	}
	config.Type = typ
	return creator(config)
}

// DetectType guesses the reader type from a file extension.
func DetectType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "parquet"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}

// DefaultFactory is the default reader factory with built-in reader types.
var DefaultFactory = NewFactory()

// init registers built-in reader types.
func init() {
	DefaultFactory.Register("parquet", NewParquetReader)
	DefaultFactory.Register("csv", NewCSVReader)
}
