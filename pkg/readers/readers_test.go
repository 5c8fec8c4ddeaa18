package readers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neelsbester/lo-phi/pkg/core"
)

func TestDetectType(t *testing.T) {
	assert.Equal(t, "parquet", DetectType("test_data/large_test.parquet"))
	assert.Equal(t, "csv", DetectType("test_data/large_test.csv"))
	assert.Equal(t, "parquet", DetectType("UPPER.PARQUET"))
	assert.Equal(t, "", DetectType("notes.txt"))
}

func TestFactoryUnsupportedType(t *testing.T) {
	_, err := DefaultFactory.Create(core.ReaderConfig{Type: "orc", Path: "x.orc"})
	assert.ErrorContains(t, err, "unsupported reader type")

	_, err = DefaultFactory.Create(core.ReaderConfig{Path: "notes.txt"})
	assert.ErrorContains(t, err, "unsupported reader type")
}

func TestReadersRequirePath(t *testing.T) {
	_, err := NewParquetReader(core.ReaderConfig{})
	assert.Error(t, err)

	_, err = NewCSVReader(core.ReaderConfig{})
	assert.Error(t, err)
}

func TestParquetReaderMissingFile(t *testing.T) {
	_, err := NewParquetReader(core.ReaderConfig{Path: filepath.Join(t.TempDir(), "absent.parquet")})
	assert.Error(t, err)
}

func TestCSVReaderReadsInferredTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	content := "num_0000,cat_0000,target\n1.5,A,0\n,B,1\n-2.25,,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reader, err := DefaultFactory.Create(core.ReaderConfig{Path: path})
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	defer record.Release()

	assert.Equal(t, int64(3), record.NumRows())
	assert.Equal(t, int64(3), record.NumCols())
	assert.Equal(t, "num_0000", record.ColumnName(0))
	assert.Equal(t, "target", record.ColumnName(2))

	// Empty fields come back as nulls.
	assert.Equal(t, 1, record.Column(0).NullN())
	assert.Equal(t, 1, record.Column(1).NullN())
	assert.Equal(t, 0, record.Column(2).NullN())
}
