package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neelsbester/lo-phi/pkg/core"
	"github.com/neelsbester/lo-phi/pkg/generator"
	"github.com/neelsbester/lo-phi/pkg/readers"
)

func runParams() generator.Params {
	return generator.Params{
		Rows:            200,
		NumCols:         5,
		CatCols:         2,
		CorrelatedPairs: 1,
		HighMissingCols: 1,
		MissingRate:     0.15,
		Seed:            generator.DefaultSeed,
	}
}

func TestRunWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	out := generator.OutputOptions{OutputDir: filepath.Join(dir, "out"), BaseName: "bench"}

	run, err := generator.Run(context.Background(), runParams(), out, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(200), run.Rows)
	assert.Equal(t, int64(10), run.Columns)
	assert.Equal(t, out.ParquetPath(), run.Parquet.Path)
	assert.Equal(t, out.CSVPath(), run.CSV.Path)
	assert.Positive(t, run.Parquet.Bytes)
	assert.Positive(t, run.CSV.Bytes)
	assert.GreaterOrEqual(t, run.EndTime.Sub(run.StartTime), run.Duration)

	// The output directory is created on demand.
	_, err = os.Stat(out.ParquetPath())
	assert.NoError(t, err)
	_, err = os.Stat(out.CSVPath())
	assert.NoError(t, err)
}

func TestRunOutputIsByteReproducible(t *testing.T) {
	params := runParams()

	first := generator.OutputOptions{OutputDir: t.TempDir(), BaseName: "bench"}
	_, err := generator.Run(context.Background(), params, first, nil)
	require.NoError(t, err)

	second := generator.OutputOptions{OutputDir: t.TempDir(), BaseName: "bench"}
	_, err = generator.Run(context.Background(), params, second, nil)
	require.NoError(t, err)

	firstParquet, err := os.ReadFile(first.ParquetPath())
	require.NoError(t, err)
	secondParquet, err := os.ReadFile(second.ParquetPath())
	require.NoError(t, err)
	assert.Equal(t, firstParquet, secondParquet)

	firstCSV, err := os.ReadFile(first.CSVPath())
	require.NoError(t, err)
	secondCSV, err := os.ReadFile(second.CSVPath())
	require.NoError(t, err)
	assert.Equal(t, firstCSV, secondCSV)
}

func TestRunParquetRoundTrip(t *testing.T) {
	params := runParams()
	out := generator.OutputOptions{OutputDir: t.TempDir(), BaseName: "bench"}

	_, err := generator.Run(context.Background(), params, out, nil)
	require.NoError(t, err)

	expected, err := generator.New(params).Generate(context.Background())
	require.NoError(t, err)
	defer expected.Release()

	reader, err := readers.DefaultFactory.Create(core.ReaderConfig{Path: out.ParquetPath()})
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	defer record.Release()

	require.Equal(t, expected.NumRows(), record.NumRows())
	require.Equal(t, expected.NumCols(), record.NumCols())

	for i := 0; i < int(expected.NumCols()); i++ {
		assert.Equal(t, expected.ColumnName(i), record.ColumnName(i))
		assert.True(t, array.Equal(expected.Column(i), record.Column(i)),
			"column %s differs after parquet round trip", expected.ColumnName(i))
	}
}

func TestRunCSVRoundTripShape(t *testing.T) {
	params := runParams()
	out := generator.OutputOptions{OutputDir: t.TempDir(), BaseName: "bench"}

	_, err := generator.Run(context.Background(), params, out, nil)
	require.NoError(t, err)

	reader, err := readers.DefaultFactory.Create(core.ReaderConfig{Path: out.CSVPath()})
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	defer record.Release()

	// Text precision loses float values; shape and names survive.
	assert.Equal(t, int64(200), record.NumRows())
	assert.Equal(t, int64(10), record.NumCols())
	assert.Equal(t, "num_0000", record.ColumnName(0))
	assert.Equal(t, "target", record.ColumnName(8))
	assert.Equal(t, "high_missing_0000", record.ColumnName(9))
}

func TestRunRejectsInvalidParams(t *testing.T) {
	params := runParams()
	params.CorrelatedPairs = params.NumCols + 3

	out := generator.OutputOptions{OutputDir: t.TempDir(), BaseName: "bench"}
	_, err := generator.Run(context.Background(), params, out, nil)
	assert.ErrorContains(t, err, "correlated pairs")
}
