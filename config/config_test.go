package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := DefaultGenerateConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 100000, cfg.Rows)
	assert.Equal(t, 4500, cfg.NumCols)
	assert.Equal(t, 400, cfg.CatCols)
	assert.Equal(t, 100, cfg.CorrelatedPairs)
	assert.Equal(t, 50, cfg.HighMissingCols)
	assert.Equal(t, 0.15, cfg.MissingRate)
	assert.Equal(t, "test_data", cfg.OutputDir)
	assert.Equal(t, "large_test", cfg.BaseName)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerateConfig)
		message string
	}{
		{"zero rows", func(c *GenerateConfig) { c.Rows = 0 }, "rows must be positive"},
		{"negative rows", func(c *GenerateConfig) { c.Rows = -5 }, "rows must be positive"},
		{"negative num cols", func(c *GenerateConfig) { c.NumCols = -1 }, "num_cols"},
		{"negative cat cols", func(c *GenerateConfig) { c.CatCols = -1 }, "cat_cols"},
		{"negative correlated pairs", func(c *GenerateConfig) { c.CorrelatedPairs = -1 }, "correlated_pairs"},
		{"negative high missing", func(c *GenerateConfig) { c.HighMissingCols = -1 }, "high_missing_cols"},
		{"missing rate below zero", func(c *GenerateConfig) { c.MissingRate = -0.1 }, "missing_rate"},
		{"missing rate above one", func(c *GenerateConfig) { c.MissingRate = 1.1 }, "missing_rate"},
		{"correlated exceeds numeric", func(c *GenerateConfig) { c.NumCols = 10; c.CorrelatedPairs = 11 }, "must not exceed num_cols"},
		{"empty output dir", func(c *GenerateConfig) { c.OutputDir = "" }, "output_dir"},
		{"empty base name", func(c *GenerateConfig) { c.BaseName = "" }, "base_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGenerateConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoadGenerateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	content := `rows: 1000
num_cols: 10
cat_cols: 2
correlated_pairs: 2
high_missing_cols: 1
missing_rate: 0.2
output_dir: bench_out
base_name: small
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGenerateConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Rows)
	assert.Equal(t, 10, cfg.NumCols)
	assert.Equal(t, 2, cfg.CatCols)
	assert.Equal(t, 2, cfg.CorrelatedPairs)
	assert.Equal(t, 1, cfg.HighMissingCols)
	assert.Equal(t, 0.2, cfg.MissingRate)
	assert.Equal(t, "bench_out", cfg.OutputDir)
	assert.Equal(t, "small", cfg.BaseName)
	// Unset keys keep their defaults.
	assert.Equal(t, int64(42), cfg.Seed)

	assert.NoError(t, cfg.Validate())
}

func TestLoadGenerateConfigMissingFile(t *testing.T) {
	_, err := LoadGenerateConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParamsConversion(t *testing.T) {
	cfg := DefaultGenerateConfig()
	cfg.Rows = 1000
	cfg.NumCols = 10
	cfg.CatCols = 2
	cfg.CorrelatedPairs = 2
	cfg.HighMissingCols = 1

	params := cfg.Params()
	assert.Equal(t, 1000, params.Rows)
	assert.Equal(t, 16, params.TotalColumns())
	assert.Equal(t, cfg.Seed, params.Seed)
	assert.Equal(t, cfg.MissingRate, params.MissingRate)
}
