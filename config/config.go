package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/neelsbester/lo-phi/pkg/generator"
)

// --- Configuration Structs ---

// GenerateConfig holds every knob of a generation run. It mirrors the CLI
// flags and can be loaded from a YAML file.
type GenerateConfig struct {
	Rows            int     `yaml:"rows" mapstructure:"rows" json:"rows"`
	NumCols         int     `yaml:"num_cols" mapstructure:"num_cols" json:"num_cols"`
	CatCols         int     `yaml:"cat_cols" mapstructure:"cat_cols" json:"cat_cols"`
	CorrelatedPairs int     `yaml:"correlated_pairs" mapstructure:"correlated_pairs" json:"correlated_pairs"`
	HighMissingCols int     `yaml:"high_missing_cols" mapstructure:"high_missing_cols" json:"high_missing_cols"`
	MissingRate     float64 `yaml:"missing_rate" mapstructure:"missing_rate" json:"missing_rate"`
	Seed            int64   `yaml:"seed" mapstructure:"seed" json:"seed"`
	OutputDir       string  `yaml:"output_dir" mapstructure:"output_dir" json:"output_dir"`
	BaseName        string  `yaml:"base_name" mapstructure:"base_name" json:"base_name"`
}

// DefaultGenerateConfig returns the standard large benchmark configuration.
func DefaultGenerateConfig() GenerateConfig {
	p := generator.DefaultParams()
	return GenerateConfig{
		Rows:            p.Rows,
		NumCols:         p.NumCols,
		CatCols:         p.CatCols,
		CorrelatedPairs: p.CorrelatedPairs,
		HighMissingCols: p.HighMissingCols,
		MissingRate:     p.MissingRate,
		Seed:            p.Seed,
		OutputDir:       "test_data",
		BaseName:        "large_test",
	}
}

// Params converts the config into generator parameters.
func (c *GenerateConfig) Params() generator.Params {
	return generator.Params{
		Rows:            c.Rows,
		NumCols:         c.NumCols,
		CatCols:         c.CatCols,
		CorrelatedPairs: c.CorrelatedPairs,
		HighMissingCols: c.HighMissingCols,
		MissingRate:     c.MissingRate,
		Seed:            c.Seed,
	}
}

// --- Load Configuration ---

// LoadGenerateConfig reads a YAML file and merges it over the defaults.
func LoadGenerateConfig(configPath string) (*GenerateConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	cfg := DefaultGenerateConfig()
	v.SetDefault("rows", cfg.Rows)
	v.SetDefault("num_cols", cfg.NumCols)
	v.SetDefault("cat_cols", cfg.CatCols)
	v.SetDefault("correlated_pairs", cfg.CorrelatedPairs)
	v.SetDefault("high_missing_cols", cfg.HighMissingCols)
	v.SetDefault("missing_rate", cfg.MissingRate)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("base_name", cfg.BaseName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// --- Validation Functions ---

// validate is a helper function to reduce repetition.
func validate(condition bool, format string, a ...any) error {
	if !condition {
		return fmt.Errorf(format, a...)
	}
	return nil
}

// Validate rejects malformed parameter sets before any generation work
// starts, instead of letting them surface as obscure downstream errors.
func (c *GenerateConfig) Validate() error {
	if err := validate(c.Rows > 0, "rows must be positive, got %d", c.Rows); err != nil {
		return err
	}
	if err := validate(c.NumCols >= 0, "num_cols must be non-negative, got %d", c.NumCols); err != nil {
		return err
	}
	if err := validate(c.CatCols >= 0, "cat_cols must be non-negative, got %d", c.CatCols); err != nil {
		return err
	}
	if err := validate(c.CorrelatedPairs >= 0, "correlated_pairs must be non-negative, got %d", c.CorrelatedPairs); err != nil {
		return err
	}
	if err := validate(c.HighMissingCols >= 0, "high_missing_cols must be non-negative, got %d", c.HighMissingCols); err != nil {
		return err
	}
	if err := validate(c.MissingRate >= 0 && c.MissingRate <= 1,
		"missing_rate must be between 0 and 1, got %g", c.MissingRate); err != nil {
		return err
	}
	if err := validate(c.CorrelatedPairs <= c.NumCols,
		"correlated_pairs (%d) must not exceed num_cols (%d): each correlated column references a base column",
		c.CorrelatedPairs, c.NumCols); err != nil {
		return err
	}
	if err := validate(c.OutputDir != "", "output_dir is required"); err != nil {
		return err
	}
	return validate(c.BaseName != "", "base_name is required")
}
