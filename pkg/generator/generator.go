// Package generator builds synthetic tabular datasets with controlled
// characteristics for benchmarking feature-reduction pipelines.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
)

const (
	// DefaultSeed keeps independent runs byte-reproducible.
	DefaultSeed = 42

	// noiseScale is the standard deviation of the perturbation added to a
	// base column to form its correlated partner.
	noiseScale = 0.05

	// highMissingRate is the fixed null rate of high-missing columns. It is
	// deliberately above any reasonable drop-column threshold and is
	// independent of Params.MissingRate.
	highMissingRate = 0.5
)

// categories is the label set for categorical columns. A draw may also land
// on the null outcome, which is a valid draw rather than post-hoc injection.
var categories = []string{"A", "B", "C", "D", "E"}

// Params controls the shape and perturbation of the generated table.
type Params struct {
	Rows            int
	NumCols         int
	CatCols         int
	CorrelatedPairs int
	HighMissingCols int
	MissingRate     float64
	Seed            int64
}

// DefaultParams returns the standard large benchmark configuration.
func DefaultParams() Params {
	return Params{
		Rows:            100000,
		NumCols:         4500,
		CatCols:         400,
		CorrelatedPairs: 100,
		HighMissingCols: 50,
		MissingRate:     0.15,
		Seed:            DefaultSeed,
	}
}

// TotalColumns returns the column count of the assembled table, including
// the target column.
func (p Params) TotalColumns() int {
	return p.NumCols + p.CorrelatedPairs + p.CatCols + p.HighMissingCols + 1
}

// Validate rejects parameter combinations that cannot produce a well-formed
// table. Every correlated column must reference an existing base column.
func (p Params) Validate() error {
	if p.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", p.Rows)
	}
	if p.NumCols < 0 || p.CatCols < 0 || p.CorrelatedPairs < 0 || p.HighMissingCols < 0 {
		return fmt.Errorf("column counts must be non-negative (num=%d cat=%d correlated=%d high-missing=%d)",
			p.NumCols, p.CatCols, p.CorrelatedPairs, p.HighMissingCols)
	}
	if p.MissingRate < 0 || p.MissingRate > 1 {
		return fmt.Errorf("missing rate must be in [0,1], got %g", p.MissingRate)
	}
	if p.CorrelatedPairs > p.NumCols {
		return fmt.Errorf("correlated pairs (%d) exceed numeric columns (%d): each pair references a base column",
			p.CorrelatedPairs, p.NumCols)
	}
	return nil
}

// Generator produces a synthetic table from a single seeded random source.
// All draws come from one stream, so the column build order is fixed.
type Generator struct {
	params Params
	alloc  memory.Allocator
	rnd    *rand.Rand
	log    *zap.Logger
}

// New creates a generator for the given parameters. The random source is
// constructed here, once, from the seed; no global random state is touched.
func New(params Params) *Generator {
	return &Generator{
		params: params,
		alloc:  memory.NewGoAllocator(),
		rnd:    rand.New(rand.NewSource(params.Seed)),
		log:    zap.NewNop(),
	}
}

// WithLogger attaches a logger for progress reporting.
func (g *Generator) WithLogger(log *zap.Logger) *Generator {
	if log != nil {
		g.log = log
	}
	return g
}

// Generate builds the full table in memory and returns it as a single
// record. Column order: plain numeric, correlated, categorical, target,
// high-missing. Missing cells are Arrow nulls, never sentinel values.
func (g *Generator) Generate(ctx context.Context) (arrow.Record, error) {
	p := g.params
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation parameters: %w", err)
	}

	// Plain numeric columns: standard normal draws, float32 storage.
	g.log.Info("creating numeric columns", zap.Int("count", p.NumCols))
	base := make([][]float32, p.NumCols)
	for i := range base {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		col := make([]float32, p.Rows)
		for r := range col {
			col[r] = float32(g.rnd.NormFloat64())
		}
		base[i] = col
	}

	// Correlated columns derive from the clean base values, before the base
	// column's own null mask exists.
	g.log.Info("creating correlated column pairs", zap.Int("count", p.CorrelatedPairs))
	corr := make([][]float32, p.CorrelatedPairs)
	for i := range corr {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		col := make([]float32, p.Rows)
		for r := range col {
			col[r] = base[i][r] + float32(g.rnd.NormFloat64()*noiseScale)
		}
		corr[i] = col
	}

	// Categorical columns: uniform over the five labels plus a null outcome.
	g.log.Info("creating categorical columns", zap.Int("count", p.CatCols))
	cats := make([][]int8, p.CatCols)
	for i := range cats {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		col := make([]int8, p.Rows)
		for r := range col {
			col[r] = int8(g.rnd.Intn(len(categories) + 1))
		}
		cats[i] = col
	}

	// Binary target.
	target := make([]int64, p.Rows)
	for r := range target {
		target[r] = int64(g.rnd.Intn(2))
	}

	// Per-row Bernoulli null masks for the plain numeric columns only.
	g.log.Info("introducing missing values", zap.Float64("rate", p.MissingRate))
	baseMasks := make([][]bool, p.NumCols)
	for i := range baseMasks {
		baseMasks[i] = g.bernoulliMask(p.Rows, p.MissingRate)
	}

	// High-missing columns carry their own fixed 50% mask.
	g.log.Info("creating high-missing columns", zap.Int("count", p.HighMissingCols))
	highVals := make([][]float32, p.HighMissingCols)
	highMasks := make([][]bool, p.HighMissingCols)
	for i := range highVals {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		col := make([]float32, p.Rows)
		for r := range col {
			col[r] = float32(g.rnd.NormFloat64())
		}
		highVals[i] = col
		highMasks[i] = g.bernoulliMask(p.Rows, highMissingRate)
	}

	return g.assemble(base, baseMasks, corr, cats, target, highVals, highMasks)
}

// bernoulliMask draws an independent per-row mask at the given rate.
func (g *Generator) bernoulliMask(rows int, rate float64) []bool {
	mask := make([]bool, rows)
	for r := range mask {
		mask[r] = g.rnd.Float64() < rate
	}
	return mask
}

// assemble turns the column slices into one arrow record.
func (g *Generator) assemble(
	base [][]float32, baseMasks [][]bool,
	corr [][]float32,
	cats [][]int8,
	target []int64,
	highVals [][]float32, highMasks [][]bool,
) (arrow.Record, error) {
	p := g.params

	fields := make([]arrow.Field, 0, p.TotalColumns())
	cols := make([]arrow.Array, 0, p.TotalColumns())

	for i, col := range base {
		fields = append(fields, arrow.Field{Name: NumericName(i), Type: arrow.PrimitiveTypes.Float32, Nullable: true})
		cols = append(cols, g.buildFloat32(col, baseMasks[i]))
	}
	for i, col := range corr {
		fields = append(fields, arrow.Field{Name: CorrelatedName(i), Type: arrow.PrimitiveTypes.Float32, Nullable: false})
		cols = append(cols, g.buildFloat32(col, nil))
	}
	for i, col := range cats {
		fields = append(fields, arrow.Field{Name: CategoricalName(i), Type: arrow.BinaryTypes.String, Nullable: true})
		cols = append(cols, g.buildCategorical(col))
	}

	fields = append(fields, arrow.Field{Name: TargetName, Type: arrow.PrimitiveTypes.Int64, Nullable: false})
	cols = append(cols, g.buildInt64(target))

	for i, col := range highVals {
		fields = append(fields, arrow.Field{Name: HighMissingName(i), Type: arrow.PrimitiveTypes.Float32, Nullable: true})
		cols = append(cols, g.buildFloat32(col, highMasks[i]))
	}

	schema := arrow.NewSchema(fields, nil)
	record := array.NewRecord(schema, cols, int64(p.Rows))
	for _, col := range cols {
		col.Release()
	}
	return record, nil
}

// buildFloat32 builds a float32 array, turning masked cells into nulls.
// A nil mask means no cell is missing.
func (g *Generator) buildFloat32(values []float32, mask []bool) arrow.Array {
	b := array.NewFloat32Builder(g.alloc)
	defer b.Release()
	for r, v := range values {
		if mask != nil && mask[r] {
			b.AppendNull()
			continue
		}
		b.Append(v)
	}
	return b.NewArray()
}

// buildCategorical maps label indexes to strings; the index one past the
// label set is the null outcome.
func (g *Generator) buildCategorical(indexes []int8) arrow.Array {
	b := array.NewStringBuilder(g.alloc)
	defer b.Release()
	for _, idx := range indexes {
		if int(idx) >= len(categories) {
			b.AppendNull()
			continue
		}
		b.Append(categories[idx])
	}
	return b.NewArray()
}

func (g *Generator) buildInt64(values []int64) arrow.Array {
	b := array.NewInt64Builder(g.alloc)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewArray()
}

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
