package generator

import (
	"fmt"
	"strings"
)

// TargetName is the binary label column appended to every table.
const TargetName = "target"

// Column names carry zero-padded 4-digit suffixes so no group can collide
// with itself and consumers can match groups by prefix.

func NumericName(i int) string {
	return fmt.Sprintf("num_%04d", i)
}

func CorrelatedName(i int) string {
	return fmt.Sprintf("num_corr_%04d", i)
}

func CategoricalName(i int) string {
	return fmt.Sprintf("cat_%04d", i)
}

func HighMissingName(i int) string {
	return fmt.Sprintf("high_missing_%04d", i)
}

// IsPlainNumeric reports whether a column name belongs to the plain numeric
// group. Correlated columns share the num_ prefix and must be excluded.
func IsPlainNumeric(name string) bool {
	return strings.HasPrefix(name, "num_") && !strings.HasPrefix(name, "num_corr_")
}

// Categories returns the categorical label set, without the null outcome.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
