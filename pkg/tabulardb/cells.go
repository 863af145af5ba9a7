package tabulardb

import "github.com/kasuganosora/tabulardb/pkg/value"

// cellsEqual compares two cell values under the shared total order so
// that, e.g., an int and the equivalent float64 are recognized as
// unchanged (spec.md §8 property 5: updating a row whose values are
// unchanged must be a no-op).
func cellsEqual(a, b any) bool {
	return value.Compare(a, b) == 0
}
