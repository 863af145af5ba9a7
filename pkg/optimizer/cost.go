package optimizer

import (
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

// SingleRowCost returns the single-row evaluation cost of one criterion
// (spec.md §4.8): base 1, +1 for between (two comparisons), and
// |value|-1 for in (one comparison per element beyond the first).
func SingleRowCost(c query.Criterion) float64 {
	switch c.Op {
	case query.Between:
		return 2
	case query.In:
		return 1 + float64(setLen(c.Value)-1)
	default:
		return 1
	}
}

// setLen returns the element count of an `in` operand, defaulting to 1
// when it is not a *value.Set (validated elsewhere, so this is only a
// defensive fallback).
func setLen(v any) int {
	if s, ok := v.(*value.Set); ok {
		n := s.Len()
		if n < 1 {
			return 1
		}
		return n
	}
	return 1
}

func totalSingleRowCost(criteria []query.Criterion) float64 {
	total := 0.0
	for _, c := range criteria {
		total += SingleRowCost(c)
	}
	return total
}

// Baseline builds the full-scan descriptor (spec.md §4.8): cost is
// |rows| times the summed single-row cost of every criterion, since a
// scan must evaluate every criterion against every row with no index
// assistance.
func Baseline(rowCount int, criteria []query.Criterion) Descriptor {
	return Descriptor{
		Cost:           float64(rowCount) * totalSingleRowCost(criteria),
		CriteriaUnused: append([]query.Criterion(nil), criteria...),
	}
}
