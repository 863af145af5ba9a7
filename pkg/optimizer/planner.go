package optimizer

import (
	"math"

	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

// ComputeCost evaluates the full-scan baseline and every candidate index
// against criteria, returning the minimum-cost descriptor (spec.md §4.8).
// The baseline is seeded first and only replaced on a strictly lower
// cost, so ties resolve to the baseline — required for deterministic
// planner choice under spec.md §8's testable properties.
func ComputeCost(rowCount int, criteria []query.Criterion, indexes []*rowindex.Index) Descriptor {
	best := Baseline(rowCount, criteria)
	for _, idx := range indexes {
		candidate := evaluateIndex(idx, criteria)
		if candidate.Cost < best.Cost {
			best = candidate
		}
	}
	return best
}

// criterionByColumn returns the first criterion (if any) whose Column
// equals col; the core spec's planner only ever descends using one
// criterion per indexed column.
func criterionByColumn(criteria []query.Criterion, col string) (query.Criterion, bool) {
	for _, c := range criteria {
		if c.Column == col {
			return c, true
		}
	}
	return query.Criterion{}, false
}

func evaluateIndex(idx *rowindex.Index, criteria []query.Criterion) Descriptor {
	columns := idx.Columns()
	level := idx.Root()
	cost := 0.0

	var usedCols []string
	synthetic := false
	synTotal, synEntries := 0, 0

	for _, col := range columns {
		crit, ok := criterionByColumn(criteria, col)
		if !ok {
			break // halt descent: remaining columns resolve via residual filtering
		}
		usedCols = append(usedCols, col)

		if !synthetic {
			n := len(level.Entries)
			cost += log2(n)
			expectedRows, matchedEntries, next, extraCost := probeLevel(level, crit)
			cost += extraCost
			if next != nil {
				level = next
				continue
			}
			synthetic = true
			synTotal, synEntries = expectedRows, matchedEntries
			continue
		}

		// Statistical branch (spec.md §4.8): past the first non-exact
		// column there is no longer a single real child subindex to
		// probe, only a synthetic (length, total) pair; subsequent
		// columns are estimated by ratio rather than by searching real
		// entries.
		cost += 1
		synTotal, synEntries = statisticalStep(crit.Op, synTotal, synEntries)
	}

	expectedRows := level.Total
	if synthetic {
		expectedRows = synTotal
	} else if len(usedCols) > 0 {
		// The last real descent step already narrowed to an exact-match
		// entry's nested data; `level` now points at that entry's own
		// (sub)level, whose Total is the expected row count.
		expectedRows = level.Total
	}

	used, unused := splitCriteria(criteria, usedCols)
	residualUnit := totalSingleRowCost(unused) + 1
	cost += float64(expectedRows) * residualUnit

	return Descriptor{
		Cost:           cost,
		CriteriaUsed:   used,
		CriteriaUnused: unused,
		Signature:      idx.Signature(),
		Index:          idx,
	}
}

// probeLevel evaluates one real column probe per the operator table in
// spec.md §4.8, returning the predicted expected row count, the matched
// entry count, (for an exact `==` hit on a non-leaf entry) the next real
// level to keep descending into, and any cost surcharge on top of the
// base per-column `log2(n)` search term evaluateIndex already charges.
// next is nil whenever the operator is not `==` (a single-element `in`
// is probed as `==`), or `==` has no exact match, or the match landed on
// a leaf — at that point cost estimation
// switches to the statistical branch. extraCost is nonzero only for
// `between` (a second probe) and multi-element `in` (one probe per
// distinct value), per spec.md §4.8's cost table.
func probeLevel(level *rowindex.Level, crit query.Criterion) (expectedRows, matchedEntries int, next *rowindex.Level, extraCost float64) {
	entries := level.Entries
	n := len(entries)
	total := level.Total

	switch crit.Op {
	case query.EQ:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		if !exact {
			return 0, 0, nil, 0
		}
		e := entries[idx]
		return e.Size, 1, e.Sub, 0

	case query.NE:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		if exact {
			return total - entries[idx].Size, n - 1, nil, 0
		}
		return total, n, nil, 0

	case query.LE, query.LT:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		upTo := idx - 1
		if crit.Op == query.LE && exact {
			upTo = idx
		}
		rows := 0
		if upTo >= 0 {
			rows = entries[upTo].Subtotal
		}
		return rows, upTo + 1, nil, 0

	case query.GE, query.GT:
		ltRows, ltMatched, _, _ := probeLevel(level, query.Criterion{Op: query.LT, Value: crit.Value})
		var excludeRows int
		var excludeMatched int
		if crit.Op == query.GE {
			excludeRows, excludeMatched = ltRows, ltMatched
		} else {
			leRows, leMatched, _, _ := probeLevel(level, query.Criterion{Op: query.LE, Value: crit.Value})
			excludeRows, excludeMatched = leRows, leMatched
		}
		return total - excludeRows, n - excludeMatched, nil, 0

	case query.Between:
		r, _ := crit.Value.(*value.Range)
		if r == nil {
			return total, n, nil, 0
		}
		lowRows, lowMatched, _, _ := probeLevel(level, query.Criterion{Op: query.LT, Value: r.Start})
		var highRows, highMatched int
		if r.Exclusive {
			highRows, highMatched, _, _ = probeLevel(level, query.Criterion{Op: query.LT, Value: r.End})
		} else {
			highRows, highMatched, _, _ = probeLevel(level, query.Criterion{Op: query.LE, Value: r.End})
		}
		rows := highRows - lowRows
		if rows < 0 {
			rows = 0
		}
		// Two probes (start and end): the base term above already paid
		// for one, so charge a second log2(n) search here.
		return rows, highMatched - lowMatched, nil, log2(n)

	case query.In:
		s, _ := crit.Value.(*value.Set)
		if s == nil {
			return total, n, nil, 0
		}
		distinct := s.Ordered()
		if len(distinct) <= 1 {
			if len(distinct) == 0 {
				return 0, 0, nil, 0
			}
			return probeLevel(level, query.Criterion{Op: query.EQ, Value: distinct[0]})
		}
		k := len(distinct)
		estimate := int(math.Ceil(float64(k) * float64(total) / float64(maxInt(n, 1))))
		if estimate > total {
			estimate = total
		}
		// log2(n)*(log2(k)-1): the base term already paid for one probe,
		// this scales the remaining k-1 probes' search cost logarithmically.
		extra := log2(n) * (math.Log2(float64(k)) - 1)
		return estimate, k, nil, extra

	default:
		return total, n, nil, 0
	}
}

// statisticalStep estimates the next (total, entries) pair once cost
// estimation has left real index data, per spec.md §4.8's ratio table:
// `==` narrows to one average bucket, `<`/`>`/`!=` keep roughly 2/3 of
// the rows, and `between` keeps roughly 1/3.
func statisticalStep(op query.Operator, total, entries int) (int, int) {
	bucket := 1
	if entries > 0 {
		bucket = total / entries
		if bucket < 1 {
			bucket = 1
		}
	}
	switch op {
	case query.EQ:
		return bucket, 1
	case query.Between:
		n := total / 3
		return n, maxInt(entries/3, 1)
	default:
		n := total * 2 / 3
		return n, maxInt(entries*2/3, 1)
	}
}

func splitCriteria(criteria []query.Criterion, usedCols []string) (used, unused []query.Criterion) {
	usedSet := make(map[string]bool, len(usedCols))
	for _, c := range usedCols {
		usedSet[c] = true
	}
	for _, c := range criteria {
		if usedSet[c.Column] {
			used = append(used, c)
		} else {
			unused = append(unused, c)
		}
	}
	return used, unused
}

func log2(n int) float64 {
	if n < 1 {
		return 0
	}
	return math.Log2(float64(n))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
