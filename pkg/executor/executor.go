// Package executor implements the executor (spec.md §4.9, component C7):
// it walks the planner's chosen access path to produce a candidate row
// set, then applies any residual predicates as a linear filter. Grounded
// on the teacher's executor-side filter application
// (pkg/optimizer/index_cost_estimator.go's scan-cost consumers and
// sqlexec's plan execution), generalized to the core spec's reduce
// semantics.
package executor

import (
	"fmt"

	"github.com/kasuganosora/tabulardb/pkg/optimizer"
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

// Scan executes descriptor against the table's full row list, returning
// the rows that satisfy every criterion. allRows is used directly only
// for the baseline path; an index path instead walks descriptor.Index.
//
// The executor never partially succeeds (spec.md §7): a reduce or filter
// error aborts the call with no partial result.
//
// The index walk applies at most one criterion per column and stops at
// the first column whose operator is not an exact `==` hit, so on an
// index path the used criteria are checked again by the residual filter
// together with the unused ones.
func Scan(descriptor optimizer.Descriptor, allRows []rowindex.Row) ([]rowindex.Row, error) {
	var candidates []rowindex.Row
	residual := descriptor.CriteriaUnused
	if descriptor.IsBaseline() {
		candidates = allRows
	} else {
		candidates = reduce(descriptor.Index, descriptor.CriteriaUsed)
		residual = append(append([]query.Criterion(nil), descriptor.CriteriaUsed...), descriptor.CriteriaUnused...)
	}
	return applyResidual(candidates, residual)
}

// reduce walks the real index using the same per-column, per-operator
// logic the planner used to estimate cost, but returns the matching leaf
// rows instead of a count (spec.md §4.9).
func reduce(idx *rowindex.Index, used []query.Criterion) []rowindex.Row {
	level := idx.Root()
	columns := idx.Columns()

	for i, col := range columns {
		crit, ok := criterionFor(used, col)
		if !ok {
			// No criterion consumed this column: flatten everything from
			// here down and stop (spec.md §4.9's "flattens the remaining
			// subindex levels into a flat row list").
			return collect(level)
		}

		rows, next := reduceLevel(level, crit)
		if next == nil || i == len(columns)-1 {
			return rows
		}
		level = next
	}
	return collect(level)
}

// reduceLevel applies one criterion's operator to level, returning either
// the matched rows directly (when the column is the last one consumed,
// or the operator is not an exact match) or, for an exact `==` hit on a
// non-leaf entry, nil rows plus the next level to keep descending into.
func reduceLevel(level *rowindex.Level, crit query.Criterion) (rows []rowindex.Row, next *rowindex.Level) {
	entries := level.Entries

	switch crit.Op {
	case query.EQ:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		if !exact {
			return nil, nil
		}
		e := entries[idx]
		if e.Sub != nil {
			return nil, e.Sub
		}
		return append([]rowindex.Row(nil), e.Rows...), nil

	case query.NE:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		var out []rowindex.Row
		for i, e := range entries {
			if exact && i == idx {
				continue
			}
			out = append(out, flattenEntry(e)...)
		}
		return out, nil

	case query.LE, query.LT:
		// idx is the insertion point: entries[0:idx] are strictly less
		// than crit.Value, and entries[idx] == crit.Value when exact.
		// `<` always excludes the exact match; `<=` includes it.
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		end := idx
		if crit.Op == query.LE && exact {
			end = idx + 1
		}
		return flattenRange(entries, 0, end), nil

	case query.GE, query.GT:
		idx, exact := rowindex.Search(entries, crit.Value, value.Compare)
		start := idx
		if crit.Op == query.GT && exact {
			start = idx + 1
		}
		return flattenRange(entries, start, len(entries)), nil

	case query.Between:
		r, _ := crit.Value.(*value.Range)
		if r == nil {
			return collect(level), nil
		}
		startIdx, _ := rowindex.Search(entries, r.Start, value.Compare)
		endIdx, endExact := rowindex.Search(entries, r.End, value.Compare)
		begin := startIdx
		if begin < 0 {
			begin = 0
		}
		end := endIdx
		if endExact && !r.Exclusive {
			end = endIdx + 1
		}
		if end < begin {
			end = begin
		}
		return flattenRange(entries, begin, end), nil

	case query.In:
		s, _ := crit.Value.(*value.Set)
		if s == nil {
			return nil, nil
		}
		var out []rowindex.Row
		for _, v := range s.Ordered() {
			idx, exact := rowindex.Search(entries, v, value.Compare)
			if exact {
				out = append(out, flattenEntry(entries[idx])...)
			}
		}
		return out, nil

	default:
		return collect(level), nil
	}
}

func flattenRange(entries []*rowindex.Entry, start, end int) []rowindex.Row {
	if start < 0 {
		start = 0
	}
	if end > len(entries) {
		end = len(entries)
	}
	var out []rowindex.Row
	for i := start; i < end; i++ {
		out = append(out, flattenEntry(entries[i])...)
	}
	return out
}

func flattenEntry(e *rowindex.Entry) []rowindex.Row {
	if e.Sub != nil {
		return collect(e.Sub)
	}
	return e.Rows
}

func collect(level *rowindex.Level) []rowindex.Row {
	var out []rowindex.Row
	for _, e := range level.Entries {
		out = append(out, flattenEntry(e)...)
	}
	return out
}

func criterionFor(criteria []query.Criterion, col string) (query.Criterion, bool) {
	for _, c := range criteria {
		if c.Column == col {
			return c, true
		}
	}
	return query.Criterion{}, false
}

// applyResidual filters candidates by every criterion in unused,
// comparing each row's column value against the criterion's operand via
// the shared value comparator (spec.md §4.9).
func applyResidual(candidates []rowindex.Row, unused []query.Criterion) ([]rowindex.Row, error) {
	if len(unused) == 0 {
		return candidates, nil
	}
	out := make([]rowindex.Row, 0, len(candidates))
	for _, row := range candidates {
		matched, err := matchesAll(row, unused)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, row)
		}
	}
	return out, nil
}

func matchesAll(row rowindex.Row, criteria []query.Criterion) (bool, error) {
	for _, c := range criteria {
		ok, err := matches(row, c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matches(row rowindex.Row, c query.Criterion) (bool, error) {
	cell := row.Get(c.Column)
	switch c.Op {
	case query.LT:
		return value.Compare(cell, c.Value) < 0, nil
	case query.LE:
		return value.Compare(cell, c.Value) <= 0, nil
	case query.EQ:
		return value.Compare(cell, c.Value) == 0, nil
	case query.NE:
		return value.Compare(cell, c.Value) != 0, nil
	case query.GE:
		return value.Compare(cell, c.Value) >= 0, nil
	case query.GT:
		return value.Compare(cell, c.Value) > 0, nil
	case query.Between:
		r, ok := c.Value.(*value.Range)
		if !ok {
			return false, newUnknownOperandError(c)
		}
		return r.Includes(cell), nil
	case query.In:
		s, ok := c.Value.(*value.Set)
		if !ok {
			return false, newUnknownOperandError(c)
		}
		return s.Includes(cell), nil
	default:
		return false, newUnknownOperatorError(c)
	}
}

func newUnknownOperandError(c query.Criterion) error {
	return fmt.Errorf("residual filter: operator %q on column %q has the wrong operand type %T", c.Op, c.Column, c.Value)
}

func newUnknownOperatorError(c query.Criterion) error {
	return fmt.Errorf("residual filter: unknown operator %q on column %q", c.Op, c.Column)
}
