package tabulardb

import "github.com/kasuganosora/tabulardb/pkg/rowindex"

// IndexStats summarizes one index's shape, for diagnostics/tests rather
// than for planning (the planner works directly off the rowindex tree).
type IndexStats struct {
	Signature string
	Columns   []string
	RowCount  int
	Depth     int
}

// Stats describes the table's current row count and the shape of each of
// its indexes (spec.md's supplemented diagnostics surface, grounded on
// the teacher's pkg/api/db.go Stats()/Status() reporting).
type Stats struct {
	RowCount int
	Indexes  []IndexStats
}

// Stats computes a snapshot of the table's size and index shapes.
func (t *Table) Stats() (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return Stats{}, err
	}

	out := Stats{RowCount: t.store.Len()}
	for _, sig := range t.order {
		idx := t.indexes[sig]
		out.Indexes = append(out.Indexes, IndexStats{
			Signature: idx.Signature(),
			Columns:   idx.Columns(),
			RowCount:  len(idx.CollectRows()),
			Depth:     levelDepth(idx.Root()),
		})
	}
	return out, nil
}

// levelDepth counts the number of nested Level layers from root to leaf,
// following the first entry at each level (every entry at a given level
// shares the same leaf-or-not shape, per rowindex's structural invariants).
func levelDepth(level *rowindex.Level) int {
	if level == nil || len(level.Entries) == 0 {
		return 0
	}
	depth := 1
	first := level.Entries[0]
	if first.Sub != nil {
		depth += levelDepth(first.Sub)
	}
	return depth
}
