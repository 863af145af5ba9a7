// Package rowindex implements the multi-level ordered index tree
// (spec.md §3/§4.4-§4.7, component C4): bulk build, incremental
// merge-add/merge-remove, the half-integer-equivalent binary search, and
// structural validation. Grounded on the teacher's composite B-tree index
// (pkg/resource/memory/index.go, IndexManager's composite-column support)
// generalized to the core spec's nested-subtotal tree shape.
package rowindex

import (
	"fmt"
	"sort"

	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

// Row is the minimal shape the index needs from a canonical row: column
// projection (to sort/group by) and a stable identity (to remove leaf
// entries by reference rather than by re-comparing all columns).
type Row interface {
	Get(column string) any
	Handle() rowhandle.Handle
}

// Entry is one keyed slot at a level of the tree (spec.md §3).
type Entry struct {
	Value    any
	Size     int
	Subtotal int

	// Exactly one of Sub/Rows is populated, depending on whether this
	// entry belongs to a non-leaf or leaf level.
	Sub  *Level
	Rows []Row
}

func (e *Entry) leaf() bool { return e.Sub == nil }

// Level is a sorted sequence of entries over one indexed column.
type Level struct {
	Column  string
	Entries []*Entry
	Total   int
}

// Index is a tree over an ordered, non-empty list of columns.
type Index struct {
	columns   []string
	signature string
	root      *Level
	dropped   bool
}

// Signature returns the bracketed comma-joined column list identifying
// this index (spec.md §3).
func Signature(columns []string) string {
	s := "["
	for i, c := range columns {
		if i > 0 {
			s += ","
		}
		s += c
	}
	return s + "]"
}

// Columns returns the index's column list.
func (ix *Index) Columns() []string { return append([]string(nil), ix.columns...) }

// Signature returns the index's signature string.
func (ix *Index) Signature() string { return ix.signature }

// Root returns the index's top-level sequence, for read-only traversal by
// the planner/executor.
func (ix *Index) Root() *Level { return ix.root }

// Dropped reports whether Drop has been called.
func (ix *Index) Dropped() bool { return ix.dropped }

// Build constructs a new index over columns from the given rows
// (spec.md §4.4): bulk build, used both for initial index creation and to
// build the right-hand side of a merge.
func Build(columns []string, rows []Row) *Index {
	return &Index{
		columns:   append([]string(nil), columns...),
		signature: Signature(columns),
		root:      buildLevel(columns, 0, rows),
	}
}

// Drop releases the index's nested structure depth-first (spec.md §4.11).
func (ix *Index) Drop() {
	var release func(level *Level)
	release = func(level *Level) {
		if level == nil {
			return
		}
		for _, e := range level.Entries {
			release(e.Sub)
			e.Sub = nil
			e.Rows = nil
		}
		level.Entries = nil
		level.Total = 0
	}
	release(ix.root)
	ix.root = nil
	ix.dropped = true
}

func buildLevel(columns []string, depth int, rows []Row) *Level {
	col := columns[depth]
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value.Compare(sorted[i].Get(col), sorted[j].Get(col)) < 0
	})

	level := &Level{Column: col}
	i := 0
	running := 0
	leaf := depth == len(columns)-1
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && value.Compare(sorted[i].Get(col), sorted[j].Get(col)) == 0 {
			j++
		}
		group := sorted[i:j]
		entry := &Entry{Value: sorted[i].Get(col)}
		if leaf {
			entry.Rows = append([]Row(nil), group...)
			entry.Size = len(group)
		} else {
			entry.Sub = buildLevel(columns, depth+1, group)
			entry.Size = entry.Sub.Total
		}
		running += entry.Size
		entry.Subtotal = running
		level.Entries = append(level.Entries, entry)
		i = j
	}
	level.Total = running
	return level
}
