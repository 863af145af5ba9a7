package tabulardb

import "github.com/kasuganosora/tabulardb/pkg/rowindex"

// Snapshot is a read-only view over one index's tree (spec.md §1's
// read-only index-snapshot accessor for external renderers). It exposes
// only enough to walk and describe the tree; it cannot be used to
// mutate the index.
type Snapshot struct {
	level   *rowindex.Level
	columns []string
}

// Column returns the column this level of the snapshot is keyed by.
func (s Snapshot) Column() string { return s.level.Column }

// Total returns the total row count beneath this level.
func (s Snapshot) Total() int { return s.level.Total }

// Entries returns a read-only view of each entry at this level.
func (s Snapshot) Entries() []SnapshotEntry {
	out := make([]SnapshotEntry, len(s.level.Entries))
	for i, e := range s.level.Entries {
		out[i] = SnapshotEntry{entry: e}
	}
	return out
}

// SnapshotEntry is one keyed slot within a Snapshot level.
type SnapshotEntry struct {
	entry *rowindex.Entry
}

// Value returns the entry's key value.
func (e SnapshotEntry) Value() any { return e.entry.Value }

// Size returns the number of rows beneath this entry.
func (e SnapshotEntry) Size() int { return e.entry.Size }

// Subtotal returns the entry's inclusive prefix-sum size within its level.
func (e SnapshotEntry) Subtotal() int { return e.entry.Subtotal }

// IsLeaf reports whether this entry's rows are directly attached (true)
// or nested in a further sub-level (false).
func (e SnapshotEntry) IsLeaf() bool { return e.entry.Sub == nil }

// Sub returns the nested level beneath a non-leaf entry. Calling it on a
// leaf entry returns the zero Snapshot.
func (e SnapshotEntry) Sub() Snapshot {
	if e.entry.Sub == nil {
		return Snapshot{}
	}
	return Snapshot{level: e.entry.Sub}
}

// RowCount returns the number of canonical rows directly attached to a
// leaf entry (zero for a non-leaf entry).
func (e SnapshotEntry) RowCount() int {
	if e.entry.Sub != nil {
		return 0
	}
	return len(e.entry.Rows)
}
