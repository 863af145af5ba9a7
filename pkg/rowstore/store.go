// Package rowstore implements the row store (spec.md §3's C3): the
// canonical array of rows a table owns, stable per-row identity tokens,
// and swap-remove deletion. Grounded on the teacher's in-memory row
// storage (pkg/resource/memory) generalized to the core spec's generic
// column model instead of a fixed SQL row format.
package rowstore

import (
	"github.com/google/uuid"

	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
)

// Cells is the raw mapping from column name to cell value that makes up
// one row's data (spec.md §3's "Row").
type Cells map[string]any

// Clone returns an independent copy of c; callers may mutate the result
// freely without affecting the store (spec.md §6's clone-isolation
// contract).
func (c Cells) Clone() Cells {
	out := make(Cells, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Get implements value.Row, letting Cells act directly as a comparator
// projection operand during index bulk-build and residual filtering.
func (c Cells) Get(column string) any {
	return c[column]
}

// Record is the canonical storage for one row: mutable position (used for
// swap-remove bookkeeping), a stable handle, and the current cell values.
// Indexes hold pointers to the *Record itself rather than copies, so a
// record's identity survives both position changes and cell updates;
// merge-remove deletes leaf entries by comparing record handles.
type Record struct {
	handle   rowhandle.Handle
	position int
	cells    Cells
}

// Handle returns the record's stable identity token.
func (r *Record) Handle() rowhandle.Handle { return r.handle }

// Get implements value.Row over the record's current cell values.
func (r *Record) Get(column string) any { return r.cells[column] }

// Cells returns a clone of the record's current cell values.
func (r *Record) Cells() Cells { return r.cells.Clone() }

// SetCells overwrites the record's canonical cell values with a clone of
// cells (spec.md §4.10: "overwrite the canonical row in place").
func (r *Record) SetCells(cells Cells) { r.cells = cells.Clone() }

// Store owns the canonical row array for a single table.
type Store struct {
	tableID uuid.UUID
	records []*Record
	byID    map[uuid.UUID]*Record
}

// New creates an empty store bound to tableID.
func New(tableID uuid.UUID) *Store {
	return &Store{
		tableID: tableID,
		byID:    make(map[uuid.UUID]*Record),
	}
}

// Insert appends a new canonical row built from cells and returns the
// *Record now owning it (spec.md §4.3: "Insertion appends a canonical row
// to the end and gives it position n-1").
func (s *Store) Insert(cells Cells) *Record {
	rec := &Record{
		handle:   rowhandle.Handle{TableID: s.tableID, RowID: uuid.New()},
		position: len(s.records),
		cells:    cells.Clone(),
	}
	s.records = append(s.records, rec)
	s.byID[rec.handle.RowID] = rec
	return rec
}

// Resolve locates the canonical record for handle, failing with ok=false
// if it belongs to a different table or no longer exists (the latter
// happens when a caller resubmits a clone of an already-removed row).
func (s *Store) Resolve(handle rowhandle.Handle) (*Record, bool) {
	if handle.TableID != s.tableID {
		return nil, false
	}
	rec, ok := s.byID[handle.RowID]
	return rec, ok
}

// Remove deletes the record for handle using swap-with-last-then-shrink
// (spec.md §4.3): the victim's slot is overwritten by the last element,
// whose stored position is updated, and the tail is discarded. Returns
// the removed record (still usable by callers needing its last cell
// values, e.g. to drive index merge-remove) and ok=false if handle does
// not resolve.
func (s *Store) Remove(handle rowhandle.Handle) (*Record, bool) {
	rec, ok := s.Resolve(handle)
	if !ok {
		return nil, false
	}
	last := len(s.records) - 1
	victimPos := rec.position
	if victimPos != last {
		moved := s.records[last]
		s.records[victimPos] = moved
		moved.position = victimPos
	}
	s.records = s.records[:last]
	delete(s.byID, handle.RowID)
	return rec, true
}

// Len returns the number of rows currently stored.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns the store's current records in array order. Callers must
// not retain the slice across further mutation of the store.
func (s *Store) All() []*Record {
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}
