package tabulardb

import (
	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
	"github.com/kasuganosora/tabulardb/pkg/rowstore"
)

// Row is the clone type every row-returning operation hands callers
// (spec.md §6). Its handle is the opaque back-reference that lets the
// table recognize which canonical row it corresponds to; a freshly built
// Row that has never been inserted has a zero handle.
//
// Callers may mutate Cells freely; nothing is observable on the table
// side until the Row is passed to Table.Update or Table.Remove
// (spec.md §8 property 7, clone isolation).
type Row struct {
	Cells rowstore.Cells

	handle rowhandle.Handle
	store  *rowstore.Store
}

// NewRow builds a fresh, not-yet-inserted row from raw cell values.
func NewRow(cells map[string]any) *Row {
	return &Row{Cells: rowstore.Cells(cells).Clone()}
}

// Get implements value.Row/rowindex.Row, letting a *Row participate
// directly in comparator projection and index membership checks.
func (r *Row) Get(column string) any { return r.Cells[column] }

// Handle returns the row's back-reference. A zero handle means the row
// has never been attached to a table (spec.md §4.10's insert idempotency
// guard checks exactly this).
func (r *Row) Handle() rowhandle.Handle { return r.handle }

// Attached reports whether the row already carries a table back-reference.
func (r *Row) Attached() bool { return !r.handle.Zero() }

// Snapshot returns a fresh *Row built from the canonical state at call
// time (spec.md §6: "a zero-argument accessor that returns a fresh
// snapshot of the canonical state... that can be passed back to
// update"). It fails with WrongTable if the row's canonical record has
// since been removed.
func (r *Row) Snapshot() (*Row, error) {
	if r.store == nil {
		return nil, NewError(ErrCodeWrongTable, "row has never been attached to a table", nil)
	}
	rec, ok := r.store.Resolve(r.handle)
	if !ok {
		return nil, NewError(ErrCodeWrongTable, "row's canonical record no longer exists", nil)
	}
	return &Row{Cells: rec.Cells(), handle: rec.Handle(), store: r.store}, nil
}

func cloneFromRecord(store *rowstore.Store, rec *rowstore.Record) *Row {
	return &Row{Cells: rec.Cells(), handle: rec.Handle(), store: store}
}
