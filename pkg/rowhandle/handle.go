// Package rowhandle defines the opaque identity token carried by every
// cloned row. It is intentionally tiny and dependency-light so that both
// the row store (which owns canonical rows) and the index tree (which
// never touches storage directly) can share one identity type without
// creating an import cycle.
package rowhandle

import "github.com/google/uuid"

// Handle locates a single canonical row within a single table. TableID
// distinguishes rows of different tables (spec.md §3's "stable identity
// token"); RowID distinguishes rows within the same table and survives
// swap-remove relocation, since it is never derived from array position.
type Handle struct {
	TableID uuid.UUID
	RowID   uuid.UUID
}

// Zero reports whether h is the unset handle, i.e. a row that has never
// been attached to a table (the idempotent re-insert guard in Table.Insert
// tests exactly this).
func (h Handle) Zero() bool {
	return h.TableID == uuid.Nil && h.RowID == uuid.Nil
}

// SameTable reports whether h and other were issued by the same table.
func (h Handle) SameTable(other Handle) bool {
	return h.TableID == other.TableID
}
