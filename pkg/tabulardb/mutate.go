package tabulardb

import (
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
)

// Insert adds new rows to the table (spec.md §4.10). Rows that already
// carry a table back-reference are skipped (the idempotent re-insert
// guard), so passing a previously returned Row back into Insert is a
// safe no-op rather than a duplicate. Returns a fresh clone for each row
// actually inserted, in the same relative order as the survivors of the
// guard.
func (t *Table) Insert(rows ...*Row) ([]*Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return nil, err
	}

	var inserted []*Row
	var indexRows []rowindex.Row
	for _, row := range rows {
		if row.Attached() {
			continue
		}
		rec := t.store.Insert(row.Cells)
		row.handle = rec.Handle()
		row.store = t.store
		clone := cloneFromRecord(t.store, rec)
		inserted = append(inserted, clone)
		indexRows = append(indexRows, rec)
	}

	if len(indexRows) > 0 {
		for _, idx := range t.indexList() {
			idx.MergeAdd(indexRows)
		}
	}

	t.debugf("insert: %d row(s) added (%d skipped as already attached)", len(inserted), len(rows)-len(inserted))
	if t.events != nil {
		t.events.OnInsert(inserted)
	}
	if err := t.validateAfterMutation(); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// Update writes back changes made to previously returned rows
// (spec.md §4.10). For each row, only the indexes whose column list
// intersects the set of actually-changed columns are touched (merge-
// remove the old values, merge-add the new ones); a row whose values are
// unchanged performs zero index operations, satisfying spec.md §8's
// update-locality property.
func (t *Table) Update(rows ...*Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return err
	}

	for _, row := range rows {
		rec, err := t.resolveHandle(row.handle)
		if err != nil {
			return err
		}
		changed := changedColumns(rec.Cells(), row.Cells)
		if len(changed) == 0 {
			continue
		}

		before := cloneFromRecord(t.store, rec)
		affected := t.indexesTouching(changed)
		for _, idx := range affected {
			if err := idx.MergeRemove([]rowindex.Row{rec}); err != nil {
				return WrapError(err, ErrCodeIndexCorruption, "update: failed to remove stale index entry")
			}
		}

		rec.SetCells(row.Cells)

		for _, idx := range affected {
			idx.MergeAdd([]rowindex.Row{rec})
		}

		t.debugf("update: row %s changed columns %v", rec.Handle().RowID, changed)
		if t.events != nil {
			t.events.OnUpdate(before, cloneFromRecord(t.store, rec))
		}
	}

	return t.validateAfterMutation()
}

// Remove deletes rows from the table (spec.md §4.10): resolve each row's
// canonical record via its back-reference, merge-remove it from every
// index, then swap-remove it from the row store.
func (t *Table) Remove(rows ...*Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return err
	}

	for _, row := range rows {
		rec, err := t.resolveHandle(row.handle)
		if err != nil {
			return err
		}
		for _, idx := range t.indexList() {
			if err := idx.MergeRemove([]rowindex.Row{rec}); err != nil {
				return WrapError(err, ErrCodeIndexCorruption, "remove: failed to remove index entry")
			}
		}
		if _, ok := t.store.Remove(rec.Handle()); !ok {
			return NewError(ErrCodeWrongTable, "row's canonical record no longer exists", nil)
		}
		t.debugf("remove: row %s removed", rec.Handle().RowID)
		if t.events != nil {
			t.events.OnRemove(row)
		}
	}

	return t.validateAfterMutation()
}

func (t *Table) indexesTouching(columns map[string]bool) []*rowindex.Index {
	var out []*rowindex.Index
	for _, idx := range t.indexList() {
		for _, col := range idx.Columns() {
			if columns[col] {
				out = append(out, idx)
				break
			}
		}
	}
	return out
}

func changedColumns(before, after map[string]any) map[string]bool {
	changed := make(map[string]bool)
	seen := make(map[string]bool, len(before)+len(after))
	for k := range before {
		seen[k] = true
	}
	for k := range after {
		seen[k] = true
	}
	for k := range seen {
		bv, av := before[k], after[k]
		if !cellsEqual(bv, av) {
			changed[k] = true
		}
	}
	return changed
}
