package tabulardb

// Drop transitions the table to the dropped state (spec.md §4.11): every
// subsequent operation, on the table or on any of its indexes, fails with
// TableDropped/IndexDropped. Dropping the table also drops all of its
// indexes (spec.md §3).
func (t *Table) Drop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return err
	}
	for _, sig := range t.order {
		t.indexes[sig].Drop()
	}
	t.indexes = nil
	t.order = nil
	t.dropped = true
	t.debugf("table dropped")
	return nil
}
