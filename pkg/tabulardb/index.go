package tabulardb

import (
	"fmt"

	"github.com/kasuganosora/tabulardb/pkg/optimizer"
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
)

// Index is the public handle for one of a table's indexes (spec.md §6).
// Requesting an existing signature returns the same handle's underlying
// index rather than creating a duplicate.
type Index struct {
	table *Table
	inner *rowindex.Index
}

// Signature returns the bracketed, comma-joined column list identifying
// this index (spec.md §3's "Signature").
func (ix *Index) Signature() string { return ix.inner.Signature() }

// Columns returns the index's ordered column list.
func (ix *Index) Columns() []string { return ix.inner.Columns() }

// ComputeCost plans criteria against this index and the full-scan
// baseline (spec.md §6), returning the cheaper of the two descriptors:
// when the baseline costs no more than this index, the baseline
// descriptor is returned rather than this index's own estimate. Fails
// with IndexDropped if Drop has already been called.
func (ix *Index) ComputeCost(criteria []query.Criterion) (optimizer.Descriptor, error) {
	if ix.inner.Dropped() {
		return optimizer.Descriptor{}, NewError(ErrCodeIndexDropped, "index has been dropped", nil)
	}
	ix.table.mu.Lock()
	defer ix.table.mu.Unlock()
	count := ix.table.store.Len()
	return optimizer.ComputeCost(count, criteria, []*rowindex.Index{ix.inner}), nil
}

// ValidateIndex checks this index's structural invariants (spec.md §3's
// invariants 1-4) and that it holds as many rows as the owning table's
// row store, which is why this delegates to Table.validateOne rather than
// rowindex.Index alone. Row identities are not compared: only the counts.
func (ix *Index) ValidateIndex() error {
	ix.table.mu.Lock()
	defer ix.table.mu.Unlock()
	return ix.table.validateOne(ix)
}

// Drop removes this index from the owning table and releases its nested
// structure (spec.md §4.11).
func (ix *Index) Drop() error {
	ix.table.mu.Lock()
	defer ix.table.mu.Unlock()
	if err := ix.table.requireLive(); err != nil {
		return err
	}
	sig := ix.inner.Signature()
	if _, ok := ix.table.indexes[sig]; !ok {
		return NewError(ErrCodeIndexDropped, "index has already been dropped", nil)
	}
	delete(ix.table.indexes, sig)
	for i, s := range ix.table.order {
		if s == sig {
			ix.table.order = append(ix.table.order[:i], ix.table.order[i+1:]...)
			break
		}
	}
	ix.inner.Drop()
	ix.table.debugf("index %s dropped", sig)
	return nil
}

// Snapshot returns a read-only view of the index's tree, suitable for an
// external renderer (spec.md §1's "read-only index-snapshot accessor for
// renderers" — deliberately the only way a renderer can see index
// internals, since pretty-printing/HTML rendering is itself out of core
// scope).
func (ix *Index) Snapshot() Snapshot {
	return Snapshot{level: ix.inner.Root(), columns: ix.inner.Columns()}
}

// Index returns the handle for the index over columns, creating it (via
// a bulk build over all current rows) if it does not already exist.
// Requesting an existing signature returns the existing index
// (spec.md §3).
func (t *Table) Index(columns ...string) (*Index, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, NewError(ErrCodeInvalidColumns, "index requires at least one column", nil)
	}
	for _, c := range columns {
		if !t.hasColumn(c) {
			return nil, NewError(ErrCodeInvalidColumns, fmt.Sprintf("index column %q is not a member of the table's columns", c), nil)
		}
	}

	sig := rowindex.Signature(columns)
	if existing, ok := t.indexes[sig]; ok {
		return &Index{table: t, inner: existing}, nil
	}

	built := rowindex.Build(columns, t.allIndexRows())
	t.indexes[sig] = built
	t.order = append(t.order, sig)
	t.debugf("index %s built over %d row(s)", sig, t.store.Len())
	return &Index{table: t, inner: built}, nil
}

// Indexes returns the column list of every currently defined index
// (spec.md §6's "index() with no argument -> list of current index
// signatures").
func (t *Table) Indexes() ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(t.order))
	for _, sig := range t.order {
		out = append(out, t.indexes[sig].Columns())
	}
	return out, nil
}

// ValidateIndex checks every index's structural invariants 1-4 (spec.md §3
// and §8 property 3) and that each index holds as many rows as the table;
// row identities are not compared. The same checks run automatically
// after every mutation when paranoia is enabled.
func (t *Table) ValidateIndex() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return err
	}
	for _, sig := range t.order {
		idx := t.indexes[sig]
		if err := idx.Validate(); err != nil {
			return WrapError(err, ErrCodeIndexCorruption, "validateIndex: "+sig)
		}
		if got := len(idx.CollectRows()); got != t.store.Len() {
			return NewError(ErrCodeIndexCorruption, "validateIndex: "+sig+" holds a different row count than the table", nil)
		}
	}
	return nil
}

func (t *Table) validateOne(ix *Index) error {
	if err := t.requireLive(); err != nil {
		return err
	}
	if err := ix.inner.Validate(); err != nil {
		return WrapError(err, ErrCodeIndexCorruption, "validateIndex: "+ix.inner.Signature())
	}
	if got := len(ix.inner.CollectRows()); got != t.store.Len() {
		return NewError(ErrCodeIndexCorruption, "validateIndex: "+ix.inner.Signature()+" holds a different row count than the table", nil)
	}
	return nil
}

// validateAfterMutation runs ValidateIndex when paranoia is enabled,
// logging and returning an IndexCorruption error if any invariant fails.
func (t *Table) validateAfterMutation() error {
	if !t.paranoia {
		return nil
	}
	for _, sig := range t.order {
		idx := t.indexes[sig]
		if err := idx.Validate(); err != nil {
			wrapped := WrapError(err, ErrCodeIndexCorruption, "paranoia check failed for "+sig)
			if t.logger != nil {
				t.logger.Error("%v", wrapped)
			}
			return wrapped
		}
		if got := len(idx.CollectRows()); got != t.store.Len() {
			wrapped := NewError(ErrCodeIndexCorruption, "paranoia check: "+sig+" holds a different row count than the table", nil)
			if t.logger != nil {
				t.logger.Error("%v", wrapped)
			}
			return wrapped
		}
	}
	return nil
}
