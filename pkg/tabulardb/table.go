// Package tabulardb implements the Table (spec.md §4.10, component C8):
// the public facade that owns a table's rows and indexes and coordinates
// insert/update/remove/query against the row store, index tree, planner
// and executor packages. Grounded on the teacher's pkg/api/db.go facade
// shape (config-with-defaults construction, injected Logger, lifecycle
// state) generalized from a SQL-session facade to a single generic table.
package tabulardb

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/kasuganosora/tabulardb/pkg/optimizer"
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
	"github.com/kasuganosora/tabulardb/pkg/rowstore"
)

var columnNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Table owns a fixed column list, the canonical row vector, and the set
// of indexes defined over it (spec.md §3). All operations are guarded by
// a mutex: the core spec is single-threaded/cooperative, but spec.md §5
// requires that multi-thread callers serialize behind a lock, and a
// library should not force every caller to build that lock themselves.
type Table struct {
	mu sync.Mutex

	id      uuid.UUID
	columns []string
	colSet  map[string]bool

	store   *rowstore.Store
	indexes map[string]*rowindex.Index // signature -> index
	order   []string                   // signature insertion order, for Indexes() listing

	dropped  bool
	paranoia bool
	verbose  bool
	logger   Logger
	events   EventSink
}

// NewTable creates a table over the given column list (spec.md §6).
// Fails with InvalidColumns if columns is empty, has duplicates, or
// contains a syntactically invalid name.
func NewTable(columns []string, cfg *Config) (*Table, error) {
	if err := validateColumnList(columns); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}

	id := uuid.New()
	t := &Table{
		id:       id,
		columns:  append([]string(nil), columns...),
		colSet:   colSet,
		store:    rowstore.New(id),
		indexes:  make(map[string]*rowindex.Index),
		paranoia: cfg.Paranoia,
		verbose:  cfg.Verbose,
		logger:   cfg.Logger,
		events:   cfg.Events,
	}
	return t, nil
}

func validateColumnList(columns []string) error {
	if len(columns) == 0 {
		return NewError(ErrCodeInvalidColumns, "a table requires at least one column", nil)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !columnNamePattern.MatchString(c) {
			return NewError(ErrCodeInvalidColumns, fmt.Sprintf("invalid column name %q", c), nil)
		}
		if seen[c] {
			return NewError(ErrCodeInvalidColumns, fmt.Sprintf("duplicate column name %q", c), nil)
		}
		seen[c] = true
	}
	return nil
}

// requireLive fails with TableDropped once Drop has been called
// (spec.md §4.11's table state machine: live -> dropped is the only
// transition, and every operation in dropped fails).
func (t *Table) requireLive() error {
	if t.dropped {
		return NewError(ErrCodeTableDropped, "operation attempted on a dropped table", nil)
	}
	return nil
}

// Columns returns the table's fixed column list.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) hasColumn(name string) bool {
	return t.colSet[name]
}

// Paranoia reports (and optionally sets) the paranoia flag, which
// triggers ValidateIndex automatically after every mutation.
func (t *Table) Paranoia(on ...bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(on) > 0 {
		t.paranoia = on[0]
	}
	return t.paranoia
}

// Verbose reports (and optionally sets) the verbose flag, which gates
// Debug-level logging of mutation/query events.
func (t *Table) Verbose(on ...bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(on) > 0 {
		t.verbose = on[0]
	}
	return t.verbose
}

func (t *Table) debugf(format string, args ...interface{}) {
	if t.verbose && t.logger != nil {
		t.logger.Debug(format, args...)
	}
}

// GetCount returns the number of rows currently stored.
func (t *Table) GetCount() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return 0, err
	}
	return t.store.Len(), nil
}

// GetRows returns a fresh clone of every row currently stored.
func (t *Table) GetRows() ([]*Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLive(); err != nil {
		return nil, err
	}
	records := t.store.All()
	out := make([]*Row, len(records))
	for i, rec := range records {
		out[i] = cloneFromRecord(t.store, rec)
	}
	return out, nil
}

func (t *Table) allIndexRows() []rowindex.Row {
	records := t.store.All()
	out := make([]rowindex.Row, len(records))
	for i, rec := range records {
		out[i] = rec
	}
	return out
}

func (t *Table) indexList() []*rowindex.Index {
	out := make([]*rowindex.Index, 0, len(t.order))
	for _, sig := range t.order {
		out = append(out, t.indexes[sig])
	}
	return out
}

// resolveHandle validates a row's back-reference against this table,
// failing with WrongTable when it was cloned from a different table (or
// was never attached) per spec.md §7.
func (t *Table) resolveHandle(h rowhandle.Handle) (*rowstore.Record, error) {
	if h.TableID != t.id {
		return nil, NewError(ErrCodeWrongTable, "row was not cloned from this table", nil)
	}
	rec, ok := t.store.Resolve(h)
	if !ok {
		return nil, NewError(ErrCodeWrongTable, "row's canonical record no longer exists", nil)
	}
	return rec, nil
}
