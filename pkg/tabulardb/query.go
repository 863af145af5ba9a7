package tabulardb

import (
	"github.com/kasuganosora/tabulardb/pkg/executor"
	"github.com/kasuganosora/tabulardb/pkg/optimizer"
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowstore"
)

// Query accumulates a conjunctive predicate chain against one table and
// executes it on GetRows (spec.md §4.10: "findWhere(col, op,
// val).and(...).getRows()"). Grounded on the teacher's fluent query
// builder (pkg/api/query.go).
type Query struct {
	table   *Table
	builder *query.Builder
}

// FindWhere starts a query with one criterion.
func (t *Table) FindWhere(column, op string, val any) *Query {
	return &Query{
		table:   t,
		builder: query.NewBuilder(t.hasColumn).Where(column, op, val),
	}
}

// And appends another criterion to the conjunction.
func (q *Query) And(column, op string, val any) *Query {
	q.builder.And(column, op, val)
	return q
}

// GetRows validates and runs the accumulated criteria through the
// planner and executor, returning cloned, matching rows.
func (q *Query) GetRows() ([]*Row, error) {
	q.table.mu.Lock()
	defer q.table.mu.Unlock()
	if err := q.table.requireLive(); err != nil {
		return nil, err
	}

	criteria, err := q.builder.Build()
	if err != nil {
		return nil, WrapError(err, ErrCodeUnknownOperator, "invalid query")
	}

	descriptor := optimizer.ComputeCost(q.table.store.Len(), criteria, q.table.indexList())
	matched, err := executor.Scan(descriptor, q.table.allIndexRows())
	if err != nil {
		return nil, WrapError(err, ErrCodeUnknownOperator, "query execution failed")
	}

	out := make([]*Row, len(matched))
	for i, row := range matched {
		rec := row.(*rowstore.Record)
		out[i] = cloneFromRecord(q.table.store, rec)
	}

	q.table.debugf("findWhere: %d criteria -> signature %q cost %.2f -> %d row(s)", len(criteria), descriptor.Signature, descriptor.Cost, len(out))
	if q.table.events != nil {
		q.table.events.OnQuery(criteria, descriptor, len(out))
	}
	return out, nil
}

// Explain returns the planner's chosen descriptor for the accumulated
// criteria without executing the query (spec.md's supplemented EXPLAIN
// surface, grounded on the teacher's pkg/api/explain_test.go EXPLAIN
// support).
func (q *Query) Explain() (optimizer.Descriptor, error) {
	q.table.mu.Lock()
	defer q.table.mu.Unlock()
	if err := q.table.requireLive(); err != nil {
		return optimizer.Descriptor{}, err
	}
	criteria, err := q.builder.Build()
	if err != nil {
		return optimizer.Descriptor{}, WrapError(err, ErrCodeUnknownOperator, "invalid query")
	}
	return optimizer.ComputeCost(q.table.store.Len(), criteria, q.table.indexList()), nil
}
