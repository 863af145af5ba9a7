// Package optimizer implements the cost-based planner (spec.md §4.8,
// component C6): for every candidate access path (the full-scan baseline
// plus each of the table's indexes) it estimates the work required and
// hands back the cheapest one. Grounded on the teacher's cost-based
// index scan selection (sqlexec/optimizer/cardinality.go,
// pkg/optimizer/index_cost_estimator.go), generalized to operate over the
// core spec's nested-subtotal index tree instead of per-column
// statistics tables.
package optimizer

import (
	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/rowindex"
)

// Descriptor describes one candidate access path and its estimated cost
// (spec.md §4.8). Index is nil for the full-scan baseline; CriteriaUsed
// lists, in the order the criteria were given, the criteria on the
// columns the chosen path can satisfy
// through the tree walk, while CriteriaUnused lists the criteria the
// executor must still apply as a linear residual filter.
type Descriptor struct {
	Cost           float64
	CriteriaUsed   []query.Criterion
	CriteriaUnused []query.Criterion
	Signature      string
	Index          *rowindex.Index
}

// IsBaseline reports whether this descriptor is the full-scan path.
func (d Descriptor) IsBaseline() bool { return d.Index == nil }
