// Package query implements the query builder (spec.md §4.2's operand
// types feed it; component C5): accumulating conjunctive predicates and
// validating their columns/operators before the planner ever sees them.
// Grounded on the teacher's fluent filter-builder style
// (pkg/api/query.go's findWhere/and chaining).
package query

import (
	"fmt"
	"strings"

	"github.com/kasuganosora/tabulardb/pkg/value"
)

// Operator is one of the grammar's comparison operators (spec.md §6),
// case-insensitive at the call site but normalized to lower-case here.
type Operator string

const (
	LT      Operator = "<"
	LE      Operator = "<="
	EQ      Operator = "=="
	NE      Operator = "!="
	GE      Operator = ">="
	GT      Operator = ">"
	Between Operator = "between"
	In      Operator = "in"
)

// ParseOperator normalizes a case-insensitive operator token. It returns
// ok=false for anything outside the grammar (spec.md §7's
// UnknownOperator).
func ParseOperator(raw string) (Operator, bool) {
	switch Operator(strings.ToLower(strings.TrimSpace(raw))) {
	case LT:
		return LT, true
	case LE:
		return LE, true
	case EQ:
		return EQ, true
	case NE:
		return NE, true
	case GE:
		return GE, true
	case GT:
		return GT, true
	case Between:
		return Between, true
	case In:
		return In, true
	default:
		return "", false
	}
}

// Criterion is a single (column, operator, value) predicate (spec.md
// glossary). Value is a *value.Range for Between, a *value.Set for In,
// and a plain scalar for every other operator.
type Criterion struct {
	Column   string
	Op       Operator
	Value    any
}

// ColumnValidator reports whether name is a member of the table's fixed
// column list, letting the builder validate without importing the table
// package (which in turn depends on query, so the reverse import would
// cycle).
type ColumnValidator func(name string) bool

// Builder accumulates a conjunctive (AND-only) list of criteria, the
// shape spec.md §4.10's findWhere(...).and(...) chain produces.
type Builder struct {
	validColumn ColumnValidator
	criteria    []Criterion
	err         error
}

// NewBuilder starts an empty builder validating columns with validColumn.
func NewBuilder(validColumn ColumnValidator) *Builder {
	return &Builder{validColumn: validColumn}
}

// Where adds a criterion; equivalent to And, provided for readability at
// the call site that starts the chain (findWhere vs and).
func (b *Builder) Where(column string, op string, val any) *Builder {
	return b.And(column, op, val)
}

// And appends a criterion to the conjunction, validating the column and
// operator eagerly. A prior error short-circuits further calls so the
// chain can be built fluently and checked once at Build.
func (b *Builder) And(column string, op string, val any) *Builder {
	if b.err != nil {
		return b
	}
	if b.validColumn != nil && !b.validColumn(column) {
		b.err = fmt.Errorf("invalid column: %q is not a member of the table's columns", column)
		return b
	}
	parsed, ok := ParseOperator(op)
	if !ok {
		b.err = fmt.Errorf("unknown operator: %q", op)
		return b
	}
	if err := validateOperand(parsed, val); err != nil {
		b.err = err
		return b
	}
	b.criteria = append(b.criteria, Criterion{Column: column, Op: parsed, Value: val})
	return b
}

func validateOperand(op Operator, val any) error {
	switch op {
	case Between:
		if _, ok := val.(*value.Range); !ok {
			return fmt.Errorf("between requires a *value.Range operand, got %T", val)
		}
	case In:
		switch val.(type) {
		case *value.Set:
		default:
			return fmt.Errorf("in requires a *value.Set operand, got %T", val)
		}
	}
	return nil
}

// Build returns the accumulated criteria, or the first validation error
// encountered while chaining And calls.
func (b *Builder) Build() ([]Criterion, error) {
	if b.err != nil {
		return nil, b.err
	}
	return append([]Criterion(nil), b.criteria...), nil
}
