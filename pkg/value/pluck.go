package value

// Row is the minimal shape a comparator needs to project a named column
// out of an operand before comparing. rowstore.Cells, *rowstore.Record
// and *tabulardb.Row all satisfy it.
type Row interface {
	Get(column string) any
}

// Pluck builds a Comparator that projects one or both operands through a
// named column before delegating to Compare (spec.md §4.1). lName selects
// the column to project on the left operand; rName does the same for the
// right operand and defaults to lName when empty. An operand that does
// not implement Row is compared as-is (this is what makes "project one
// side only" possible: a Row on one side, a literal scalar on the other,
// such as a row's column against a predicate's literal value).
//
// With both names empty, Pluck degenerates to the scalar comparator.
func Pluck(lName, rName string) Comparator {
	if lName == "" && rName == "" {
		return Compare
	}
	if rName == "" {
		rName = lName
	}
	return func(l, r any) int {
		return Compare(project(l, lName), project(r, rName))
	}
}

func project(v any, column string) any {
	if column == "" {
		return v
	}
	if row, ok := v.(Row); ok {
		return row.Get(column)
	}
	return v
}
