package value

import "sort"

// Set wraps a finite collection of scalar values used as the operand of
// an `in` predicate (spec.md §4.2). Membership is by value equality under
// Compare, never by host-language identity — per the design note on
// spec.md §9's `ary.include` bug, membership here is always a genuine
// linear scan over values, not a reference check.
type Set struct {
	values []any
}

// NewSet constructs a Set from the given values (spec.md §9's note that
// the source's `Set.of` is non-functional: this is the "construct a Set
// from the given values" replacement the spec calls for).
func NewSet(values ...any) *Set {
	cp := make([]any, len(values))
	copy(cp, values)
	return &Set{values: cp}
}

// Includes reports whether v is equal (under Compare) to any member.
func (s *Set) Includes(v any) bool {
	for _, candidate := range s.values {
		if Compare(candidate, v) == 0 {
			return true
		}
	}
	return false
}

// Len returns the number of values in the set (duplicates count once each
// as stored; callers that need deduplicated membership counts should use
// Ordered, which collapses equal values during the sort pass).
func (s *Set) Len() int {
	return len(s.values)
}

// Values returns the set's members in construction order.
func (s *Set) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Ordered returns the set's distinct members sorted by Compare, the
// iteration order the planner and executor use when probing an index
// once per distinct `in` value (spec.md §4.8/§4.9).
func (s *Set) Ordered() []any {
	out := make([]any, 0, len(s.values))
	for _, v := range s.values {
		dup := false
		for _, seen := range out {
			if Compare(seen, v) == 0 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}
