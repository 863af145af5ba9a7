// Package value implements the total order over scalar cell values that
// every other package in tabulardb builds on: the index tree sorts by it,
// the planner probes entries with it, and the executor's residual filter
// compares against it. Grounded on the teacher's collation-aware string
// comparisons in its MySQL layer, generalized here to a single ordering
// rule that treats an absent (nil) value as greatest, per spec.md §4.1.
package value

import (
	"fmt"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// rootCollator orders strings the same way the teacher's MySQL collation
// handling does for the default (root) collation: a locale-aware ordering
// rather than a raw byte comparison, so two cell values that a human would
// consider equal-but-differently-cased or differently-accented don't
// silently violate the total order's antisymmetry in unexpected ways.
var rootCollator = collate.New(language.Und)

// Comparator compares two operands and returns -1, 0, or +1 per Compare's
// contract. Pluck below builds Comparators that project through a row
// column before delegating to Compare.
type Comparator func(l, r any) int

// Compare implements the total order from spec.md §4.1:
//   - two absent (nil) values compare equal;
//   - absent sorts after every defined value;
//   - otherwise values compare by their underlying scalar kind.
func Compare(l, r any) int {
	ln, rn := l == nil, r == nil
	switch {
	case ln && rn:
		return 0
	case ln && !rn:
		return 1
	case !ln && rn:
		return -1
	}
	return compareDefined(l, r)
}

func compareDefined(l, r any) int {
	if lf, rf, ok := asFloat64Pair(l, r); ok {
		return compareFloat(lf, rf)
	}
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			return rootCollator.CompareString(ls, rs)
		}
	}
	if lb, ok := l.(bool); ok {
		if rb, ok := r.(bool); ok {
			return compareBool(lb, rb)
		}
	}
	if lt, ok := l.(time.Time); ok {
		if rt, ok := r.(time.Time); ok {
			switch {
			case lt.Before(rt):
				return -1
			case lt.After(rt):
				return 1
			default:
				return 0
			}
		}
	}
	// Mixed/unknown kinds: fall back to formatted-string ordering so the
	// comparator always returns a consistent, total answer (spec.md §9's
	// design note on heterogeneous comparisons: the total order here is
	// the single source of truth, never a rendering-time `<`).
	ls, rs := toComparableString(l), toComparableString(r)
	return rootCollator.CompareString(ls, rs)
}

func compareFloat(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareBool(l, r bool) int {
	if l == r {
		return 0
	}
	if !l {
		return -1
	}
	return 1
}

func asFloat64Pair(l, r any) (float64, float64, bool) {
	lf, ok1 := asFloat64(l)
	rf, ok2 := asFloat64(r)
	return lf, rf, ok1 && ok2
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toComparableString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
