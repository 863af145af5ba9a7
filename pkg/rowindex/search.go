package rowindex

import "github.com/kasuganosora/tabulardb/pkg/value"

// Search implements the modified binary search of spec.md §4.7. The
// source's half-integer insertion-point convention is replaced with the
// two-integer form spec.md §9's design notes call for: an insertion index
// plus an exact-match flag. The two conventions carry identical
// information — an exact result r corresponds to (r, true); a half
// integer r-0.5 corresponds to (r, false), i.e. "value falls between
// indices r-1 and r".
//
// Search returns (idx, true) when entries[idx].Value compares equal to
// val; otherwise (idx, false), where idx is the smallest index whose
// entry's Value compares greater than val (idx == len(entries) if val is
// greater than every entry).
func Search(entries []*Entry, val any, cmp value.Comparator) (idx int, exact bool) {
	l, r := -1, len(entries)
	for l+1 < r {
		m := l + (r-l)/2
		if cmp(entries[m].Value, val) < 0 {
			l = m
		} else {
			r = m
		}
	}
	if r < len(entries) && cmp(entries[r].Value, val) == 0 {
		return r, true
	}
	return r, false
}
