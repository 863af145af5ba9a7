package rowindex

import (
	"fmt"

	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

// CorruptionError reports a violated structural invariant (spec.md §3's
// invariants 1-5), either found by Validate or raised mid-merge when
// merge-remove encounters a right-only entry, which spec.md §4.6 calls
// "impossible" and a sign of caller bug or prior corruption.
type CorruptionError struct {
	Path string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("index corruption: %s", e.Path)
}

func corruption(path string) error { return &CorruptionError{Path: path} }

// MergeAdd incrementally folds new rows into the index (spec.md §4.5):
// bulk-build a right-hand index of the same shape, then merge it into the
// existing tree level by level, keeping entries sorted and subtotal/total
// consistent.
func (ix *Index) MergeAdd(rows []Row) {
	if len(rows) == 0 {
		return
	}
	right := Build(ix.columns, rows)
	ix.root = mergeAddLevel(ix.root, right.root, ix.columns, 0)
}

// MergeRemove incrementally removes rows from the index (spec.md §4.6).
// Rows must be identifiable by Handle() against what is already present;
// a right-only entry indicates corruption or a caller bug and fails
// loudly rather than silently dropping data.
func (ix *Index) MergeRemove(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	right := Build(ix.columns, rows)
	merged, err := mergeRemoveLevel(ix.root, right.root, ix.columns, 0)
	if err != nil {
		return err
	}
	ix.root = merged
	return nil
}

func mergeAddLevel(left, right *Level, columns []string, depth int) *Level {
	leaf := depth == len(columns)-1
	merged := &Level{Column: left.Column}
	i, j := 0, 0
	for i < len(left.Entries) || j < len(right.Entries) {
		switch {
		case j >= len(right.Entries):
			merged.Entries = append(merged.Entries, left.Entries[i])
			i++
		case i >= len(left.Entries):
			merged.Entries = append(merged.Entries, right.Entries[j])
			j++
		default:
			cmp := value.Compare(left.Entries[i].Value, right.Entries[j].Value)
			switch {
			case cmp < 0:
				merged.Entries = append(merged.Entries, left.Entries[i])
				i++
			case cmp > 0:
				merged.Entries = append(merged.Entries, right.Entries[j])
				j++
			default:
				merged.Entries = append(merged.Entries, combineEqualAdd(left.Entries[i], right.Entries[j], columns, depth, leaf))
				i++
				j++
			}
		}
	}
	recomputeTotals(merged)
	return merged
}

func combineEqualAdd(le, re *Entry, columns []string, depth int, leaf bool) *Entry {
	if leaf {
		rows := make([]Row, 0, len(le.Rows)+len(re.Rows))
		rows = append(rows, le.Rows...)
		rows = append(rows, re.Rows...)
		return &Entry{Value: le.Value, Rows: rows, Size: len(rows)}
	}
	sub := mergeAddLevel(le.Sub, re.Sub, columns, depth+1)
	return &Entry{Value: le.Value, Sub: sub, Size: sub.Total}
}

func mergeRemoveLevel(left, right *Level, columns []string, depth int) (*Level, error) {
	leaf := depth == len(columns)-1
	merged := &Level{Column: left.Column}
	i, j := 0, 0
	for i < len(left.Entries) || j < len(right.Entries) {
		switch {
		case j >= len(right.Entries):
			merged.Entries = append(merged.Entries, left.Entries[i])
			i++
		case i >= len(left.Entries):
			return nil, corruption(fmt.Sprintf("merge-remove: column %q value %v absent from left index", left.Column, right.Entries[j].Value))
		default:
			cmp := value.Compare(left.Entries[i].Value, right.Entries[j].Value)
			switch {
			case cmp < 0:
				merged.Entries = append(merged.Entries, left.Entries[i])
				i++
			case cmp > 0:
				return nil, corruption(fmt.Sprintf("merge-remove: column %q value %v absent from left index", left.Column, right.Entries[j].Value))
			default:
				entry, err := combineEqualRemove(left.Entries[i], right.Entries[j], columns, depth, leaf)
				if err != nil {
					return nil, err
				}
				if entry != nil {
					merged.Entries = append(merged.Entries, entry)
				}
				i++
				j++
			}
		}
	}
	recomputeTotals(merged)
	return merged, nil
}

func combineEqualRemove(le, re *Entry, columns []string, depth int, leaf bool) (*Entry, error) {
	if leaf {
		kept := removeRowsByHandle(le.Rows, re.Rows)
		if len(kept) == 0 {
			return nil, nil
		}
		return &Entry{Value: le.Value, Rows: kept, Size: len(kept)}, nil
	}
	sub, err := mergeRemoveLevel(le.Sub, re.Sub, columns, depth+1)
	if err != nil {
		return nil, err
	}
	if sub.Total == 0 {
		return nil, nil
	}
	return &Entry{Value: le.Value, Sub: sub, Size: sub.Total}, nil
}

// removeRowsByHandle deletes rows from the left-hand list by identity,
// walking in reverse to allow safe in-place deletion (spec.md §4.6,
// and §9's note that membership must be by value/identity equality, never
// a self-referential "indexOf").
func removeRowsByHandle(rows []Row, toRemove []Row) []Row {
	drop := make(map[rowhandle.Handle]bool, len(toRemove))
	for _, r := range toRemove {
		drop[r.Handle()] = true
	}
	kept := append([]Row(nil), rows...)
	for idx := len(kept) - 1; idx >= 0; idx-- {
		if drop[kept[idx].Handle()] {
			kept = append(kept[:idx], kept[idx+1:]...)
		}
	}
	return kept
}

func recomputeTotals(level *Level) {
	running := 0
	for _, e := range level.Entries {
		running += e.Size
		e.Subtotal = running
	}
	level.Total = running
}
