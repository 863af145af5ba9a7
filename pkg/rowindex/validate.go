package rowindex

import (
	"fmt"

	"github.com/kasuganosora/tabulardb/pkg/value"
)

// Validate checks structural invariants 1-4 of spec.md §3 (entry
// ordering/no-duplicates, size>=1 and leaf size==len(rows), non-leaf size
// equal to the nested total, and subtotal/total consistency). Invariant 5
// (every leaf row also appears in the table's row vector, and vice versa)
// requires the owning table's row store; one level up,
// tabulardb.Table.ValidateIndex compares the index's row count with the
// table's, without comparing individual rows.
func (ix *Index) Validate() error {
	if ix.dropped {
		return corruption("index is dropped")
	}
	return validateLevel(ix.root, ix.columns, 0, ix.signature)
}

func validateLevel(level *Level, columns []string, depth int, path string) error {
	leaf := depth == len(columns)-1
	running := 0
	var prev any
	havePrev := false
	for i, e := range level.Entries {
		if havePrev && value.Compare(prev, e.Value) >= 0 {
			return corruption(fmt.Sprintf("%s.%s: entries out of order or duplicated at index %d (value %v)", path, level.Column, i, e.Value))
		}
		if e.Size < 1 {
			return corruption(fmt.Sprintf("%s.%s: entry %v has size %d < 1", path, level.Column, e.Value, e.Size))
		}
		running += e.Size
		if e.Subtotal != running {
			return corruption(fmt.Sprintf("%s.%s: entry %v subtotal %d != expected prefix sum %d", path, level.Column, e.Value, e.Subtotal, running))
		}
		if leaf {
			if len(e.Rows) != e.Size {
				return corruption(fmt.Sprintf("%s.%s: entry %v size %d != len(rows) %d", path, level.Column, e.Value, e.Size, len(e.Rows)))
			}
		} else {
			if e.Sub == nil {
				return corruption(fmt.Sprintf("%s.%s: entry %v missing nested level", path, level.Column, e.Value))
			}
			nextCol := columns[depth+1]
			if err := validateLevel(e.Sub, columns, depth+1, fmt.Sprintf("%s.%s=%v", path, level.Column, e.Value)); err != nil {
				return err
			}
			if e.Sub.Total != e.Size {
				return corruption(fmt.Sprintf("%s.%s: entry %v size %d != nested %s total %d", path, level.Column, e.Value, e.Size, nextCol, e.Sub.Total))
			}
		}
		prev = e.Value
		havePrev = true
	}
	if level.Total != running {
		return corruption(fmt.Sprintf("%s.%s: level total %d != sum of entry sizes %d", path, level.Column, level.Total, running))
	}
	return nil
}

// CollectRows flattens every leaf row reachable from the index in entry
// order, used by Table.ValidateIndex's row-count check and by
// Table.Stats.
func (ix *Index) CollectRows() []Row {
	return collectLevel(ix.root)
}

func collectLevel(level *Level) []Row {
	var out []Row
	for _, e := range level.Entries {
		if e.leaf() {
			out = append(out, e.Rows...)
		} else {
			out = append(out, collectLevel(e.Sub)...)
		}
	}
	return out
}
