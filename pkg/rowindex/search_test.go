package rowindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kasuganosora/tabulardb/pkg/value"
)

func entriesOf(values ...int) []*Entry {
	out := make([]*Entry, len(values))
	for i, v := range values {
		out[i] = &Entry{Value: v}
	}
	return out
}

func TestSearchExactMatch(t *testing.T) {
	entries := entriesOf(1, 3, 5, 7)
	idx, exact := Search(entries, 5, value.Compare)
	assert.True(t, exact)
	assert.Equal(t, 2, idx)
}

func TestSearchInsertionPoint(t *testing.T) {
	entries := entriesOf(1, 3, 5, 7)
	idx, exact := Search(entries, 4, value.Compare)
	assert.False(t, exact)
	assert.Equal(t, 2, idx)
}

func TestSearchBeforeFirst(t *testing.T) {
	entries := entriesOf(1, 3, 5, 7)
	idx, exact := Search(entries, 0, value.Compare)
	assert.False(t, exact)
	assert.Equal(t, 0, idx)
}

func TestSearchAfterLast(t *testing.T) {
	entries := entriesOf(1, 3, 5, 7)
	idx, exact := Search(entries, 8, value.Compare)
	assert.False(t, exact)
	assert.Equal(t, 4, idx)
}

func TestSearchEmpty(t *testing.T) {
	idx, exact := Search(nil, 1, value.Compare)
	assert.False(t, exact)
	assert.Equal(t, 0, idx)
}
