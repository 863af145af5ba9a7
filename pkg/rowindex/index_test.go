package rowindex

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/tabulardb/pkg/rowhandle"
)

// testRow is a minimal Row used across this package's tests: the "states
// of the union" fixture spec.md §8 builds its scenarios from, trimmed to
// the columns each test actually indexes.
type testRow struct {
	handle rowhandle.Handle
	cells  map[string]any
}

func newTestRow(cells map[string]any) testRow {
	return testRow{handle: rowhandle.Handle{TableID: fixtureTableID, RowID: uuid.New()}, cells: cells}
}

func (r testRow) Get(column string) any   { return r.cells[column] }
func (r testRow) Handle() rowhandle.Handle { return r.handle }

var fixtureTableID = uuid.New()

func statesOfTheUnion() []Row {
	data := []map[string]any{
		{"abbr": "DE", "region": "South", "population": 990837},
		{"abbr": "PA", "region": "Northeast", "population": 13002700},
		{"abbr": "NJ", "region": "Northeast", "population": 9290841},
		{"abbr": "GA", "region": "South", "population": 10799566},
		{"abbr": "CT", "region": "Northeast", "population": 3605944},
	}
	rows := make([]Row, len(data))
	for i, cells := range data {
		rows[i] = newTestRow(cells)
	}
	return rows
}

func TestBuildSingleColumnSortsAndGroups(t *testing.T) {
	idx := Build([]string{"region"}, statesOfTheUnion())
	require.NoError(t, idx.Validate())

	root := idx.Root()
	require.Len(t, root.Entries, 2)
	assert.Equal(t, "Northeast", root.Entries[0].Value)
	assert.Equal(t, 3, root.Entries[0].Size)
	assert.Equal(t, "South", root.Entries[1].Value)
	assert.Equal(t, 2, root.Entries[1].Size)
	assert.Equal(t, 5, root.Total)
}

func TestBuildMultiColumnNests(t *testing.T) {
	idx := Build([]string{"region", "abbr"}, statesOfTheUnion())
	require.NoError(t, idx.Validate())

	root := idx.Root()
	northeast := root.Entries[0]
	assert.Equal(t, "Northeast", northeast.Value)
	require.NotNil(t, northeast.Sub)
	assert.Len(t, northeast.Sub.Entries, 3)
	assert.Equal(t, "CT", northeast.Sub.Entries[0].Value)
}

func TestMergeAddKeepsInvariants(t *testing.T) {
	idx := Build([]string{"region"}, statesOfTheUnion()[:2])
	idx.MergeAdd(statesOfTheUnion()[2:])
	require.NoError(t, idx.Validate())
	assert.Equal(t, 5, idx.Root().Total)
	assert.Equal(t, 5, len(idx.CollectRows()))
}

func TestMergeRemoveDeletesByHandle(t *testing.T) {
	rows := statesOfTheUnion()
	idx := Build([]string{"region"}, rows)

	victim := rows[0] // DE, region South
	err := idx.MergeRemove([]Row{victim})
	require.NoError(t, err)
	require.NoError(t, idx.Validate())
	assert.Equal(t, 4, idx.Root().Total)

	for _, r := range idx.CollectRows() {
		assert.NotEqual(t, victim.Handle(), r.Handle())
	}
}

func TestMergeRemoveUnknownRowIsCorruption(t *testing.T) {
	idx := Build([]string{"region"}, statesOfTheUnion())
	foreign := newTestRow(map[string]any{"region": "West"})
	err := idx.MergeRemove([]Row{foreign})
	require.Error(t, err)
	var corruptErr *CorruptionError
	assert.ErrorAs(t, err, &corruptErr)
}

func TestDropNullsRootAndFlagsDropped(t *testing.T) {
	idx := Build([]string{"region"}, statesOfTheUnion())
	idx.Drop()
	assert.Nil(t, idx.Root())
	assert.True(t, idx.Dropped())
	assert.Error(t, idx.Validate())
}

func TestSignatureFormat(t *testing.T) {
	assert.Equal(t, "[region,abbr]", Signature([]string{"region", "abbr"}))
	assert.Equal(t, "[region]", Signature([]string{"region"}))
}
