package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kasuganosora/tabulardb/pkg/query"
	"github.com/kasuganosora/tabulardb/pkg/value"
)

func TestSingleRowCostDefaultsToOne(t *testing.T) {
	c := query.Criterion{Op: query.EQ, Value: 5}
	assert.Equal(t, 1.0, SingleRowCost(c))
}

func TestSingleRowCostBetweenIsTwo(t *testing.T) {
	c := query.Criterion{Op: query.Between, Value: value.NewRange(1, 10)}
	assert.Equal(t, 2.0, SingleRowCost(c))
}

func TestSingleRowCostInScalesWithSetSize(t *testing.T) {
	c := query.Criterion{Op: query.In, Value: value.NewSet(1, 2, 3, 4)}
	assert.Equal(t, 4.0, SingleRowCost(c))
}

func TestBaselineCostScalesWithRowCount(t *testing.T) {
	criteria := []query.Criterion{{Op: query.EQ, Value: 1}}
	d := Baseline(100, criteria)
	assert.True(t, d.IsBaseline())
	assert.Equal(t, 100.0, d.Cost)
	assert.Equal(t, criteria, d.CriteriaUnused)
	assert.Empty(t, d.CriteriaUsed)
}
