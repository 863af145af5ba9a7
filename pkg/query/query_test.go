package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/tabulardb/pkg/value"
)

func allColumns(names ...string) ColumnValidator {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestParseOperatorCaseInsensitive(t *testing.T) {
	op, ok := ParseOperator("  BETWEEN ")
	require.True(t, ok)
	assert.Equal(t, Between, op)

	_, ok = ParseOperator("like")
	assert.False(t, ok)
}

func TestBuilderAccumulatesConjunction(t *testing.T) {
	b := NewBuilder(allColumns("population", "region"))
	criteria, err := b.Where("population", ">=", 1000000).
		And("region", "==", "South").
		Build()
	require.NoError(t, err)
	require.Len(t, criteria, 2)
	assert.Equal(t, GE, criteria[0].Op)
	assert.Equal(t, EQ, criteria[1].Op)
}

func TestBuilderRejectsInvalidColumn(t *testing.T) {
	b := NewBuilder(allColumns("population"))
	_, err := b.Where("nonexistent", "==", 1).Build()
	assert.Error(t, err)
}

func TestBuilderRejectsUnknownOperator(t *testing.T) {
	b := NewBuilder(allColumns("population"))
	_, err := b.Where("population", "~=", 1).Build()
	assert.Error(t, err)
}

func TestBuilderRequiresRangeForBetween(t *testing.T) {
	b := NewBuilder(allColumns("population"))
	_, err := b.Where("population", "between", 5).Build()
	assert.Error(t, err)

	b2 := NewBuilder(allColumns("population"))
	_, err = b2.Where("population", "between", value.NewRange(1, 10)).Build()
	assert.NoError(t, err)
}

func TestBuilderRequiresSetForIn(t *testing.T) {
	b := NewBuilder(allColumns("region"))
	_, err := b.Where("region", "in", "South").Build()
	assert.Error(t, err)

	b2 := NewBuilder(allColumns("region"))
	_, err = b2.Where("region", "in", value.NewSet("South", "West")).Build()
	assert.NoError(t, err)
}

func TestBuilderShortCircuitsOnFirstError(t *testing.T) {
	b := NewBuilder(allColumns("region"))
	b.Where("nonexistent", "==", 1).And("region", "==", "South")
	_, err := b.Build()
	assert.Error(t, err)
}
