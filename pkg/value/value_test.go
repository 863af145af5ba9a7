package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareAbsentSortsGreatest(t *testing.T) {
	assert.Equal(t, 0, Compare(nil, nil))
	assert.Equal(t, 1, Compare(nil, 5))
	assert.Equal(t, -1, Compare(5, nil))
	assert.Equal(t, 1, Compare(nil, ""))
}

func TestCompareNumericMixedKinds(t *testing.T) {
	assert.Equal(t, 0, Compare(int(5), float64(5)))
	assert.Equal(t, -1, Compare(int32(3), uint8(4)))
	assert.Equal(t, 1, Compare(float32(2.5), int64(2)))
}

func TestCompareStrings(t *testing.T) {
	assert.Equal(t, 0, Compare("abc", "abc"))
	assert.Equal(t, -1, Compare("abc", "abd"))
	assert.Equal(t, 1, Compare("b", "a"))
}

func TestCompareBool(t *testing.T) {
	assert.Equal(t, 0, Compare(true, true))
	assert.Equal(t, -1, Compare(false, true))
	assert.Equal(t, 1, Compare(true, false))
}

func TestCompareTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	assert.Equal(t, -1, Compare(now, later))
	assert.Equal(t, 1, Compare(later, now))
	assert.Equal(t, 0, Compare(now, now))
}

func TestCompareHeterogeneousFallsBackToString(t *testing.T) {
	// Neither a numeric pair, a string pair, nor any other shared kind:
	// falls through to the formatted-string ordering, but still returns
	// a consistent antisymmetric answer rather than panicking.
	a := Compare(42, "hello")
	b := Compare("hello", 42)
	assert.Equal(t, -a, b)
}

func TestPluckProjectsRowColumns(t *testing.T) {
	left := mapRow{"age": 30}
	right := mapRow{"age": 25}
	cmp := Pluck("age", "")
	assert.Equal(t, 1, cmp(left, right))
}

func TestPluckLiteralOperand(t *testing.T) {
	row := mapRow{"age": 30}
	cmp := Pluck("age", "")
	assert.Equal(t, 0, cmp(row, 30))
}

func TestPluckEmptyNamesDegeneratesToCompare(t *testing.T) {
	cmp := Pluck("", "")
	assert.Equal(t, 0, cmp(5, 5))
}

func TestSetIncludes(t *testing.T) {
	s := NewSet(1, 2, 3)
	assert.True(t, s.Includes(2))
	assert.True(t, s.Includes(int64(3)))
	assert.False(t, s.Includes(4))
}

func TestSetLenCountsDuplicates(t *testing.T) {
	s := NewSet(1, 1, 2)
	assert.Equal(t, 3, s.Len())
}

func TestSetOrderedDedupesAndSorts(t *testing.T) {
	s := NewSet(3, 1, 2, 1)
	assert.Equal(t, []any{1, 2, 3}, s.Ordered())
}

func TestRangeIncludesInclusive(t *testing.T) {
	r := NewRange(1, 10)
	assert.True(t, r.Includes(1))
	assert.True(t, r.Includes(10))
	assert.False(t, r.Includes(11))
}

func TestRangeIncludesExclusive(t *testing.T) {
	r := NewRange(1, 10, true)
	assert.True(t, r.Includes(1))
	assert.False(t, r.Includes(10))
	assert.True(t, r.Includes(9))
}

func TestRangeNumericLength(t *testing.T) {
	r := NewRange(1, 10)
	length, ok := r.NumericLength()
	assert.True(t, ok)
	assert.Equal(t, float64(10), length)

	strRange := NewRange("a", "z")
	_, ok = strRange.NumericLength()
	assert.False(t, ok)
}

type mapRow map[string]any

func (m mapRow) Get(column string) any { return m[column] }
