package rowstore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsStableHandle(t *testing.T) {
	s := New(uuid.New())
	rec := s.Insert(Cells{"name": "Alabama"})
	assert.False(t, rec.Handle().Zero())
	assert.Equal(t, "Alabama", rec.Get("name"))
	assert.Equal(t, 1, s.Len())
}

func TestResolveRejectsOtherTable(t *testing.T) {
	s := New(uuid.New())
	rec := s.Insert(Cells{"name": "Alaska"})

	other := New(uuid.New())
	_, ok := other.Resolve(rec.Handle())
	assert.False(t, ok)

	got, ok := s.Resolve(rec.Handle())
	require.True(t, ok)
	assert.Same(t, rec, got)
}

func TestRemoveSwapsWithLast(t *testing.T) {
	s := New(uuid.New())
	a := s.Insert(Cells{"name": "A"})
	b := s.Insert(Cells{"name": "B"})
	c := s.Insert(Cells{"name": "C"})

	removed, ok := s.Remove(a.Handle())
	require.True(t, ok)
	assert.Same(t, a, removed)
	assert.Equal(t, 2, s.Len())

	// c was the last element and should have been swapped into a's slot.
	all := s.All()
	assert.Same(t, c, all[0])
	assert.Contains(t, all, b)
	assert.Contains(t, all, c)
	assert.NotContains(t, all, a)

	_, ok = s.Remove(a.Handle())
	assert.False(t, ok)
}

func TestCellsCloneIsIndependent(t *testing.T) {
	c := Cells{"x": 1}
	clone := c.Clone()
	clone["x"] = 2
	assert.Equal(t, 1, c["x"])
	assert.Equal(t, 2, clone["x"])
}

func TestRecordCellsReturnsClone(t *testing.T) {
	s := New(uuid.New())
	rec := s.Insert(Cells{"x": 1})
	got := rec.Cells()
	got["x"] = 99
	assert.Equal(t, 1, rec.Get("x"))
}

func TestRecordSetCellsOverwritesInPlace(t *testing.T) {
	s := New(uuid.New())
	rec := s.Insert(Cells{"x": 1})
	rec.SetCells(Cells{"x": 2})
	assert.Equal(t, 2, rec.Get("x"))
}
