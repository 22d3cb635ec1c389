package engine

import (
	"testing"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSession_SortMemory(t *testing.T) {
	s := NewSession(sampleLedger())

	v := s.SortBy(ColumnAmount)
	assert.Equal(t, []int64{4, 1, 2, 3}, rowIDs(v))

	v = s.SortBy(ColumnAmount)
	assert.Equal(t, []int64{3, 2, 1, 4}, rowIDs(v))

	v = s.SortBy(ColumnDate)
	assert.Equal(t, []int64{2, 3, 4, 1}, rowIDs(v))

	v = s.SortBy(ColumnAmount)
	assert.Equal(t, []int64{3, 2, 1, 4}, rowIDs(v), "amount resumes descending")

	v = s.ClearSort()
	assert.Equal(t, []int64{1, 2, 3, 4}, rowIDs(v))
	assert.Equal(t, ColumnNone, v.HighlightedColumn())
}

func TestSession_SelectionSurvivesSort(t *testing.T) {
	s := NewSession(sampleLedger())

	s.Click(3)
	v := s.SortBy(ColumnDescription)
	assert.Equal(t, Select(3), v.Selection)
	assert.True(t, v.CanEdit())

	v = s.Click(3)
	assert.True(t, v.Selection.IsNone())
}

func TestSession_FilterClearsSelection(t *testing.T) {
	s := NewSession(sampleLedger())
	s.Click(3)

	v := s.SetCriteria(FilterCriteria{Category: model.CategoryFood})
	assert.True(t, v.Selection.IsNone())

	// Relaxing the filter does not bring the old selection back.
	v = s.ResetCriteria()
	assert.True(t, v.Selection.IsNone())
	assert.Len(t, v.Rows, 4)
}

func TestSession_LoadReconciles(t *testing.T) {
	s := NewSession(sampleLedger())
	s.Click(2)

	remaining := sampleLedger()
	remaining = append(remaining[:1], remaining[2:]...)

	v := s.Load(remaining)
	assert.True(t, v.Selection.IsNone())
	assert.Equal(t, []int64{1, 3, 4}, rowIDs(v))
	assert.Equal(t, v, s.View())
}

func TestSession_SearchAndClearSelection(t *testing.T) {
	s := NewSession(sampleLedger())

	v := s.SetCriteria(FilterCriteria{SearchText: "PAY"})
	assert.Equal(t, []int64{3}, rowIDs(v))
	assert.Equal(t, "PAY", s.Criteria().SearchText)

	s.Click(3)
	v = s.ClearSelection()
	assert.True(t, v.Selection.IsNone())
}

func TestSession_IndependentSessions(t *testing.T) {
	a := NewSession(sampleLedger())
	b := NewSession(sampleLedger())

	a.SortBy(ColumnAmount)
	a.SortBy(ColumnAmount)

	v := b.SortBy(ColumnAmount)
	assert.Equal(t, []int64{4, 1, 2, 3}, rowIDs(v))
}
