package engine

import (
	"math"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowIDs(v ViewState) []int64 {
	return ids(v.Transactions())
}

func TestRecompute_DefaultKeepsStoreOrder(t *testing.T) {
	all := sampleLedger()
	v := Recompute(all, DefaultCriteria(), NewSortState(), NoSelection)

	assert.Equal(t, []int64{1, 2, 3, 4}, rowIDs(v))
	assert.Equal(t, 4, v.Total)
	assert.Zero(t, v.Hidden)
	assert.Equal(t, ColumnNone, v.HighlightedColumn())
	for _, r := range v.Rows {
		assert.True(t, r.Visible)
		assert.False(t, r.Highlighted)
	}
}

func TestRecompute_FilterThenSort(t *testing.T) {
	all := []model.Transaction{
		txn(1, "2024-01-01", model.CategoryFood, "a", 1, model.TypeExpense),
		txn(2, "2024-01-02", model.CategoryFood, "b", 2, model.TypeExpense),
		txn(3, "2024-01-03", model.CategoryFood, "c", 3, model.TypeExpense),
	}
	criteria := DefaultCriteria().WithDateRange(mustRange(t, "2024-01-02", "2024-01-03"))
	sort := NewSortState().Activate(ColumnDate).Activate(ColumnDate)

	v := Recompute(all, criteria, sort, NoSelection)

	require.Len(t, v.Rows, 2)
	assert.Equal(t, "2024-01-03", v.Rows[0].Transaction.Date)
	assert.Equal(t, "2024-01-02", v.Rows[1].Transaction.Date)
	assert.Equal(t, 1, v.Hidden)
	assert.Equal(t, ColumnDate, v.HighlightedColumn())
	for _, r := range v.Rows {
		assert.True(t, r.Highlighted)
	}
}

func TestRecompute_Tones(t *testing.T) {
	v := Recompute(sampleLedger(), DefaultCriteria(), NewSortState(), NoSelection)

	for _, r := range v.Rows {
		if r.Transaction.Type == model.TypeIncome {
			assert.Equal(t, ToneIncome, r.Tone, "row %d", r.Transaction.ID)
		} else {
			assert.Equal(t, ToneExpense, r.Tone, "row %d", r.Transaction.ID)
		}
	}
}

func TestRecompute_SelectionDemotedWhenFiltered(t *testing.T) {
	all := sampleLedger()

	v := Recompute(all, DefaultCriteria(), NewSortState(), Select(3))
	assert.Equal(t, Select(3), v.Selection)
	assert.True(t, v.CanEdit())

	row, ok := v.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "paycheck", row.Transaction.Description)

	v = Recompute(all, FilterCriteria{Category: model.CategoryFood}, NewSortState(), Select(3))
	assert.Equal(t, NoSelection, v.Selection)
	assert.False(t, v.CanEdit())
	_, ok = v.SelectedRow()
	assert.False(t, ok)
}

func TestRecompute_Idempotent(t *testing.T) {
	all := sampleLedger()
	criteria := FilterCriteria{Type: model.TypeExpense}
	sort := NewSortState().Activate(ColumnAmount)

	first := Recompute(all, criteria, sort, Select(1))
	second := Recompute(all, criteria, sort, Select(1))

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Selection, second.Selection)
	assert.True(t, Diff(first, second).IsEmpty())

	// Filtering the already-filtered rows again changes nothing.
	again := Recompute(first.Transactions(), criteria, sort, first.Selection)
	assert.Equal(t, rowIDs(first), rowIDs(again))
}

func TestRecompute_DoesNotModifyInput(t *testing.T) {
	all := sampleLedger()
	_ = Recompute(all, DefaultCriteria(), NewSortState().Activate(ColumnAmount), NoSelection)
	assert.Equal(t, sampleLedger(), all)
}

func TestRecompute_EmptyLedger(t *testing.T) {
	v := Recompute(nil, DefaultCriteria(), NewSortState().Activate(ColumnDate), Select(1))
	assert.Empty(t, v.Rows)
	assert.Equal(t, NoSelection, v.Selection)
	assert.Equal(t, -1, v.IndexOf(1))
}

func TestViewState_Totals(t *testing.T) {
	all := append(sampleLedger(),
		txn(5, "2024-01-04", model.CategoryOther, "corrupt", math.NaN(), model.TypeExpense))
	v := Recompute(all, DefaultCriteria(), NewSortState(), NoSelection)

	totals := v.Totals()
	assert.InDelta(t, 2500.0, totals.Income, 0.001)
	assert.InDelta(t, 1245.5, totals.Expense, 0.001)
	assert.InDelta(t, 1254.5, totals.Net, 0.001)
	assert.Equal(t, 1, totals.Invalid)
}

func TestViewState_IndexOf(t *testing.T) {
	v := Recompute(sampleLedger(), DefaultCriteria(), NewSortState().Activate(ColumnAmount), NoSelection)
	assert.Equal(t, 0, v.IndexOf(4))
	assert.Equal(t, 3, v.IndexOf(3))
	assert.Equal(t, -1, v.IndexOf(99))
}

func TestDiff(t *testing.T) {
	all := sampleLedger()
	base := Recompute(all, DefaultCriteria(), NewSortState(), NoSelection)

	t.Run("filter removes rows", func(t *testing.T) {
		next := Recompute(all, FilterCriteria{Type: model.TypeIncome}, NewSortState(), NoSelection)
		d := Diff(base, next)
		assert.ElementsMatch(t, []int64{1, 2, 4}, d.Removed)
		assert.Empty(t, d.Added)
		assert.False(t, d.OrderChanged)
		assert.False(t, d.SortChanged)
	})

	t.Run("sort changes order", func(t *testing.T) {
		next := Recompute(all, DefaultCriteria(), NewSortState().Activate(ColumnAmount), NoSelection)
		d := Diff(base, next)
		assert.True(t, d.OrderChanged)
		assert.True(t, d.SortChanged)
		assert.Empty(t, d.Added)
		assert.Empty(t, d.Removed)
	})

	t.Run("selection change", func(t *testing.T) {
		next := Recompute(all, DefaultCriteria(), NewSortState(), Select(2))
		d := Diff(base, next)
		assert.True(t, d.SelectionChanged)
		assert.False(t, d.IsEmpty())
	})

	t.Run("new rows are added", func(t *testing.T) {
		more := append(sampleLedger(), txn(9, "2024-02-01", model.CategoryFood, "new", 1, model.TypeExpense))
		next := Recompute(more, DefaultCriteria(), NewSortState(), NoSelection)
		d := Diff(base, next)
		assert.Equal(t, []int64{9}, d.Added)
		assert.False(t, d.OrderChanged)
	})
}
