package engine

import (
	"math"
	"slices"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Tone is the coloring class of a row.
type Tone int

const (
	// ToneExpense colors money going out.
	ToneExpense Tone = iota
	// ToneIncome colors money coming in.
	ToneIncome
)

// ViewRow is one render-ready row. It is derived on every recompute and
// never stored.
type ViewRow struct {
	Transaction model.Transaction
	Tone        Tone
	Visible     bool
	// Highlighted marks the row's cell in ViewState.HighlightedColumn() for
	// emphasis. It is set on every row while a sort column is active.
	Highlighted bool
}

// ViewState is the derived, render-ready ledger view.
type ViewState struct {
	Criteria  FilterCriteria
	Sort      SortState
	Rows      []ViewRow
	Selection Selection
	Total     int // transactions considered
	Hidden    int // transactions removed by the filter
}

// Totals summarizes the visible rows.
type Totals struct {
	Income  float64
	Expense float64
	Net     float64
	Invalid int // rows whose amount is not a number
}

// Recompute derives the view: filter, then order, then annotate, then
// reconcile the selection against what is left. It never modifies its
// inputs and returns equal results for equal inputs.
func Recompute(all []model.Transaction, criteria FilterCriteria, sort SortState, selection Selection) ViewState {
	filtered := Filter(all, criteria)

	if sort.IsActive() {
		filtered = Order(filtered, sort.Active, sort.DirectionFor(sort.Active))
	}

	rows := make([]ViewRow, len(filtered))
	for i, t := range filtered {
		rows[i] = ViewRow{
			Transaction: t,
			Visible:     true,
			Highlighted: sort.IsActive(),
			Tone:        toneOf(t),
		}
	}

	return ViewState{
		Rows:      rows,
		Selection: Reconcile(selection, rows),
		Sort:      sort,
		Criteria:  criteria,
		Total:     len(all),
		Hidden:    len(all) - len(rows),
	}
}

func toneOf(t model.Transaction) Tone {
	if t.IsIncome() {
		return ToneIncome
	}
	return ToneExpense
}

// Transactions returns the visible transactions in display order.
func (v ViewState) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Transaction
	}
	return out
}

// SelectedRow returns the selected row, if it is visible.
func (v ViewState) SelectedRow() (ViewRow, bool) {
	id, ok := v.Selection.ID()
	if !ok {
		return ViewRow{}, false
	}
	for _, r := range v.Rows {
		if r.Transaction.ID == id {
			return r, true
		}
	}
	return ViewRow{}, false
}

// CanEdit reports whether edit and delete should be enabled.
func (v ViewState) CanEdit() bool {
	return v.Selection.ValidIn(v.Rows)
}

// IndexOf returns the display index of id, or -1.
func (v ViewState) IndexOf(id int64) int {
	return slices.IndexFunc(v.Rows, func(r ViewRow) bool { return r.Transaction.ID == id })
}

// HighlightedColumn is the column painted as sorted, ColumnNone if none.
func (v ViewState) HighlightedColumn() Column {
	return v.Sort.Active
}

// Totals sums income and expense over the visible rows.
func (v ViewState) Totals() Totals {
	var t Totals
	for _, r := range v.Rows {
		amount := r.Transaction.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			t.Invalid++
			continue
		}
		if r.Tone == ToneIncome {
			t.Income += amount
		} else {
			t.Expense += amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// ViewDiff describes what changed between two view states.
type ViewDiff struct {
	Added            []int64
	Removed          []int64
	OrderChanged     bool
	SelectionChanged bool
	SortChanged      bool
}

// IsEmpty reports whether nothing changed.
func (d ViewDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 &&
		!d.OrderChanged && !d.SelectionChanged && !d.SortChanged
}

// Diff compares two view states so a renderer can decide what to repaint.
// OrderChanged only considers rows present in both states.
func Diff(prev, next ViewState) ViewDiff {
	var d ViewDiff

	prevIDs := make(map[int64]bool, len(prev.Rows))
	for _, r := range prev.Rows {
		prevIDs[r.Transaction.ID] = true
	}
	nextIDs := make(map[int64]bool, len(next.Rows))
	for _, r := range next.Rows {
		nextIDs[r.Transaction.ID] = true
		if !prevIDs[r.Transaction.ID] {
			d.Added = append(d.Added, r.Transaction.ID)
		}
	}
	for _, r := range prev.Rows {
		if !nextIDs[r.Transaction.ID] {
			d.Removed = append(d.Removed, r.Transaction.ID)
		}
	}

	var prevOrder, nextOrder []int64
	for _, r := range prev.Rows {
		if nextIDs[r.Transaction.ID] {
			prevOrder = append(prevOrder, r.Transaction.ID)
		}
	}
	for _, r := range next.Rows {
		if prevIDs[r.Transaction.ID] {
			nextOrder = append(nextOrder, r.Transaction.ID)
		}
	}
	d.OrderChanged = !slices.Equal(prevOrder, nextOrder)

	d.SelectionChanged = prev.Selection != next.Selection
	d.SortChanged = !prev.Sort.Equal(next.Sort)
	return d
}
