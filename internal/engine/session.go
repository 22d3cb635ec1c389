package engine

import (
	"slices"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Session owns the view parameters of one ledger view. Each view gets its
// own Session, so column direction memory is never shared between views.
// A Session is not safe for concurrent use.
type Session struct {
	transactions []model.Transaction
	criteria     FilterCriteria
	sort         SortState
	selection    Selection
	view         ViewState
}

// NewSession creates a session over transactions in store order.
func NewSession(transactions []model.Transaction) *Session {
	s := &Session{
		criteria:  DefaultCriteria(),
		sort:      NewSortState(),
		selection: NoSelection,
	}
	s.Load(transactions)
	return s
}

// Load replaces the transaction set, e.g. after a store write, and
// reconciles the selection against the new data.
func (s *Session) Load(transactions []model.Transaction) ViewState {
	s.transactions = slices.Clone(transactions)
	return s.recompute()
}

// SetCriteria applies new filter criteria.
func (s *Session) SetCriteria(c FilterCriteria) ViewState {
	s.criteria = c
	return s.recompute()
}

// ResetCriteria restores the show-everything filter.
func (s *Session) ResetCriteria() ViewState {
	return s.SetCriteria(DefaultCriteria())
}

// SortBy activates a column using the toggle rule.
func (s *Session) SortBy(c Column) ViewState {
	s.sort = s.sort.Activate(c)
	return s.recompute()
}

// ClearSort returns to store order, keeping remembered directions.
func (s *Session) ClearSort() ViewState {
	s.sort = ClearSort(s.sort)
	return s.recompute()
}

// Click toggles the selection of a row.
func (s *Session) Click(id int64) ViewState {
	s.selection = Click(id, s.selection)
	return s.recompute()
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() ViewState {
	s.selection = NoSelection
	return s.recompute()
}

// View returns the current view state.
func (s *Session) View() ViewState {
	return s.view
}

// Criteria returns the current filter criteria.
func (s *Session) Criteria() FilterCriteria {
	return s.criteria
}

func (s *Session) recompute() ViewState {
	s.view = Recompute(s.transactions, s.criteria, s.sort, s.selection)
	// A selection demoted here stays cleared when the filter is relaxed.
	s.selection = s.view.Selection
	return s.view
}
