package tui

import "github.com/Veraticus/spice-ledger/internal/model"

// Data loading messages.
type transactionsLoadedMsg struct {
	err          error
	transactions []model.Transaction
}

// Store write messages.
type transactionDeletedMsg struct {
	err error
	id  int64
}

type exportedMsg struct {
	err   error
	path  string
	count int
}

// mode is the input mode of the browser.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeDateRange
	modeConfirmDelete
)

func (m mode) String() string {
	switch m {
	case modeSearch:
		return "Search"
	case modeDateRange:
		return "Dates"
	case modeConfirmDelete:
		return "Delete"
	default:
		return "Browse"
	}
}
