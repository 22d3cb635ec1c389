package engine

import "strconv"

// Selection is the single record that edit and delete act on. The zero
// value is no selection.
type Selection struct {
	id  int64
	set bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// Select returns a selection of id.
func Select(id int64) Selection {
	return Selection{id: id, set: true}
}

// ID returns the selected id and whether anything is selected.
func (s Selection) ID() (int64, bool) {
	return s.id, s.set
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return !s.set
}

// Is reports whether id is the selected row.
func (s Selection) Is(id int64) bool {
	return s.set && s.id == id
}

func (s Selection) String() string {
	if !s.set {
		return "none"
	}
	return strconv.FormatInt(s.id, 10)
}

// Click applies a row click: clicking the selected row clears the
// selection, clicking any other row selects it.
func Click(rowID int64, current Selection) Selection {
	if current.Is(rowID) {
		return NoSelection
	}
	return Select(rowID)
}

// ValidIn reports whether the selection refers to one of rows. No selection
// is never valid, since there is nothing to edit.
func (s Selection) ValidIn(rows []ViewRow) bool {
	if !s.set {
		return false
	}
	for _, r := range rows {
		if r.Transaction.ID == s.id {
			return true
		}
	}
	return false
}

// Reconcile demotes a selection that is not among rows to no selection.
func Reconcile(s Selection, rows []ViewRow) Selection {
	if s.ValidIn(rows) {
		return s
	}
	return NoSelection
}
