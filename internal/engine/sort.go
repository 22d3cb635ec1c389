package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Column identifies a displayed ledger column.
type Column int

// Displayed columns, in display order after ColumnNone.
const (
	ColumnNone Column = iota
	ColumnDate
	ColumnCategory
	ColumnDescription
	ColumnAmount
	ColumnType
)

// Columns lists the sortable columns in display order.
var Columns = []Column{ColumnDate, ColumnCategory, ColumnDescription, ColumnAmount, ColumnType}

func (c Column) String() string {
	switch c {
	case ColumnDate:
		return "Date"
	case ColumnCategory:
		return "Category"
	case ColumnDescription:
		return "Description"
	case ColumnAmount:
		return "Amount"
	case ColumnType:
		return "Type"
	default:
		return "None"
	}
}

// ParseColumn resolves a column name case-insensitively.
func ParseColumn(name string) (Column, error) {
	for _, c := range Columns {
		if strings.EqualFold(c.String(), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	if strings.EqualFold(strings.TrimSpace(name), "none") || strings.TrimSpace(name) == "" {
		return ColumnNone, nil
	}
	return ColumnNone, fmt.Errorf("unknown column %q", name)
}

// Direction is a sort direction.
type Direction int

const (
	// Ascending sorts smallest first.
	Ascending Direction = iota
	// Descending sorts largest first.
	Descending
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Arrow is the indicator painted next to a sorted column header.
func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// SortState records which column is active and the last direction used for
// every column. Values are snapshots: transitions return new states and
// never modify the receiver.
type SortState struct {
	directions map[Column]Direction
	Active     Column
}

// NewSortState returns a state with no active column and no memory.
func NewSortState() SortState {
	return SortState{Active: ColumnNone}
}

// DirectionFor returns the remembered direction for c, ascending if c was
// never sorted.
func (s SortState) DirectionFor(c Column) Direction {
	if d, ok := s.directions[c]; ok {
		return d
	}
	return Ascending
}

// IsActive reports whether any column is active.
func (s SortState) IsActive() bool {
	return s.Active != ColumnNone
}

// Activate applies the toggle rule: activating the active column flips its
// direction, activating any other column reuses that column's remembered
// direction and deactivates the previous one.
func (s SortState) Activate(c Column) SortState {
	if c == ColumnNone {
		return ClearSort(s)
	}

	dir := s.DirectionFor(c)
	if s.Active == c {
		dir = dir.Flip()
	}

	next := SortState{
		Active:     c,
		directions: maps.Clone(s.directions),
	}
	if next.directions == nil {
		next.directions = make(map[Column]Direction, len(Columns))
	}
	next.directions[c] = dir
	return next
}

// Equal reports whether two states have the same active column and memory.
func (s SortState) Equal(other SortState) bool {
	if s.Active != other.Active {
		return false
	}
	for _, c := range Columns {
		if s.DirectionFor(c) != other.DirectionFor(c) {
			return false
		}
	}
	return true
}

// Sort activates column on state and orders rows accordingly.
func Sort(rows []model.Transaction, state SortState, column Column) ([]model.Transaction, SortState) {
	next := state.Activate(column)
	if !next.IsActive() {
		return slices.Clone(rows), next
	}
	return Order(rows, next.Active, next.DirectionFor(next.Active)), next
}

// ClearSort deactivates sorting without forgetting per-column directions.
// The caller shows rows in their default order again.
func ClearSort(state SortState) SortState {
	return SortState{
		Active:     ColumnNone,
		directions: maps.Clone(state.directions),
	}
}

// Order returns a stably sorted copy of rows. Descending reverses the
// comparison rather than the result, so equal rows keep their relative order.
func Order(rows []model.Transaction, column Column, dir Direction) []model.Transaction {
	out := slices.Clone(rows)
	if column == ColumnNone {
		return out
	}

	cmp := comparator(column)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		if dir == Descending {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func comparator(column Column) func(a, b model.Transaction) int {
	switch column {
	case ColumnDate:
		return compareDates
	case ColumnAmount:
		return compareAmounts
	case ColumnCategory:
		return func(a, b model.Transaction) int { return strings.Compare(string(a.Category), string(b.Category)) }
	case ColumnDescription:
		return func(a, b model.Transaction) int { return strings.Compare(a.Description, b.Description) }
	case ColumnType:
		return func(a, b model.Transaction) int { return strings.Compare(string(a.Type), string(b.Type)) }
	default:
		return func(model.Transaction, model.Transaction) int { return 0 }
	}
}

// compareDates orders chronologically. Unparsable dates sort below every
// valid date and compare equal to each other.
func compareDates(a, b model.Transaction) int {
	da, errA := a.ParsedDate()
	db, errB := b.ParsedDate()
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return da.Compare(db)
}

// compareAmounts orders by the numeric value of the displayed amount.
// Amounts that do not parse are the lowest possible value.
func compareAmounts(a, b model.Transaction) int {
	va, okA := model.ParseAmount(a.DisplayAmount())
	vb, okB := model.ParseAmount(b.DisplayAmount())
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}
