// Package engine derives what the ledger shows from the stored transactions
// and the user's view parameters. Everything here is a pure function over
// value snapshots; the presentation layer owns rendering.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

// Sentinels accepted for the category and type filters.
const (
	CategoryAll model.Category        = ""
	TypeAll     model.TransactionType = ""
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a range from two YYYY-MM-DD strings. A start after
// the end is allowed and yields a range that matches nothing.
func ParseDateRange(start, end string) (*DateRange, error) {
	s, err := model.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	e, err := model.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}
	return &DateRange{Start: s, End: e}, nil
}

// IsDegenerate reports whether the range cannot contain any day.
func (r DateRange) IsDegenerate() bool {
	return r.Start.After(r.End)
}

// Contains reports whether d falls inside the range, at day granularity.
func (r DateRange) Contains(d time.Time) bool {
	day := truncateDay(d)
	return !day.Before(truncateDay(r.Start)) && !day.After(truncateDay(r.End))
}

func (r DateRange) String() string {
	return model.FormatDate(r.Start) + ".." + model.FormatDate(r.End)
}

// FilterCriteria is the current filter configuration. The zero value shows
// everything.
type FilterCriteria struct {
	DateRange  *DateRange
	SearchText string
	Category   model.Category
	Type       model.TransactionType
}

// DefaultCriteria returns criteria that match every transaction.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{}
}

// IsDefault reports whether the criteria leave every row visible.
func (c FilterCriteria) IsDefault() bool {
	return c.SearchText == "" && isAllCategory(c.Category) && isAllType(c.Type) && c.DateRange == nil
}

// WithDateRange returns a copy of c with the range replaced. The range is
// copied so later changes to r do not leak into the snapshot.
func (c FilterCriteria) WithDateRange(r *DateRange) FilterCriteria {
	if r != nil {
		copied := *r
		c.DateRange = &copied
	} else {
		c.DateRange = nil
	}
	return c
}

// Describe renders a short human summary of the active filters.
func (c FilterCriteria) Describe() string {
	if c.IsDefault() {
		return "all transactions"
	}

	var parts []string
	if c.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.SearchText))
	}
	if !isAllCategory(c.Category) {
		parts = append(parts, "category "+string(c.Category))
	}
	if !isAllType(c.Type) {
		parts = append(parts, "type "+string(c.Type))
	}
	if c.DateRange != nil {
		parts = append(parts, "dates "+c.DateRange.String())
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether t passes every filter in c. A transaction whose
// date does not parse never passes a date range.
func Matches(t model.Transaction, c FilterCriteria) bool {
	if c.SearchText != "" &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(c.SearchText)) {
		return false
	}
	if !isAllCategory(c.Category) && t.Category != c.Category {
		return false
	}
	if !isAllType(c.Type) && t.Type != c.Type {
		return false
	}
	if c.DateRange != nil {
		if c.DateRange.IsDegenerate() {
			return false
		}
		d, err := t.ParsedDate()
		if err != nil {
			return false
		}
		if !c.DateRange.Contains(d) {
			return false
		}
	}
	return true
}

// Filter returns the transactions matching c, keeping their order.
func Filter(all []model.Transaction, c FilterCriteria) []model.Transaction {
	out := make([]model.Transaction, 0, len(all))
	for _, t := range all {
		if Matches(t, c) {
			out = append(out, t)
		}
	}
	return out
}

// ToStoreQuery compiles c into a parameterized query with the same
// semantics as Matches.
func ToStoreQuery(c FilterCriteria) service.Query {
	var clauses []string
	var args []any

	if c.SearchText != "" {
		// fold is registered by the store and lowercases like strings.ToLower.
		clauses = append(clauses, `fold(description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(c.SearchText))+"%")
	}
	if !isAllCategory(c.Category) {
		clauses = append(clauses, "category = ?")
		args = append(args, string(c.Category))
	}
	if !isAllType(c.Type) {
		clauses = append(clauses, "type = ?")
		args = append(args, string(c.Type))
	}
	if c.DateRange != nil {
		if c.DateRange.IsDegenerate() {
			clauses = append(clauses, "0")
		} else {
			// date(x) = x rejects anything that is not a real YYYY-MM-DD day.
			clauses = append(clauses, "date(date) = date AND date BETWEEN ? AND ?")
			args = append(args, model.FormatDate(c.DateRange.Start), model.FormatDate(c.DateRange.End))
		}
	}

	return service.Query{
		Where:   strings.Join(clauses, " AND "),
		Args:    args,
		OrderBy: "date DESC, id DESC",
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func isAllCategory(c model.Category) bool {
	return c == CategoryAll || strings.EqualFold(string(c), "all")
}

func isAllType(t model.TransactionType) bool {
	return t == TypeAll || strings.EqualFold(string(t), "all")
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
