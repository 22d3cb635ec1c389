// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and display format of a transaction date.
const DateLayout = "2006-01-02"

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "Income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "Expense"
)

// Transaction represents a single recorded income or expense entry.
type Transaction struct {
	Date        string // YYYY-MM-DD, kept verbatim from the store
	Category    Category
	Description string
	Type        TransactionType
	ExternalID  string // FITID for imported rows, empty for manual entries
	Amount      float64
	ID          int64
}

// ParsedDate parses the transaction date. Stored data is not trusted, so
// callers must handle the error.
func (t Transaction) ParsedDate() (time.Time, error) {
	return ParseDate(t.Date)
}

// DisplayAmount renders the amount the way it is shown and exported.
func (t Transaction) DisplayAmount() string {
	return FormatAmount(t.Amount)
}

// IsIncome reports whether the transaction is an income entry.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// ParseDate parses a YYYY-MM-DD date. Surrounding whitespace is rejected so
// a padded stored date fails the same way it does in SQL.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDate renders a date in storage format.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// FormatAmount renders an amount with exactly two decimal digits.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// ParseAmount parses a displayed amount. NaN and infinities are rejected so
// that they never compare as real numbers.
func ParseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTransactionType parses a type name case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// IsValid reports whether the type is one of the known types.
func (tt TransactionType) IsValid() bool {
	return tt == TypeIncome || tt == TypeExpense
}
