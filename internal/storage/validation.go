package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidID          = errors.New("id must be positive")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidOrder       = errors.New("invalid order clause")
)

// orderTerm matches one "column [ASC|DESC]" term of an ORDER BY clause.
var orderTerm = regexp.MustCompile(`(?i)^(id|date|category|description|amount|type)(\s+(asc|desc))?$`)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a row id could have been assigned by the store.
func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction checks what the schema needs. Business rules such as
// positive amounts belong to the entry layer.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.Date) == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if strings.TrimSpace(string(txn.Category)) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	if txn.Type != "" && !txn.Type.IsValid() {
		return fmt.Errorf("%w: type %q", ErrInvalidTransaction, txn.Type)
	}
	if math.IsNaN(txn.Amount) || math.IsInf(txn.Amount, 0) {
		return fmt.Errorf("%w: amount is not a number", ErrInvalidTransaction)
	}
	return nil
}

// validateOrderBy accepts a comma separated list of known columns with an
// optional direction.
func validateOrderBy(orderBy string) error {
	for _, term := range strings.Split(orderBy, ",") {
		if !orderTerm.MatchString(strings.TrimSpace(term)) {
			return fmt.Errorf("%w: %q", ErrInvalidOrder, orderBy)
		}
	}
	return nil
}
