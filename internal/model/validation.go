package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Entry validation errors.
var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingDescription = errors.New("description is required")
)

// ValidateEntry checks a transaction the way the entry form does before it
// is handed to the store. The view engine never calls this; it accepts
// whatever the store returns.
func ValidateEntry(t Transaction, categories CategorySet) error {
	var errs []error

	if _, err := ParseDate(t.Date); err != nil {
		errs = append(errs, err)
	}
	if !categories.Contains(t.Category) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category))
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, ErrMissingDescription)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be a positive number", ErrInvalidAmount))
	}
	if !t.Type.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidType, t.Type))
	}

	return errors.Join(errs...)
}
