package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/cobra"
)

// entryFlags are the record fields accepted by add and edit.
type entryFlags struct {
	date        string
	category    string
	description string
	typ         string
	amount      string
}

func addEntryFlags(cmd *cobra.Command, f *entryFlags, defaultType string) {
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&f.description, "description", "m", "", "what the money was for")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "positive amount, e.g. 12.50")
	cmd.Flags().StringVarP(&f.typ, "type", "t", defaultType, "Income or Expense")
}

// anyChanged reports whether any field flag was passed.
func (f entryFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"date", "category", "description", "amount", "type"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags onto txn. When onlyChanged is set, flags the user
// did not pass leave the field untouched.
func (f entryFlags) apply(cmd *cobra.Command, txn *model.Transaction, categories model.CategorySet, onlyChanged bool) error {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}

	if set("date") {
		d, err := model.ParseDate(strings.TrimSpace(f.date))
		if err != nil {
			return err
		}
		txn.Date = model.FormatDate(d)
	}
	if set("category") {
		category, err := categories.Lookup(f.category)
		if err != nil {
			return err
		}
		txn.Category = category
	}
	if set("description") {
		txn.Description = strings.TrimSpace(f.description)
	}
	if set("amount") {
		amount, ok := model.ParseAmount(f.amount)
		if !ok {
			return fmt.Errorf("%w: %q", model.ErrInvalidAmount, f.amount)
		}
		txn.Amount = amount
	}
	if set("type") {
		typ, err := model.ParseTransactionType(f.typ)
		if err != nil {
			return err
		}
		txn.Type = typ
	}
	return nil
}

// validateEntry wraps form validation failures for display.
func validateEntry(txn model.Transaction, categories model.CategorySet) error {
	if err := model.ValidateEntry(txn, categories); err != nil {
		return common.NewUserError("invalid transaction:\n"+err.Error(), fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}
	return nil
}

// describe renders one transaction on a single line.
func describe(txn model.Transaction) string {
	return fmt.Sprintf("#%d %s %s %q %s (%s)",
		txn.ID, txn.Date, txn.Category, txn.Description, txn.DisplayAmount(), txn.Type)
}
