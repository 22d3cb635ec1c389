package testutil

import (
	"github.com/Veraticus/spice-ledger/internal/model"
)

// TransactionBuilder builds transactions for tests. The zero state is a
// valid expense so tests only set what they care about.
type TransactionBuilder struct {
	txn model.Transaction
}

// NewTransactionBuilder starts a builder with sensible defaults.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		txn: model.Transaction{
			Date:        "2024-01-15",
			Category:    model.CategoryOther,
			Description: "test transaction",
			Amount:      10,
			Type:        model.TypeExpense,
		},
	}
}

// WithID sets the id, for tests that bypass the store.
func (b *TransactionBuilder) WithID(id int64) *TransactionBuilder {
	b.txn.ID = id
	return b
}

// WithDate sets the date string verbatim, malformed or not.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.txn.Date = date
	return b
}

// WithCategory sets the category.
func (b *TransactionBuilder) WithCategory(c model.Category) *TransactionBuilder {
	b.txn.Category = c
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(d string) *TransactionBuilder {
	b.txn.Description = d
	return b
}

// WithAmount sets the amount.
func (b *TransactionBuilder) WithAmount(a float64) *TransactionBuilder {
	b.txn.Amount = a
	return b
}

// AsIncome marks the transaction as income.
func (b *TransactionBuilder) AsIncome() *TransactionBuilder {
	b.txn.Type = model.TypeIncome
	return b
}

// AsExpense marks the transaction as an expense.
func (b *TransactionBuilder) AsExpense() *TransactionBuilder {
	b.txn.Type = model.TypeExpense
	return b
}

// WithExternalID sets the statement id.
func (b *TransactionBuilder) WithExternalID(id string) *TransactionBuilder {
	b.txn.ExternalID = id
	return b
}

// Build returns the transaction.
func (b *TransactionBuilder) Build() model.Transaction {
	return b.txn
}

// SampleLedger is a small month of activity covering every category and
// both types. IDs are left zero for the store to assign.
func SampleLedger() []model.Transaction {
	return []model.Transaction{
		NewTransactionBuilder().WithDate("2024-01-01").WithCategory(model.CategoryRent).WithDescription("January rent").WithAmount(1200).Build(),
		NewTransactionBuilder().WithDate("2024-01-03").WithCategory(model.CategoryFood).WithDescription("Groceries").WithAmount(82.4).Build(),
		NewTransactionBuilder().WithDate("2024-01-05").WithCategory(model.CategoryTransport).WithDescription("Bus pass").WithAmount(45).Build(),
		NewTransactionBuilder().WithDate("2024-01-10").WithCategory(model.CategoryEntertainment).WithDescription("Concert tickets").WithAmount(60).Build(),
		NewTransactionBuilder().WithDate("2024-01-15").WithCategory(model.CategoryOther).WithDescription("Paycheck").WithAmount(2500).AsIncome().Build(),
		NewTransactionBuilder().WithDate("2024-01-20").WithCategory(model.CategoryFood).WithDescription("Lunch with Bob").WithAmount(12.5).Build(),
	}
}
