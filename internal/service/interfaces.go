// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Query is a compiled, parameterized store query. Where is a SQL boolean
// expression over the transactions table using ? placeholders; an empty
// Where selects every row.
type Query struct {
	Where   string
	OrderBy string
	Args    []any
}

// Storage is the record store contract the ledger needs. Rows come back
// most-recent-date-first unless a Query overrides the order.
type Storage interface {
	Create(ctx context.Context, txn model.Transaction) (int64, error)
	Update(ctx context.Context, id int64, txn model.Transaction) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	QueryAll(ctx context.Context) ([]model.Transaction, error)
	Query(ctx context.Context, q Query) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error)
	Count(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
