// Package testutil provides shared test helpers: a migrated in-memory
// record store and fluent transaction fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/storage"
)

// TestDB is a migrated in-memory store scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database, seeded with txns.
// Migrations and cleanup are handled automatically.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewTransactionBuilder().WithDescription("lunch").Build(),
//	)
func SetupTestDB(t *testing.T, txns ...model.Transaction) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Storage: store, t: t}
	db.Seed(txns...)
	return db
}

// Seed inserts txns one at a time, in order, and returns their ids.
func (db *TestDB) Seed(txns ...model.Transaction) []int64 {
	db.t.Helper()

	ids := make([]int64, 0, len(txns))
	for _, txn := range txns {
		id, err := db.Storage.Create(context.Background(), txn)
		if err != nil {
			db.t.Fatalf("failed to seed transaction %q: %v", txn.Description, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// All returns every stored transaction in store order or fails the test.
func (db *TestDB) All() []model.Transaction {
	db.t.Helper()

	txns, err := db.Storage.QueryAll(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load transactions: %v", err)
	}
	return txns
}
