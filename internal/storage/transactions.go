package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
)

const (
	selectColumns  = `SELECT id, date, category, description, amount, type, external_id FROM transactions`
	defaultOrderBy = "date DESC, id DESC"
)

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create inserts a transaction and returns its new id.
func (s *SQLiteStorage) Create(ctx context.Context, txn model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(&txn); err != nil {
		return 0, err
	}

	var id int64
	err := s.withWriteRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO transactions (date, category, description, amount, type, external_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, txn.Date, string(txn.Category), txn.Description, txn.Amount, typeOrDefault(txn.Type), nullString(txn.ExternalID))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Debug("Created transaction", "id", id, "date", txn.Date, "amount", txn.Amount)
	return id, nil
}

// Update overwrites every field of the row with the given id.
func (s *SQLiteStorage) Update(ctx context.Context, id int64, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateTransaction(&txn); err != nil {
		return err
	}

	var affected int64
	err := s.withWriteRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE transactions
			SET date = ?, category = ?, description = ?, amount = ?, type = ?, external_id = ?
			WHERE id = ?
		`, txn.Date, string(txn.Category), txn.Description, txn.Amount, typeOrDefault(txn.Type), nullString(txn.ExternalID), id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// Delete removes the row with the given id.
func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	var affected int64
	err := s.withWriteRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("Deleted transaction", "id", id)
	return nil
}

// GetByID retrieves a single transaction.
func (s *SQLiteStorage) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, classifyError(err))
	}
	txns, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	return &txns[0], nil
}

// QueryAll returns every transaction, most recent date first.
func (s *SQLiteStorage) QueryAll(ctx context.Context) ([]model.Transaction, error) {
	return s.Query(ctx, service.Query{})
}

// Query returns the transactions matching q.
func (s *SQLiteStorage) Query(ctx context.Context, q service.Query) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.query(ctx, s.db, q)
}

func (s *SQLiteStorage) query(ctx context.Context, db queryable, q service.Query) ([]model.Transaction, error) {
	orderBy := q.OrderBy
	if strings.TrimSpace(orderBy) == "" {
		orderBy = defaultOrderBy
	}
	if err := validateOrderBy(orderBy); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(selectColumns)
	if strings.TrimSpace(q.Where) != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(orderBy)

	rows, err := db.QueryContext(ctx, sb.String(), q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", classifyError(err))
	}
	return scanTransactions(rows)
}

// SaveTransactions bulk inserts transactions in one database transaction.
// Rows whose external id is already stored are skipped. It returns how many
// rows were inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	var inserted int
	err := s.withWriteRetry(ctx, func() error {
		n, err := s.saveTransactionsTx(ctx, transactions)
		inserted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info("Saved transactions", "requested", len(transactions), "inserted", inserted)
	return inserted, nil
}

func (s *SQLiteStorage) saveTransactionsTx(ctx context.Context, transactions []model.Transaction) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (date, category, description, amount, type, external_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		res, err := stmt.ExecContext(ctx,
			txn.Date,
			string(txn.Category),
			txn.Description,
			txn.Amount,
			typeOrDefault(txn.Type),
			nullString(txn.ExternalID),
		)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Count returns the number of stored transactions.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", classifyError(err))
	}
	return count, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer func() { _ = rows.Close() }()

	txns := make([]model.Transaction, 0)
	for rows.Next() {
		var (
			txn        model.Transaction
			category   string
			txnType    string
			rawAmount  any
			externalID sql.NullString
		)
		if err := rows.Scan(&txn.ID, &txn.Date, &category, &txn.Description, &rawAmount, &txnType, &externalID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.Category = model.Category(category)
		txn.Type = model.TransactionType(txnType)
		txn.ExternalID = externalID.String

		amount, ok := storedAmount(rawAmount)
		if !ok {
			slog.Warn("Stored amount is not a number", "id", txn.ID, "amount", rawAmount)
		}
		txn.Amount = amount

		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", classifyError(err))
	}
	return txns, nil
}

// storedAmount converts whatever SQLite holds in the amount column. Values
// that are not numbers come back as NaN so they sort lowest.
func storedAmount(v any) (float64, bool) {
	switch a := v.(type) {
	case float64:
		return a, !math.IsNaN(a)
	case int64:
		return float64(a), true
	case []byte:
		return parseStoredAmount(string(a))
	case string:
		return parseStoredAmount(a)
	default:
		return math.NaN(), false
	}
}

func parseStoredAmount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), false
	}
	return f, true
}

func typeOrDefault(t model.TransactionType) string {
	if t == "" {
		return string(model.TypeExpense)
	}
	return string(t)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
