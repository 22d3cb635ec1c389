package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Veraticus/spice-ledger/internal/export"
	"github.com/Veraticus/spice-ledger/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	loadTimeout  = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// loadTransactions loads every transaction from storage.
func (m Model) loadTransactions() tea.Cmd {
	storage := m.storage
	parent := m.ctx
	return func() tea.Msg {
		if storage == nil {
			return transactionsLoadedMsg{err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()

		transactions, err := storage.QueryAll(ctx)
		if err != nil {
			return transactionsLoadedMsg{err: err}
		}
		slog.Debug("loaded transactions", "count", len(transactions))
		return transactionsLoadedMsg{transactions: transactions}
	}
}

// deleteTransaction removes one transaction from storage.
func (m Model) deleteTransaction(id int64) tea.Cmd {
	storage := m.storage
	parent := m.ctx
	return func() tea.Msg {
		if storage == nil {
			return transactionDeletedMsg{id: id, err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(parent, writeTimeout)
		defer cancel()

		if err := storage.Delete(ctx, id); err != nil {
			return transactionDeletedMsg{id: id, err: err}
		}
		slog.Info("deleted transaction", "id", id)
		return transactionDeletedMsg{id: id}
	}
}

// exportView writes rows to a timestamped CSV file in the export directory.
func (m Model) exportView(rows []model.Transaction) tea.Cmd {
	path := filepath.Join(m.config.ExportDir, export.DefaultFileName(m.config.Now()))
	return func() tea.Msg {
		written, err := export.ToFile(path, rows)
		if err != nil {
			return exportedMsg{err: err}
		}
		slog.Info("exported view", "path", written, "rows", len(rows))
		return exportedMsg{path: written, count: len(rows)}
	}
}
