package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/Veraticus/spice-ledger/internal/engine"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/spf13/cobra"
)

// Open-ended date bounds used when only one side of a range is given.
const (
	earliestDate = "0001-01-01"
	latestDate   = "9999-12-31"
)

// currentConfig returns the loaded configuration.
func currentConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("%w: configuration not loaded", common.ErrMissingConfig)
	}
	return appConfig, nil
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseID parses a transaction id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a transaction id", arg), common.ErrInvalidInput)
	}
	return id, nil
}

// viewFlags are the filter and sort flags shared by list and export.
type viewFlags struct {
	search   string
	category string
	typ      string
	from     string
	to       string
	sortBy   string
	desc     bool
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "only descriptions containing this text (case-insensitive)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only this category (default: all)")
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "only Income or Expense (default: all)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "sort column: date, category, description, amount, type")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

// criteria converts the flags into filter criteria.
func (f viewFlags) criteria(categories model.CategorySet) (engine.FilterCriteria, error) {
	c := engine.FilterCriteria{SearchText: f.search}

	if name := strings.TrimSpace(f.category); name != "" && !strings.EqualFold(name, "all") {
		category, err := categories.Lookup(name)
		if err != nil {
			return c, err
		}
		c.Category = category
	}

	if name := strings.TrimSpace(f.typ); name != "" && !strings.EqualFold(name, "all") {
		typ, err := model.ParseTransactionType(name)
		if err != nil {
			return c, err
		}
		c.Type = typ
	}

	if strings.TrimSpace(f.from) != "" || strings.TrimSpace(f.to) != "" {
		from, to := strings.TrimSpace(f.from), strings.TrimSpace(f.to)
		if from == "" {
			from = earliestDate
		}
		if to == "" {
			to = latestDate
		}
		r, err := engine.ParseDateRange(from, to)
		if err != nil {
			return c, err
		}
		c.DateRange = r
	}

	return c, nil
}

// loadView queries the store with the filter pushed down, then derives the
// view from the result.
func (f viewFlags) loadView(ctx context.Context, store service.Storage, categories model.CategorySet) (engine.ViewState, error) {
	criteria, err := f.criteria(categories)
	if err != nil {
		return engine.ViewState{}, err
	}
	column, err := engine.ParseColumn(f.sortBy)
	if err != nil {
		return engine.ViewState{}, err
	}

	txns, err := store.Query(ctx, engine.ToStoreQuery(criteria))
	if err != nil {
		return engine.ViewState{}, fmt.Errorf("failed to query transactions: %w", err)
	}

	session := engine.NewSession(txns)
	session.SetCriteria(criteria)
	if column != engine.ColumnNone {
		session.SortBy(column)
		if f.desc {
			session.SortBy(column)
		}
	}
	return session.View(), nil
}
