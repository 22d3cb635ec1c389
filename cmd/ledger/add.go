package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a new income or expense entry.

Examples:
  ledger add -c Food -m "Lunch with Bob" -a 12.50
  ledger add --date 2024-01-15 -c Other -m Paycheck -a 2500 -t Income`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("date") {
				f.date = model.FormatDate(time.Now())
			}

			txn := model.Transaction{}
			if err := f.apply(cmd, &txn, cfg.Categories, false); err != nil {
				return err
			}
			if err := validateEntry(txn, cfg.Categories); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := store.Create(ctx, txn)
			if err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}
			txn.ID = id

			slog.Debug("transaction added", "id", id)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added "+describe(txn)))
			return nil
		},
	}

	addEntryFlags(cmd, &f, string(model.TypeExpense))
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
