package main

import (
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a transaction",
		Long: `Change one or more fields of an existing transaction. Fields whose
flags are not given keep their current value.

Example:
  ledger edit 42 --amount 13.75 --category Food`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !f.anyChanged(cmd) {
				return common.NewUserError("nothing to change; pass at least one field flag", common.ErrInvalidInput)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			existing, err := store.GetByID(ctx, id)
			if err != nil {
				if storage.IsNotFound(err) {
					return common.NewUserError(fmt.Sprintf("transaction #%d does not exist", id), err)
				}
				return err
			}

			txn := *existing
			if err := f.apply(cmd, &txn, cfg.Categories, true); err != nil {
				return err
			}
			if err := validateEntry(txn, cfg.Categories); err != nil {
				return err
			}

			if err := store.Update(ctx, id, txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+describe(txn)))
			return nil
		},
	}

	addEntryFlags(cmd, &f, "")
	return cmd
}
