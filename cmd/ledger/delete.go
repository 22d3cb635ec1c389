package main

import (
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction after confirming. Use --yes to skip the prompt.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.GetByID(ctx, id)
			if err != nil {
				if storage.IsNotFound(err) {
					return common.NewUserError(fmt.Sprintf("transaction #%d does not exist", id), err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, describe(*txn))
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, err := cli.Confirm(ctx, reader, out, "Delete this transaction?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			if err := store.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted transaction #%d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
