package main

import (
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		f       viewFlags
		showIDs bool
		width   int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print transactions as a table",
		Long: `Print the ledger, most recent first, with optional filters and sorting.

Examples:
  ledger list --category Food --from 2024-01-01 --to 2024-01-31
  ledger list --search lunch --sort amount --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			view, err := f.loadView(ctx, store, cfg.Categories)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), cli.RenderView(view, cli.TableOptions{
				ShowIDs:        showIDs,
				ShowTotals:     true,
				MaxDescription: width,
			}))
			return nil
		},
	}

	addViewFlags(cmd, &f)
	cmd.Flags().BoolVar(&showIDs, "ids", true, "show transaction ids")
	cmd.Flags().IntVar(&width, "width", 40, "truncate descriptions to this many characters (0 for no limit)")

	return cmd
}
