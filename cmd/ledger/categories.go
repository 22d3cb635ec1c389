package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the configured categories",
		Long: `Display the categories set in the configuration file, with the number of
transactions filed under each. Categories are fixed at configuration time;
edit the 'categories' list in the config file to change them.`,
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

			txns, err := store.QueryAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			counts := make(map[model.Category]int)
			for _, txn := range txns {
				counts[txn.Category]++
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", cli.TableHeaderStyle.Render("Category"), cli.TableHeaderStyle.Render("Transactions"))
			for _, c := range cfg.Categories {
				fmt.Fprintf(w, "%s\t%d\n", c, counts[c])
				delete(counts, c)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			// Stored rows may use categories that were removed from the config.
			for c, n := range counts {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d transactions use unconfigured category %q", n, c)))
			}
			return nil
		},
	}
}
