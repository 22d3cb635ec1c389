package main

import (
	"github.com/Veraticus/spice-ledger/internal/tui"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the ledger interactively",
		Long: `Open the interactive ledger view. Filter with / (search), c (category),
t (type) and r (date range); sort with s on the column under the cursor;
select a row with space and delete it with x; export the view with e.
Press ? for all keys.`,
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

			return tui.Run(ctx,
				tui.WithStorage(store),
				tui.WithTheme(themes.GetTheme(cfg.Theme)),
				tui.WithCategories(cfg.Categories),
				tui.WithExportDir(cfg.ExportDir),
				tui.WithLogFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat),
			)
		},
	}
}
