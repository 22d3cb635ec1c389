package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		f      viewFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Long: `Write the filtered and sorted ledger to a CSV file with the columns
Date, Category, Description, Amount, Type.

Use --output - to write to standard output.`,
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
			rows := view.Transactions()

			if output == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), rows)
			}
			if output == "" {
				output = filepath.Join(cfg.ExportDir, export.DefaultFileName(time.Now()))
			}

			written, err := export.ToFile(output, rows)
			if err != nil {
				return err
			}
			slog.Info("exported transactions", "path", written, "rows", len(rows))
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(rows), written)))
			return nil
		},
	}

	addViewFlags(cmd, &f)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: timestamped file in export.dir)")

	return cmd
}
