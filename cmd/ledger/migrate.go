package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates automatically; this command is useful to
check the schema version or to upgrade a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status {
		lines := []string{
			fmt.Sprintf("Database:        %s", cfg.DatabasePath),
			fmt.Sprintf("Current version: %d", current),
			fmt.Sprintf("Latest version:  %d", storage.ExpectedSchemaVersion),
		}
		if current > 0 {
			count, err := store.Count(ctx)
			if err != nil {
				return err
			}
			lines = append(lines, fmt.Sprintf("Transactions:    %d", count))
		}
		fmt.Fprintln(out, cli.RenderBox(cli.LedgerIcon+" Database migration status", strings.Join(lines, "\n")))
		return nil
	}

	slog.Info("Running database migrations", "database", cfg.DatabasePath, "from_version", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if current == storage.ExpectedSchemaVersion {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Schema already at version %d", current)))
		return nil
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Migrated schema from version %d to %d", current, storage.ExpectedSchemaVersion)))
	return nil
}
