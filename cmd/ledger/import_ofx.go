package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/ofx"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/spf13/cobra"
)

// importBatchSize is the number of rows saved per store transaction.
const importBatchSize = 100

func importOFXCmd() *cobra.Command {
	var (
		dryRun   bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files or directories...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) statements exported from your bank.
Credits become Income, debits become Expense. Every row is filed under one
category (default Other). Rows already imported are skipped.

Examples:
  # Import single file
  ledger import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import every statement under a directory
  ledger import-ofx ~/Downloads/statements`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			parser := ofx.NewParser()
			if category != "" {
				parser.Category, err = cfg.Categories.Lookup(category)
				if err != nil {
					return err
				}
			}

			files, err := collectStatementFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return common.NewUserError("no OFX or QFX files found", common.ErrInvalidInput)
			}

			ctx := cmd.Context()
			txns := parseStatements(ctx, parser, files)
			if err := ctx.Err(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No transactions found in any file"))
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(txns))))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inserted, err := saveImported(ctx, store, txns, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present)",
				inserted, len(txns)-inserted)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "parse files without saving")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category for imported rows (default: Other)")

	return cmd
}

// collectStatementFiles expands globs and walks directories for .ofx and
// .qfx files. The result is sorted and free of duplicates.
func collectStatementFiles(args []string) ([]string, error) {
	var files []string

	for _, pattern := range args {
		info, err := os.Stat(pattern)
		if err == nil && info.IsDir() {
			walkErr := filepath.WalkDir(pattern, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isStatementFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", pattern, walkErr)
			}
			continue
		}
		if err == nil {
			files = append(files, pattern)
			continue
		}

		matches, globErr := filepath.Glob(pattern)
		if globErr != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, globErr)
		}
		if len(matches) == 0 {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func isStatementFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".ofx" || ext == ".qfx"
}

// parseStatements parses every file, skipping unreadable ones, and drops
// rows whose FITID was already seen in an earlier file.
func parseStatements(ctx context.Context, parser *ofx.Parser, files []string) []model.Transaction {
	var all []model.Transaction
	seen := make(map[string]bool)

	for _, path := range files {
		if ctx.Err() != nil {
			return all
		}

		txns, accounts, err := parseStatement(ctx, parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			continue
		}

		added := 0
		for _, txn := range txns {
			if txn.ExternalID != "" {
				if seen[txn.ExternalID] {
					continue
				}
				seen[txn.ExternalID] = true
			}
			all = append(all, txn)
			added++
		}

		common.LogDebug("Processed file", common.Fields{
			"file":       filepath.Base(path),
			"accounts":   strings.Join(accounts, ","),
			"found":      len(txns),
			"added":      added,
			"duplicates": len(txns) - added,
		})
	}
	return all
}

// parseStatement returns the rows of one statement and the accounts it covers.
func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	txns, err := parser.ParseFile(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	accounts, err := parser.GetAccounts(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return txns, accounts, nil
}

// saveImported stores txns in batches, reporting progress on w. It returns
// the number of rows that were new.
func saveImported(ctx context.Context, store service.Storage, txns []model.Transaction, w io.Writer) (int, error) {
	bar := cli.NewImportProgress(w, len(txns), "Saving transactions")

	inserted := 0
	for batch := range slices.Chunk(txns, importBatchSize) {
		n, err := store.SaveTransactions(ctx, batch)
		if err != nil {
			return inserted, fmt.Errorf("failed to save transactions: %w", err)
		}
		inserted += n
		if err := bar.Add(len(batch)); err != nil {
			slog.Debug("progress bar update failed", "error", err)
		}
	}
	return inserted, nil
}
