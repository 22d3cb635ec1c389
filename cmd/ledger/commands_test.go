package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/storage"
	"github.com/Veraticus/spice-ledger/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240122120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012201
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// setupConfig installs a configuration backed by a fresh database file.
func setupConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	appConfig = &config.Config{
		DatabasePath: filepath.Join(dir, "ledger.db"),
		ExportDir:    dir,
		Theme:        config.DefaultThemeName,
		LogFormat:    "console",
		LogLevel:     slog.LevelInfo,
		Categories:   model.DefaultCategories,
	}
	t.Cleanup(func() { appConfig = nil })
	return appConfig
}

// seed writes txns to the configured database.
func seed(t *testing.T, txns ...model.Transaction) {
	t.Helper()
	ctx := context.Background()
	store, err := storage.NewSQLiteStorage(appConfig.DatabasePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))
	for _, txn := range txns {
		_, err := store.Create(ctx, txn)
		require.NoError(t, err)
	}
}

// stored returns every row in the configured database, newest first.
func stored(t *testing.T) []model.Transaction {
	t.Helper()
	ctx := context.Background()
	store, err := storage.NewSQLiteStorage(appConfig.DatabasePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))
	txns, err := store.QueryAll(ctx)
	require.NoError(t, err)
	return txns
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddCmd(t *testing.T) {
	setupConfig(t)

	out, err := execute(t, addCmd(), "", "-c", "food", "-m", "Lunch with Bob", "-a", "12.5", "--date", "2024-01-20")
	require.NoError(t, err)
	assert.Contains(t, out, `Added #1 2024-01-20 Food "Lunch with Bob" 12.50 (Expense)`)

	out, err = execute(t, addCmd(), "", "-c", "Other", "-m", "Paycheck", "-a", "2500", "-t", "income", "--date", "2024-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "(Income)")

	txns := stored(t)
	require.Len(t, txns, 2)
	assert.Equal(t, "Lunch with Bob", txns[0].Description)
	assert.Equal(t, model.TypeIncome, txns[1].Type)
}

func TestAddCmd_Validation(t *testing.T) {
	setupConfig(t)

	tests := []struct {
		name    string
		wantErr error
		want    string
		args    []string
	}{
		{
			name:    "misspelled category suggests",
			args:    []string{"-c", "fod", "-m", "x", "-a", "1"},
			wantErr: model.ErrInvalidCategory,
			want:    `did you mean "Food"`,
		},
		{
			name:    "negative amount",
			args:    []string{"-c", "Food", "-m", "x", "--amount=-5"},
			wantErr: model.ErrInvalidAmount,
		},
		{
			name:    "amount is not a number",
			args:    []string{"-c", "Food", "-m", "x", "-a", "lots"},
			wantErr: model.ErrInvalidAmount,
		},
		{
			name:    "blank description",
			args:    []string{"-c", "Food", "-m", "  ", "-a", "3"},
			wantErr: model.ErrMissingDescription,
		},
		{
			name:    "bad date",
			args:    []string{"-c", "Food", "-m", "x", "-a", "3", "--date", "01/02/2024"},
			wantErr: model.ErrInvalidDate,
		},
		{
			name:    "unknown type",
			args:    []string{"-c", "Food", "-m", "x", "-a", "3", "-t", "transfer"},
			wantErr: model.ErrInvalidType,
		},
		{
			name: "missing required flag",
			args: []string{"-c", "Food", "-a", "3"},
			want: `"description" not set`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, addCmd(), "", tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.want != "" {
				assert.ErrorContains(t, err, tt.want)
			}
		})
	}

	assert.Empty(t, stored(t))
}

func TestEditCmd(t *testing.T) {
	setupConfig(t)
	seed(t, testutil.NewTransactionBuilder().WithDate("2024-01-20").WithCategory(model.CategoryFood).
		WithDescription("Lunch with Bob").WithAmount(12.5).Build())

	out, err := execute(t, editCmd(), "", "1", "--amount", "13.75", "-m", "Lunch with Bob and Ann")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated #1")

	txns := stored(t)
	require.Len(t, txns, 1)
	assert.InDelta(t, 13.75, txns[0].Amount, 0.001)
	assert.Equal(t, "Lunch with Bob and Ann", txns[0].Description)
	assert.Equal(t, model.CategoryFood, txns[0].Category, "untouched fields keep their value")
	assert.Equal(t, "2024-01-20", txns[0].Date)

	_, err = execute(t, editCmd(), "", "1")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = execute(t, editCmd(), "", "99", "-a", "1")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "transaction #99 does not exist", common.UserMessage(err))

	_, err = execute(t, editCmd(), "", "abc", "-a", "1")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDeleteCmd(t *testing.T) {
	setupConfig(t)
	seed(t, testutil.SampleLedger()[:2]...)

	out, err := execute(t, deleteCmd(), "n\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete this transaction? [y/N]")
	assert.Contains(t, out, "Nothing deleted")
	assert.Len(t, stored(t), 2)

	// End of input counts as no.
	_, err = execute(t, deleteCmd(), "", "1")
	require.NoError(t, err)
	assert.Len(t, stored(t), 2)

	out, err = execute(t, deleteCmd(), "y\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted transaction #1")
	assert.Len(t, stored(t), 1)

	out, err = execute(t, deleteCmd(), "", "--yes", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Empty(t, stored(t))

	_, err = execute(t, deleteCmd(), "", "--yes", "2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListCmd(t *testing.T) {
	setupConfig(t)
	seed(t, testutil.SampleLedger()...)

	out, err := execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "6 of 6 shown")
	assert.Less(t, strings.Index(out, "Lunch with Bob"), strings.Index(out, "January rent"), "newest first")

	out, err = execute(t, listCmd(), "", "--category", "food", "--sort", "amount", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 shown")
	assert.Contains(t, out, "Amount ▼")
	assert.Less(t, strings.Index(out, "Groceries"), strings.Index(out, "Lunch with Bob"))
	assert.NotContains(t, out, "Paycheck")

	out, err = execute(t, listCmd(), "", "--from", "2024-01-10", "--type", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 shown")
	assert.Contains(t, out, "Concert tickets")

	_, err = execute(t, listCmd(), "", "--sort", "payee")
	assert.Error(t, err)
}

func TestListCmd_SearchFoldsAccents(t *testing.T) {
	setupConfig(t)
	seed(t,
		testutil.NewTransactionBuilder().WithDate("2024-01-20").WithCategory(model.CategoryFood).
			WithDescription("CAFÉ LATTE").WithAmount(4.5).Build(),
		testutil.NewTransactionBuilder().WithDate("2024-01-21").WithCategory(model.CategoryFood).
			WithDescription("Tea").WithAmount(3).Build(),
	)

	out, err := execute(t, listCmd(), "", "--search", "café")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 shown")
	assert.Contains(t, out, "CAFÉ LATTE")

	out, err = execute(t, exportCmd(), "", "-o", "-", "-s", "Café")
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Description,Amount,Type\n2024-01-20,Food,CAFÉ LATTE,4.50,Expense\n", out)
}

func TestExportCmd(t *testing.T) {
	cfg := setupConfig(t)
	seed(t, testutil.SampleLedger()...)

	out, err := execute(t, exportCmd(), "", "--output", "-", "--type", "income")
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Description,Amount,Type\n2024-01-15,Other,Paycheck,2500.00,Income\n", out)

	path := filepath.Join(cfg.ExportDir, "food")
	out, err = execute(t, exportCmd(), "", "-o", path, "-c", "Food", "--sort", "date")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 transactions to "+path+".csv")

	data, err := os.ReadFile(path + ".csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Description,Amount,Type\n"+
		"2024-01-03,Food,Groceries,82.40,Expense\n"+
		"2024-01-20,Food,Lunch with Bob,12.50,Expense\n", string(data))
}

func TestImportOFXCmd(t *testing.T) {
	setupConfig(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "statement.ofx")
	require.NoError(t, os.WriteFile(file, []byte(statementOFX), 0o600))

	out, err := execute(t, importOFXCmd(), "", "--dry-run", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 2 transactions parsed")
	assert.Empty(t, stored(t))

	out, err = execute(t, importOFXCmd(), "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 new transactions (0 already present)")

	txns := stored(t)
	require.Len(t, txns, 2)
	assert.Equal(t, "ACME PAYROLL", txns[0].Description)
	assert.Equal(t, model.TypeIncome, txns[0].Type)
	assert.Equal(t, model.CategoryOther, txns[0].Category)
	assert.Equal(t, model.TypeExpense, txns[1].Type)
	assert.InDelta(t, 25.5, txns[1].Amount, 0.001)

	// Importing the same statement again adds nothing.
	out, err = execute(t, importOFXCmd(), "", "--category", "food", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 new transactions (2 already present)")
	assert.Len(t, stored(t), 2)

	_, err = execute(t, importOFXCmd(), "", filepath.Join(dir, "*.pdf"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCollectStatementFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"checking.ofx",
		"savings.OFX",
		"credit.qfx",
		"report.pdf",
		"subdir/another.ofx",
		"subdir/nested/deep.OFX",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("test"), 0o600))
	}

	files, err := collectStatementFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		assert.NotEqual(t, ".pdf", filepath.Ext(f))
	}

	// Globs and direct paths are merged without duplicates.
	files, err = collectStatementFiles([]string{
		filepath.Join(dir, "*.ofx"),
		filepath.Join(dir, "checking.ofx"),
		filepath.Join(dir, "report.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "checking.ofx"), filepath.Join(dir, "report.pdf")}, files)

	files, err = collectStatementFiles([]string{filepath.Join(dir, "missing-*.ofx")})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMigrateCmd(t *testing.T) {
	setupConfig(t)

	out, err := execute(t, migrateCmd(), "", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 0")
	assert.Contains(t, out, "Latest version:  4")

	out, err = execute(t, migrateCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated schema from version 0 to 4")

	out, err = execute(t, migrateCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema already at version 4")

	out, err = execute(t, migrateCmd(), "", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 4")
	assert.Contains(t, out, "Transactions:    0")
}

func TestCategoriesCmd(t *testing.T) {
	cfg := setupConfig(t)
	seed(t, testutil.SampleLedger()...)
	cfg.Categories = model.CategorySet{model.CategoryFood, model.CategoryRent, model.CategoryTransport, model.CategoryOther}

	out, err := execute(t, categoriesCmd(), "")
	require.NoError(t, err)
	assert.Regexp(t, `Food\s+2`, out)
	assert.Regexp(t, `Rent\s+1`, out)
	assert.Contains(t, out, `1 transactions use unconfigured category "Entertainment"`)
}

func TestViewFlagsCriteria(t *testing.T) {
	categories := model.DefaultCategories

	c, err := viewFlags{category: "ALL", typ: "all"}.criteria(categories)
	require.NoError(t, err)
	assert.True(t, c.IsDefault())

	c, err = viewFlags{search: "bob", category: "rent", typ: "Expense", from: "2024-01-01"}.criteria(categories)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryRent, c.Category)
	assert.Equal(t, model.TypeExpense, c.Type)
	require.NotNil(t, c.DateRange)
	assert.Equal(t, "2024-01-01..9999-12-31", c.DateRange.String())

	c, err = viewFlags{from: " 2024-01-01 ", to: "2024-01-31\n"}.criteria(categories)
	require.NoError(t, err, "flag values are trimmed before parsing")
	assert.Equal(t, "2024-01-01..2024-01-31", c.DateRange.String())

	_, err = viewFlags{to: "someday"}.criteria(categories)
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = viewFlags{category: "Travel"}.criteria(categories)
	assert.ErrorIs(t, err, model.ErrInvalidCategory)
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-3", "x"} {
		_, err := parseID(bad)
		assert.ErrorIs(t, err, common.ErrInvalidInput, bad)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, versionCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "ledger dev\n", out)
}
