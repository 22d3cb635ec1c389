// Package export writes ledger rows out as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
)

// Header is the first record of every export.
var Header = []string{"Date", "Category", "Description", "Amount", "Type"}

// WriteCSV writes the header and one record per row, in the order given.
// Commas in descriptions become spaces; any other special characters are
// quoted so the file parses back into the same fields.
func WriteCSV(w io.Writer, rows []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("%w: writing header: %w", common.ErrExportFailed, err)
	}
	for _, t := range rows {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("%w: writing row %d: %w", common.ErrExportFailed, t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	return nil
}

func record(t model.Transaction) []string {
	return []string{
		t.Date,
		string(t.Category),
		strings.ReplaceAll(t.Description, ",", " "),
		t.DisplayAmount(),
		string(t.Type),
	}
}

// ToCSV renders rows as a CSV document.
func ToCSV(rows []model.Transaction) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToFile writes rows to path, appending a .csv extension when missing, and
// returns the path actually written. The file handle is always closed.
func ToFile(path string, rows []model.Transaction) (written string, err error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", common.ErrExportFailed)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		path += ".csv"
	}

	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return "", fmt.Errorf("%w: creating directory: %w", common.ErrExportFailed, mkErr)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the user
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: closing file: %w", common.ErrExportFailed, closeErr)
			written = ""
		}
	}()

	if err := WriteCSV(f, rows); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultFileName names an export taken at now.
func DefaultFileName(now time.Time) string {
	return "ledger-" + now.Format("20060102-150405") + ".csv"
}
