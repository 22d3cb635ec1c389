package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spice-ledger/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the ledger browser and blocks until the user quits or ctx is
// cancelled. Logs go to the configured log file while the alternate screen
// is active so they do not corrupt the display.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)
	if m.storage == nil {
		return fmt.Errorf("storage is required")
	}

	restore, err := redirectLogs(m.config)
	if err != nil {
		return err
	}
	defer restore()

	slog.Info("starting ledger browser")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			slog.Info("ledger browser interrupted")
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	slog.Info("ledger browser closed")
	return nil
}

// redirectLogs points the default logger at cfg.LogFile and returns a
// function restoring the previous logger.
func redirectLogs(cfg Config) (func(), error) {
	previous := slog.Default()
	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() { slog.SetDefault(previous) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := common.SetupLoggerTo(f, cfg.LogLevel, cfg.LogFormat); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		slog.SetDefault(previous)
		_ = f.Close()
	}, nil
}
