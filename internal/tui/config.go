package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Storage    service.Storage
	Now        func() time.Time
	ExportDir  string
	LogFile    string
	LogFormat  string
	Categories model.CategorySet
	LogLevel   slog.Level
	Width      int
	Height     int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Categories: model.DefaultCategories,
		ExportDir:  ".",
		LogFormat:  "console",
		LogLevel:   slog.LevelInfo,
		Now:        time.Now,
		Width:      80,
		Height:     24,
	}
}

// WithStorage sets the record store.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithCategories sets the categories the category filter cycles through.
func WithCategories(categories model.CategorySet) Option {
	return func(c *Config) {
		if len(categories) > 0 {
			c.Categories = categories
		}
	}
}

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithLogFile sends log output to path while the TUI owns the terminal.
func WithLogFile(path string, level slog.Level, format string) Option {
	return func(c *Config) {
		c.LogFile = path
		c.LogLevel = level
		c.LogFormat = format
	}
}

// WithClock overrides the clock used to name export files.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
