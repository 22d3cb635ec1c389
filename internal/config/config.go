package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath  = "database.path"
	KeyExportDir     = "export.dir"
	KeyTheme         = "tui.theme"
	KeyCategories    = "categories"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyLogFile       = "logging.file"
	EnvPrefix        = "LEDGER"
	DefaultDirName   = "ledger"
	DefaultThemeName = "default"
)

// Themes the TUI knows how to render.
var knownThemes = []string{DefaultThemeName, "catppuccin-mocha"}

// Config is the validated application configuration.
type Config struct {
	DatabasePath string
	ExportDir    string
	Theme        string
	LogFile      string
	LogFormat    string
	Categories   model.CategorySet
	LogLevel     slog.Level
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "$HOME/.local/share/ledger/ledger.db")
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyTheme, DefaultThemeName)
	v.SetDefault(KeyCategories, model.DefaultCategories.Strings())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "$HOME/.local/share/ledger/ledger.log")
}

// Load reads and validates the configuration held by v. Paths are expanded.
func Load(v *viper.Viper) (*Config, error) {
	level, err := common.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(v.GetString(KeyLogFormat))
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, format)
	}

	theme := strings.ToLower(v.GetString(KeyTheme))
	if !slices.Contains(knownThemes, theme) {
		return nil, fmt.Errorf("%w: unknown theme %q (available: %s)",
			common.ErrInvalidConfig, theme, strings.Join(knownThemes, ", "))
	}

	dbPath := ExpandPath(v.GetString(KeyDatabasePath))
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}

	categories, err := model.NewCategorySet(v.GetStringSlice(KeyCategories))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyCategories, err)
	}

	return &Config{
		DatabasePath: dbPath,
		ExportDir:    ExpandPath(v.GetString(KeyExportDir)),
		Theme:        theme,
		Categories:   categories,
		LogLevel:     level,
		LogFormat:    format,
		LogFile:      ExpandPath(v.GetString(KeyLogFile)),
	}, nil
}

// Themes lists the theme names accepted by tui.theme.
func Themes() []string {
	return slices.Clone(knownThemes)
}
