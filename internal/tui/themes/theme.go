// Package themes holds the color schemes of the ledger browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Header       lipgloss.Style
	SortedHeader lipgloss.Style
	ColumnCursor lipgloss.Style
	Income       lipgloss.Style
	Expense      lipgloss.Style
	SortedCell   lipgloss.Style
	Cursor       lipgloss.Style
	Selected     lipgloss.Style
	StatusBar    lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusError  lipgloss.Style
	Prompt       lipgloss.Style
	BorderedBox  lipgloss.Style
	Primary      lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
	Foreground   lipgloss.Color
	Success      lipgloss.Color
	Error        lipgloss.Color
	Warning      lipgloss.Color
}

type palette struct {
	primary, foreground, subtle, muted, border, surface lipgloss.Color
	success, warning, errorColor, info                  lipgloss.Color
}

func newTheme(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Muted:      p.muted,
		Border:     p.border,
		Foreground: p.foreground,
		Success:    p.success,
		Error:      p.errorColor,
		Warning:    p.warning,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.subtle),
		SortedHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		ColumnCursor: lipgloss.NewStyle().
			Underline(true),
		Income: lipgloss.NewStyle().
			Foreground(p.success),
		Expense: lipgloss.NewStyle().
			Foreground(p.errorColor),
		SortedCell: lipgloss.NewStyle().
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(p.surface),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.surface).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.foreground).
			Background(p.border),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errorColor).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#7c3aed"),
	foreground: lipgloss.Color("#fafafa"),
	subtle:     lipgloss.Color("#a3a3a3"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	surface:    lipgloss.Color("#262626"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	errorColor: lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtle:     lipgloss.Color("#a6adc8"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	surface:    lipgloss.Color("#313244"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errorColor: lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
})

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
