// Package components contains the widgets of the ledger browser.
package components

import (
	"strings"

	"github.com/Veraticus/spice-ledger/internal/engine"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	dateWidth      = 10
	typeWidth      = 7
	amountWidth    = 12
	minCategory    = 8
	minDescription = 11
	markerWidth    = 2
)

// LedgerTable renders a view state as a scrollable table. It tracks a row
// cursor for navigation and a column cursor for sorting; neither is part of
// the view state itself.
type LedgerTable struct {
	theme  themes.Theme
	view   engine.ViewState
	column engine.Column
	cursor int
	offset int
	width  int
	height int
}

// NewLedgerTable creates an empty table.
func NewLedgerTable(theme themes.Theme) LedgerTable {
	return LedgerTable{
		theme:  theme,
		column: engine.ColumnDate,
		width:  80,
		height: 20,
	}
}

// SetView replaces the rendered view. The cursor stays on the same
// transaction when it is still visible.
func (t *LedgerTable) SetView(v engine.ViewState) {
	var (
		id  int64
		had bool
	)
	if row, ok := t.CursorRow(); ok {
		id, had = row.Transaction.ID, true
	}

	t.view = v
	if had {
		if i := v.IndexOf(id); i >= 0 {
			t.cursor = i
		}
	}
	t.clamp()
}

// SetSize sets the outer width and the number of visible data rows.
func (t *LedgerTable) SetSize(width, height int) {
	t.width = max(width, 40)
	t.height = max(height, 1)
	t.clamp()
}

// Column returns the column under the column cursor.
func (t LedgerTable) Column() engine.Column {
	return t.column
}

// MoveColumn moves the column cursor by delta, wrapping at the edges.
func (t *LedgerTable) MoveColumn(delta int) {
	n := len(engine.Columns)
	i := 0
	for j, c := range engine.Columns {
		if c == t.column {
			i = j
			break
		}
	}
	t.column = engine.Columns[((i+delta)%n+n)%n]
}

// Cursor returns the index of the row under the cursor.
func (t LedgerTable) Cursor() int {
	return t.cursor
}

// CursorRow returns the row under the cursor.
func (t LedgerTable) CursorRow() (engine.ViewRow, bool) {
	if t.cursor < 0 || t.cursor >= len(t.view.Rows) {
		return engine.ViewRow{}, false
	}
	return t.view.Rows[t.cursor], true
}

// Update handles row navigation keys.
func (t LedgerTable) Update(msg tea.Msg) (LedgerTable, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		t.cursor++
	case "k", "up":
		t.cursor--
	case "pgdown", "ctrl+f":
		t.cursor += t.height
	case "pgup", "ctrl+b":
		t.cursor -= t.height
	case "g", "home":
		t.cursor = 0
	case "G", "end":
		t.cursor = len(t.view.Rows) - 1
	}
	t.clamp()
	return t, nil
}

func (t *LedgerTable) clamp() {
	t.cursor = min(t.cursor, len(t.view.Rows)-1)
	t.cursor = max(t.cursor, 0)

	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	t.offset = max(0, min(t.offset, len(t.view.Rows)-t.height))
}

type layout struct {
	widths map[engine.Column]int
}

func (t LedgerTable) layout() layout {
	category := minCategory
	for _, row := range t.view.Rows {
		category = max(category, lipgloss.Width(string(row.Transaction.Category)))
	}

	fixed := markerWidth + dateWidth + category + amountWidth + typeWidth + len(engine.Columns) - 1
	return layout{widths: map[engine.Column]int{
		engine.ColumnDate:        dateWidth,
		engine.ColumnCategory:    category,
		engine.ColumnDescription: max(minDescription, t.width-fixed),
		engine.ColumnAmount:      amountWidth,
		engine.ColumnType:        typeWidth,
	}}
}

// View renders the table.
func (t LedgerTable) View() string {
	if len(t.view.Rows) == 0 {
		return t.theme.Subtitle.Render("No transactions match " + t.view.Criteria.Describe())
	}

	l := t.layout()
	lines := make([]string, 0, t.height+1)
	lines = append(lines, t.renderHeader(l))

	end := min(t.offset+t.height, len(t.view.Rows))
	for i := t.offset; i < end; i++ {
		lines = append(lines, t.renderRow(l, t.view.Rows[i], i == t.cursor))
	}
	return strings.Join(lines, "\n")
}

func (t LedgerTable) renderHeader(l layout) string {
	active := t.view.HighlightedColumn()

	cells := make([]string, 0, len(engine.Columns))
	for _, c := range engine.Columns {
		title := c.String()
		style := t.theme.Header
		if c == active {
			title += " " + t.view.Sort.DirectionFor(c).Arrow()
			style = t.theme.SortedHeader
		}
		if c == t.column {
			style = style.Inherit(t.theme.ColumnCursor)
		}
		cells = append(cells, style.Render(fit(title, l.widths[c], c == engine.ColumnAmount)))
	}
	return strings.Repeat(" ", markerWidth) + strings.Join(cells, " ")
}

func (t LedgerTable) renderRow(l layout, row engine.ViewRow, isCursor bool) string {
	selected := t.view.Selection.Is(row.Transaction.ID)
	active := t.view.HighlightedColumn()

	marker := "  "
	switch {
	case isCursor:
		marker = "▸ "
	case selected:
		marker = "● "
	}

	cells := make([]string, 0, len(engine.Columns))
	for _, c := range engine.Columns {
		style := t.rowStyle(row, selected)
		if row.Highlighted && c == active {
			style = style.Inherit(t.theme.SortedCell)
		}
		if isCursor {
			style = style.Inherit(t.theme.Cursor)
		}
		cells = append(cells, style.Render(fit(cellText(row.Transaction, c), l.widths[c], c == engine.ColumnAmount)))
	}
	return marker + strings.Join(cells, " ")
}

func (t LedgerTable) rowStyle(row engine.ViewRow, selected bool) lipgloss.Style {
	switch {
	case selected:
		return t.theme.Selected
	case row.Tone == engine.ToneIncome:
		return t.theme.Income
	default:
		return t.theme.Expense
	}
}

func cellText(txn model.Transaction, c engine.Column) string {
	switch c {
	case engine.ColumnDate:
		return txn.Date
	case engine.ColumnCategory:
		return string(txn.Category)
	case engine.ColumnDescription:
		return txn.Description
	case engine.ColumnAmount:
		return txn.DisplayAmount()
	case engine.ColumnType:
		return string(txn.Type)
	default:
		return ""
	}
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int, right bool) string {
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	gap := strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
	if right {
		return gap + s
	}
	return s + gap
}
