package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/engine"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// TableOptions controls RenderView.
type TableOptions struct {
	ShowIDs    bool
	ShowTotals bool
	// MaxDescription truncates long descriptions; zero means no limit.
	MaxDescription int
}

type tableColumn struct {
	header string
	cell   func(model.Transaction) string
	column engine.Column
	right  bool
}

func tableColumns(showIDs bool) []tableColumn {
	cols := []tableColumn{
		{column: engine.ColumnDate, cell: func(t model.Transaction) string { return t.Date }},
		{column: engine.ColumnCategory, cell: func(t model.Transaction) string { return string(t.Category) }},
		{column: engine.ColumnDescription, cell: func(t model.Transaction) string { return t.Description }},
		{column: engine.ColumnAmount, right: true, cell: func(t model.Transaction) string { return t.DisplayAmount() }},
		{column: engine.ColumnType, cell: func(t model.Transaction) string { return string(t.Type) }},
	}
	if showIDs {
		id := tableColumn{
			header: "ID",
			column: engine.ColumnNone,
			right:  true,
			cell:   func(t model.Transaction) string { return strconv.FormatInt(t.ID, 10) },
		}
		cols = append([]tableColumn{id}, cols...)
	}
	return cols
}

// RenderView renders a view state as a plain terminal table. The active
// sort column carries a direction arrow and its cells are emphasized;
// rows are colored by tone and the selected row is marked.
func RenderView(v engine.ViewState, opts TableOptions) string {
	cols := tableColumns(opts.ShowIDs)
	active := v.HighlightedColumn()

	headers := make([]string, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		h := c.header
		if h == "" {
			h = c.column.String()
		}
		if active != engine.ColumnNone && c.column == active {
			h += " " + v.Sort.DirectionFor(active).Arrow()
		}
		headers[i] = h
		widths[i] = lipgloss.Width(h)
	}

	cells := make([][]string, len(v.Rows))
	for r, row := range v.Rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			text := c.cell(row.Transaction)
			if c.column == engine.ColumnDescription && opts.MaxDescription > 0 {
				text = truncate(text, opts.MaxDescription)
			}
			cells[r][i] = text
			widths[i] = max(widths[i], lipgloss.Width(text))
		}
	}

	var sb strings.Builder

	headerCells := make([]string, len(cols))
	for i, c := range cols {
		headerCells[i] = pad(headers[i], widths[i], c.right)
	}
	sb.WriteString(TableHeaderStyle.Render("  " + strings.Join(headerCells, "  ")))
	sb.WriteString("\n")

	for r, row := range v.Rows {
		tone := ExpenseStyle
		if row.Tone == engine.ToneIncome {
			tone = IncomeStyle
		}

		rendered := make([]string, len(cols))
		for i, c := range cols {
			text := pad(cells[r][i], widths[i], c.right)
			style := tone
			if row.Highlighted && c.column == active {
				style = style.Inherit(SortedColumnStyle)
			}
			rendered[i] = style.Render(text)
		}

		line := strings.Join(rendered, "  ")
		marker := "  "
		if v.Selection.Is(row.Transaction.ID) {
			marker = "› "
			line = SelectedStyle.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}

	if len(v.Rows) == 0 {
		sb.WriteString(SubtleStyle.Render("  no transactions match " + v.Criteria.Describe()))
		sb.WriteString("\n")
	}

	if opts.ShowTotals {
		sb.WriteString("\n")
		sb.WriteString(RenderSummary(v))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderSummary is the one-line footer with counts and totals.
func RenderSummary(v engine.ViewState) string {
	totals := v.Totals()

	parts := []string{
		fmt.Sprintf("%d of %d shown", len(v.Rows), v.Total),
		IncomeStyle.Render("income " + model.FormatAmount(totals.Income)),
		ExpenseStyle.Render("expense " + model.FormatAmount(totals.Expense)),
		"net " + model.FormatAmount(totals.Net),
	}
	if totals.Invalid > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d unreadable amounts", totals.Invalid)))
	}
	return SubtleStyle.Render("  ") + strings.Join(parts, SubtleStyle.Render(" · "))
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
