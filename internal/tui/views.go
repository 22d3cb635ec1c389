package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	sections := []string{
		m.renderTitle(),
		m.table.View(),
		m.renderSummary(),
		m.renderBottomBar(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Subtitle.Render("Loading transactions…"),
	)
}

func (m Model) renderTitle() string {
	v := m.session.View()
	title := m.theme.Title.Render("Ledger")
	filter := m.theme.Subtitle.Render(v.Criteria.Describe())
	return title + "  " + filter
}

// renderSummary shows counts and totals of the visible rows.
func (m Model) renderSummary() string {
	v := m.session.View()
	totals := v.Totals()

	parts := []string{
		m.theme.Normal.Render(fmt.Sprintf("%d of %d shown", len(v.Rows), v.Total)),
		m.theme.Income.Render("income " + model.FormatAmount(totals.Income)),
		m.theme.Expense.Render("expense " + model.FormatAmount(totals.Expense)),
		m.theme.Normal.Render("net " + model.FormatAmount(totals.Net)),
	}
	if totals.Invalid > 0 {
		parts = append(parts, m.theme.StatusError.Render(fmt.Sprintf("%d unreadable amounts", totals.Invalid)))
	}
	if row, ok := v.SelectedRow(); ok {
		parts = append(parts, m.theme.Prompt.Render(fmt.Sprintf("selected #%d", row.Transaction.ID)))
	}
	return strings.Join(parts, m.theme.Subtitle.Render(" · "))
}

// renderBottomBar shows the active prompt, or the mode and last status.
func (m Model) renderBottomBar() string {
	switch m.mode {
	case modeSearch, modeDateRange:
		line := m.input.View()
		if m.statusIsError && m.status != "" {
			line += "  " + m.theme.StatusError.Render(m.status)
		}
		return line

	case modeConfirmDelete:
		question := fmt.Sprintf("Delete transaction #%d? [y/N]", m.pendingDelete)
		return m.theme.Prompt.Render(question)
	}

	left := m.theme.StatusInfo.Render(m.mode.String())
	status := m.theme.Normal.Render(m.status)
	if m.statusIsError {
		status = m.theme.StatusError.Render(m.status)
	}
	return m.theme.StatusBar.
		Width(max(m.width, 1)).
		MaxWidth(max(m.width, 1)).
		Render(left + "  " + status)
}
