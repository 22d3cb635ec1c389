// Package tui implements the interactive ledger browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/engine"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/Veraticus/spice-ledger/internal/service"
	"github.com/Veraticus/spice-ledger/internal/tui/components"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines around the table: title, header,
// summary, status bar and the short help line.
const chromeHeight = 5

// Model holds the main TUI state. All view decisions are delegated to an
// engine.Session; the model only translates keys into session operations.
type Model struct {
	ctx            context.Context
	storage        service.Storage
	session        *engine.Session
	theme          themes.Theme
	config         Config
	keymap         KeyMap
	input          textinput.Model
	help           help.Model
	status         string
	previousSearch string
	table          components.LedgerTable
	shown          engine.ViewState
	pendingDelete  int64
	width          int
	height         int
	mode           mode
	statusIsError  bool
	ready          bool
	quitting       bool
}

// New creates the browser model.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(ctx, cfg)
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.CharLimit = 64
	input.PromptStyle = cfg.Theme.Prompt

	m := Model{
		ctx:     ctx,
		storage: cfg.Storage,
		session: engine.NewSession(nil),
		theme:   cfg.Theme,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		input:   input,
		help:    help.New(),
		table:   components.NewLedgerTable(cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.resize()
	return m
}

// Init starts loading the ledger.
func (m Model) Init() tea.Cmd {
	return m.loadTransactions()
}

// ViewState returns the current engine view state.
func (m Model) ViewState() engine.ViewState {
	return m.session.View()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case transactionsLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.setError("could not load transactions", msg.err)
			return m, nil
		}
		m.apply(m.session.Load(msg.transactions))
		return m, nil

	case transactionDeletedMsg:
		if msg.err != nil && !errors.Is(msg.err, common.ErrNotFound) {
			m.setError(fmt.Sprintf("could not delete transaction %d", msg.id), msg.err)
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("transaction %d was already gone", msg.id))
		} else {
			m.setStatus(fmt.Sprintf("deleted transaction %d", msg.id))
		}
		return m, m.loadTransactions()

	case exportedMsg:
		if msg.err != nil {
			m.setError("export failed", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("exported %d rows to %s", msg.count, msg.path))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDateRange:
			return m.updateDateRange(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == modeSearch || m.mode == modeDateRange {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, k.Search):
		m.previousSearch = m.session.Criteria().SearchText
		cmd := m.startInput(modeSearch, "/", "search descriptions", m.previousSearch)
		return m, cmd

	case key.Matches(msg, k.DateRange):
		current := ""
		if r := m.session.Criteria().DateRange; r != nil {
			current = r.String()
		}
		cmd := m.startInput(modeDateRange, "dates: ", "YYYY-MM-DD..YYYY-MM-DD", current)
		return m, cmd

	case key.Matches(msg, k.CycleCategory):
		c := m.session.Criteria()
		c.Category = m.config.Categories.Next(c.Category)
		m.apply(m.session.SetCriteria(c))
		m.setStatus("category: " + orAll(string(c.Category)))

	case key.Matches(msg, k.CycleType):
		c := m.session.Criteria()
		c.Type = nextType(c.Type)
		m.apply(m.session.SetCriteria(c))
		m.setStatus("type: " + orAll(string(c.Type)))

	case key.Matches(msg, k.ClearFilters):
		m.apply(m.session.ResetCriteria())
		m.setStatus("filters cleared")

	case key.Matches(msg, k.PrevColumn):
		m.table.MoveColumn(-1)

	case key.Matches(msg, k.NextColumn):
		m.table.MoveColumn(1)

	case key.Matches(msg, k.Sort):
		m.sortBy(m.table.Column())

	case key.Matches(msg, k.SortByDate):
		m.sortBy(engine.ColumnDate)

	case key.Matches(msg, k.SortByAmount):
		m.sortBy(engine.ColumnAmount)

	case key.Matches(msg, k.ClearSort):
		m.apply(m.session.ClearSort())
		m.setStatus("store order")

	case key.Matches(msg, k.Select):
		if row, ok := m.table.CursorRow(); ok {
			m.apply(m.session.Click(row.Transaction.ID))
		}

	case key.Matches(msg, k.Delete):
		row, ok := m.session.View().SelectedRow()
		if !ok {
			m.setError("select a row first", common.ErrNoSelection)
			return m, nil
		}
		m.pendingDelete = row.Transaction.ID
		m.mode = modeConfirmDelete

	case key.Matches(msg, k.Export):
		m.setStatus("exporting…")
		return m, m.exportView(m.session.View().Transactions())

	case key.Matches(msg, k.Reload):
		m.setStatus("reloading…")
		return m, m.loadTransactions()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateSearch filters as the user types. Esc restores the previous text.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Accept):
		m.endInput()
		m.setStatus(m.session.Criteria().Describe())
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		m.endInput()
		c := m.session.Criteria()
		c.SearchText = m.previousSearch
		m.apply(m.session.SetCriteria(c))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	c := m.session.Criteria()
	if c.SearchText != m.input.Value() {
		c.SearchText = m.input.Value()
		m.apply(m.session.SetCriteria(c))
	}
	return m, cmd
}

func (m Model) updateDateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Accept):
		var r *engine.DateRange
		if value := strings.TrimSpace(m.input.Value()); value != "" {
			parsed, err := parseRangeInput(value)
			if err != nil {
				m.setError("invalid date range", err)
				return m, nil
			}
			r = parsed
		}
		m.endInput()
		m.apply(m.session.SetCriteria(m.session.Criteria().WithDateRange(r)))
		m.setStatus(m.session.Criteria().Describe())
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		m.endInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.mode = modeBrowse
		m.setStatus("deleting…")
		return m, m.deleteTransaction(m.pendingDelete)

	case key.Matches(msg, m.keymap.Deny):
		m.mode = modeBrowse
		m.setStatus("delete cancelled")
	}
	return m, nil
}

func (m *Model) startInput(md mode, prompt, placeholder, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	m.statusIsError = false
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.input.Blur()
}

func (m *Model) sortBy(c engine.Column) {
	v := m.session.SortBy(c)
	m.apply(v)
	m.setStatus(fmt.Sprintf("sorted by %s %s", c, v.Sort.DirectionFor(c)))
}

// apply hands a recomputed view to the table, skipping the repaint when
// nothing the table draws has changed.
func (m *Model) apply(v engine.ViewState) {
	prev := m.shown
	m.shown = v

	d := engine.Diff(prev, v)
	if d.IsEmpty() && prev.Criteria.Describe() == v.Criteria.Describe() &&
		slices.EqualFunc(prev.Transactions(), v.Transactions(), sameTransaction) {
		return
	}
	slog.Debug("view changed",
		"added", len(d.Added),
		"removed", len(d.Removed),
		"reordered", d.OrderChanged,
		"selection", v.Selection.String(),
		"sort", d.SortChanged)
	m.table.SetView(v)
}

// sameTransaction compares rows field by field. Two unreadable (NaN) amounts
// count as equal so they do not force a repaint.
func sameTransaction(a, b model.Transaction) bool {
	if math.IsNaN(a.Amount) && math.IsNaN(b.Amount) {
		a.Amount, b.Amount = 0, 0
	}
	return a == b
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(s string, err error) {
	m.status = fmt.Sprintf("%s: %s", s, common.UserMessage(err))
	m.statusIsError = true
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize() {
	m.help.Width = m.width
	helpHeight := 0
	if m.help.ShowAll {
		helpHeight = len(m.keymap.FullHelp()[0])
	}
	m.table.SetSize(m.width, m.height-chromeHeight-helpHeight)
	m.input.Width = max(m.width-20, 10)
}

// nextType cycles all, Income, Expense.
func nextType(t model.TransactionType) model.TransactionType {
	switch t {
	case "":
		return model.TypeIncome
	case model.TypeIncome:
		return model.TypeExpense
	default:
		return ""
	}
}

// parseRangeInput accepts "start..end" or a single day.
func parseRangeInput(s string) (*engine.DateRange, error) {
	start, end, found := strings.Cut(s, "..")
	if !found {
		end = start
	}
	return engine.ParseDateRange(strings.TrimSpace(start), strings.TrimSpace(end))
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
