// Package tui implements the interactive dashboard: summary stats, a
// trend chart, a category breakdown, and a filterable transaction
// table, all recomputed on demand from the fetched collections by the
// ledger package.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ledger"
	"github.com/moneta-cli/moneta/internal/model"
)

// Tab identifies one dashboard view.
type Tab int

// Dashboard tabs, in display order.
const (
	TabOverview Tab = iota
	TabCategories
	TabTransactions
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabCategories:
		return "Categories"
	default:
		return "Transactions"
	}
}

// typeFilter cycles all → income → expense.
type typeFilter int

const (
	typeAll typeFilter = iota
	typeIncome
	typeExpense
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx       context.Context
	reader    api.Reader
	cols      *api.Collections
	err       error
	now       func() time.Time
	search    textinput.Model
	table     table.Model
	keys      KeyMap
	period    ledger.Period
	tab       Tab
	types     typeFilter
	width     int
	height    int
	loading   bool
	searching bool
}

// NewModel creates a dashboard model that loads data through reader.
func NewModel(ctx context.Context, reader api.Reader) Model {
	search := textinput.New()
	search.Placeholder = "search description, account, category"
	search.CharLimit = 64

	txnTable := table.New(
		table.WithColumns(transactionColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		ctx:     ctx,
		reader:  reader,
		keys:    DefaultKeyMap(),
		period:  ledger.PeriodMonth,
		search:  search,
		table:   txnTable,
		now:     time.Now,
		loading: true,
	}
}

// Init starts the initial data load.
func (m Model) Init() tea.Cmd {
	return m.loadCollections()
}

func (m Model) loadCollections() tea.Cmd {
	return func() tea.Msg {
		cols, err := api.FetchAll(m.ctx, m.reader)
		return collectionsLoadedMsg{cols: cols, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.cols = msg.cols
			m.refreshTable()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(transactionColumns(msg.Width))
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		m.refreshTable()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Period):
		switch m.period {
		case ledger.PeriodDay:
			m.period = ledger.PeriodWeek
		case ledger.PeriodWeek:
			m.period = ledger.PeriodMonth
		default:
			m.period = ledger.PeriodDay
		}
		return m, nil

	case key.Matches(msg, m.keys.TypeFilter):
		m.types = (m.types + 1) % 3
		m.refreshTable()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadCollections()
	}

	if m.tab == TabTransactions {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// spec builds the active filter from the UI state.
func (m Model) spec() model.FilterSpec {
	spec := model.FilterSpec{SearchQuery: m.search.Value()}
	switch m.types {
	case typeIncome:
		t := model.TypeIncome
		spec.Type = &t
	case typeExpense:
		t := model.TypeExpense
		spec.Type = &t
	}
	return spec
}

// filtered returns the transactions the active filter retains.
func (m Model) filtered() []model.Transaction {
	if m.cols == nil {
		return nil
	}
	return ledger.Filter(m.cols.Transactions, m.spec(), m.cols.Accounts, m.cols.Categories)
}

func (m *Model) refreshTable() {
	if m.cols == nil {
		return
	}

	names := make(map[string]string, len(m.cols.Categories))
	for _, c := range m.cols.Categories {
		names[c.ID] = c.Name
	}
	accounts := make(map[string]string, len(m.cols.Accounts))
	for _, a := range m.cols.Accounts {
		accounts[a.ID] = a.Name
	}

	txns := m.filtered()
	rows := make([]table.Row, 0, len(txns))
	for _, t := range txns {
		category := "Uncategorized"
		if t.CategoryID != nil {
			if name, ok := names[*t.CategoryID]; ok {
				category = name
			} else {
				category = "Unknown Category"
			}
		}
		account, ok := accounts[t.AccountID]
		if !ok {
			account = "Unknown Account"
		}
		rows = append(rows, table.Row{
			t.Date.String(),
			account,
			category,
			t.Description,
			cli.FormatAmount(t.Amount, t.Type),
		})
	}
	m.table.SetRows(rows)
}

func transactionColumns(width int) []table.Column {
	descWidth := width - 54
	if descWidth < 12 {
		descWidth = 12
	}
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Account", Width: 14},
		{Title: "Category", Width: 14},
		{Title: "Description", Width: descWidth},
		{Title: "Amount", Width: 12},
	}
}
