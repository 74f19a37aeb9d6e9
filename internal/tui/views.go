package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ledger"
	"github.com/moneta-cli/moneta/internal/model"
)

const (
	trendBuckets  = 6
	chartBarWidth = 24
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(cli.SubtleColor).
				Padding(0, 2)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			Width(18)
)

// View renders the dashboard.
func (m Model) View() string {
	if m.loading {
		return "\n  Loading dashboard...\n"
	}
	if m.err != nil {
		return "\n  " + cli.FormatError(m.err.Error()) + "\n\n  press q to quit\n"
	}
	if m.cols == nil {
		return "\n  No data.\n"
	}

	sections := []string{m.renderTabs()}
	switch m.tab {
	case TabOverview:
		sections = append(sections, m.renderOverview())
	case TabCategories:
		sections = append(sections, m.renderCategories())
	default:
		sections = append(sections, m.renderTransactions())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, int(tabCount))
	for t := TabOverview; t < tabCount; t++ {
		style := inactiveTabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderOverview() string {
	txns := m.filtered()
	summary := ledger.Summarize(txns)

	stats := lipgloss.JoinVertical(lipgloss.Left,
		statLabelStyle.Render("Total income")+cli.IncomeStyle.Render(summary.TotalIncome.StringFixed(2)),
		statLabelStyle.Render("Total expense")+cli.ExpenseStyle.Render(summary.TotalExpense.StringFixed(2)),
		statLabelStyle.Render("Net balance")+cli.FormatBalance(summary.NetBalance),
		statLabelStyle.Render("Transactions")+fmt.Sprintf("%d", summary.IncomeCount+summary.ExpenseCount),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cli.RenderBox("Summary", stats),
		cli.RenderBox("Accounts", m.renderBalances()),
		cli.RenderBox(fmt.Sprintf("Trend by %s", m.period), m.renderTrend(txns)),
	)
}

func (m Model) renderBalances() string {
	if len(m.cols.Accounts) == 0 {
		return "No accounts yet."
	}

	byAccount := make(map[string][]model.Transaction)
	for _, t := range m.cols.Transactions {
		byAccount[t.AccountID] = append(byAccount[t.AccountID], t)
	}

	lines := make([]string, 0, len(m.cols.Accounts))
	for _, account := range m.cols.Accounts {
		projection := ledger.ProjectBalance(account, byAccount[account.ID])
		lines = append(lines, fmt.Sprintf("%s%s  %s",
			statLabelStyle.Render(account.Name),
			cli.FormatBalance(projection.CurrentBalance),
			cli.SubtleStyle.Render(fmt.Sprintf("(%d txns)", projection.TransactionCount)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTrend(txns []model.Transaction) string {
	buckets := ledger.BucketByPeriod(txns, m.period, trendBuckets, m.now())

	maxVal := decimal.Zero
	for _, b := range buckets {
		if b.Income.GreaterThan(maxVal) {
			maxVal = b.Income
		}
		if b.Expense.GreaterThan(maxVal) {
			maxVal = b.Expense
		}
	}

	lines := make([]string, 0, len(buckets)*2)
	for _, b := range buckets {
		label := statLabelStyle.Width(10).Render(b.Label)
		lines = append(lines,
			label+cli.IncomeStyle.Render(cli.Bar(b.Income, maxVal, chartBarWidth))+" "+b.Income.StringFixed(2),
			strings.Repeat(" ", 10)+cli.ExpenseStyle.Render(cli.Bar(b.Expense, maxVal, chartBarWidth))+" "+b.Expense.StringFixed(2),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCategories() string {
	slices := ledger.GroupByCategory(m.filtered(), m.cols.Categories)
	if len(slices) == 0 {
		return cli.RenderBox("Expenses by Category", "No expenses in view.")
	}

	maxVal := slices[0].Value
	lines := make([]string, 0, len(slices))
	for _, slice := range slices {
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			statLabelStyle.Render(slice.Name),
			cli.ExpenseStyle.Render(cli.Bar(slice.Value, maxVal, chartBarWidth)),
			slice.Value.StringFixed(2),
			cli.SubtleStyle.Render(fmt.Sprintf("%.1f%%", slice.Percentage)),
		))
	}
	return cli.RenderBox("Expenses by Category", strings.Join(lines, "\n"))
}

func (m Model) renderTransactions() string {
	return m.table.View()
}

func (m Model) renderFooter() string {
	var filter string
	if m.searching {
		filter = "search: " + m.search.View() + "  "
	} else if q := m.search.Value(); q != "" {
		filter = fmt.Sprintf("search: %q  ", q)
	}

	help := "tab: switch view • /: search • t: type filter • p: period • r: refresh • q: quit"
	return cli.SubtleStyle.Render(filter + help)
}
