package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// FormatAmount renders an amount with two decimal places, colored by
// direction.
func FormatAmount(amount decimal.Decimal, txnType model.TransactionType) string {
	fixed := amount.StringFixed(2)
	if txnType == model.TypeExpense {
		return ExpenseStyle.Render("-" + fixed)
	}
	return IncomeStyle.Render("+" + fixed)
}

// FormatBalance renders a signed balance, red when negative.
func FormatBalance(balance decimal.Decimal) string {
	fixed := balance.StringFixed(2)
	if balance.IsNegative() {
		return ExpenseStyle.Render(fixed)
	}
	return fixed
}

// RenderTable renders rows under a styled header. Column widths adapt
// to the widest cell.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = TableHeaderStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			cells[i] = TableCellStyle.Width(w + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

// Bar renders a horizontal bar scaled against max, for inline charts.
func Bar(value, max decimal.Decimal, width int) string {
	if width <= 0 || max.IsZero() || value.IsNegative() {
		return ""
	}
	ratio, _ := value.Div(max).Float64()
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled == 0 && value.IsPositive() {
		filled = 1
	}
	return strings.Repeat("█", filled)
}
