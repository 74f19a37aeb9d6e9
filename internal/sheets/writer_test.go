package sheets

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/ledger"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("service account alone is enough", func(t *testing.T) {
		c := Config{ServiceAccountPath: "/tmp/key.json", SpreadsheetName: "Report"}
		assert.NoError(t, c.Validate())
	})

	t.Run("oauth needs all three credentials", func(t *testing.T) {
		c := Config{ClientID: "id", ClientSecret: "secret", SpreadsheetName: "Report"}
		assert.Error(t, c.Validate())

		c.RefreshToken = "refresh"
		assert.NoError(t, c.Validate())
	})

	t.Run("needs a spreadsheet target", func(t *testing.T) {
		c := Config{ServiceAccountPath: "/tmp/key.json"}
		assert.Error(t, c.Validate())
	})
}

func TestWriter_PrepareReportData(t *testing.T) {
	w := &Writer{config: DefaultConfig()}

	report := Report{
		PeriodFrom: "2024-01-01",
		PeriodTo:   "2024-01-31",
		Summary: ledger.Summary{
			TotalIncome:  decimal.NewFromInt(3000),
			TotalExpense: decimal.NewFromInt(1200),
			NetBalance:   decimal.NewFromInt(1800),
			IncomeCount:  2,
			ExpenseCount: 7,
		},
		Categories: []ledger.CategorySlice{
			{Name: "Rent", Value: decimal.NewFromInt(900), Percentage: 75},
			{Name: "Groceries", Value: decimal.NewFromInt(300), Percentage: 25},
		},
	}

	values := w.prepareReportData(report)
	require.Len(t, values, 13)

	assert.Equal(t, []any{"Finance Report", "2024-01-01 - 2024-01-31"}, values[0])
	assert.Equal(t, []any{"Total Income", 3000.0}, values[3])
	assert.Equal(t, []any{"Net Balance", 1800.0}, values[5])
	assert.Equal(t, []any{"Rent", 900.0, "75.0%"}, values[11])
	assert.Equal(t, []any{"Groceries", 300.0, "25.0%"}, values[12])
}
