package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// Summary holds the scalar aggregates for a transaction collection.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	IncomeCount  int             `json:"income_count"`
	ExpenseCount int             `json:"expense_count"`
}

// Summarize totals income and expense over the collection. An empty
// collection yields all-zero sums.
func Summarize(transactions []model.Transaction) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, txn := range transactions {
		switch txn.Type {
		case model.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(txn.Amount)
			s.IncomeCount++
		case model.TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(txn.Amount)
			s.ExpenseCount++
		}
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// CategorySlice is one entry of a category expense breakdown.
type CategorySlice struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

// GroupByCategory breaks expense transactions down by category. Only
// categories with a nonzero expense total appear; a synthetic
// "Uncategorized" entry is appended when uncategorized expenses exist.
// The result is sorted by value descending with ties kept in input
// order. When there is no expense at all the result is empty and no
// percentage is computed.
func GroupByCategory(transactions []model.Transaction, categories []model.Category) []CategorySlice {
	totals := make(map[string]decimal.Decimal)
	uncategorized := decimal.Zero
	totalExpense := decimal.Zero

	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}
		totalExpense = totalExpense.Add(txn.Amount)
		if txn.CategoryID == nil {
			uncategorized = uncategorized.Add(txn.Amount)
			continue
		}
		totals[*txn.CategoryID] = totals[*txn.CategoryID].Add(txn.Amount)
	}

	if totalExpense.IsZero() {
		return nil
	}

	// Walk categories in input order so equal values sort stably.
	slices := make([]CategorySlice, 0, len(totals)+1)
	for _, c := range categories {
		value, ok := totals[c.ID]
		if !ok || value.IsZero() {
			continue
		}
		slices = append(slices, newSlice(c.Name, value, totalExpense))
		delete(totals, c.ID)
	}
	// Expenses referencing a category the caller did not supply still
	// count; surface them under the unknown-category label.
	unknown := decimal.Zero
	for _, value := range totals {
		unknown = unknown.Add(value)
	}
	if !unknown.IsZero() {
		slices = append(slices, newSlice(unknownCategoryName, unknown, totalExpense))
	}
	if !uncategorized.IsZero() {
		slices = append(slices, newSlice(uncategorizedName, uncategorized, totalExpense))
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})
	return slices
}

func newSlice(name string, value, totalExpense decimal.Decimal) CategorySlice {
	pct := 0.0
	if !totalExpense.IsZero() {
		pct, _ = value.Div(totalExpense).Mul(decimal.NewFromInt(100)).Float64()
	}
	return CategorySlice{Name: name, Value: value, Percentage: pct}
}
