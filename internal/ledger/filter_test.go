package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/model"
)

func strPtr(s string) *string { return &s }

func typePtr(t model.TransactionType) *model.TransactionType { return &t }

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}

func testFixtures() ([]model.Transaction, []model.Account, []model.Category) {
	accounts := []model.Account{
		{ID: "acc-1", Name: "Checking", InitialBalance: decimal.NewFromInt(1000)},
		{ID: "acc-2", Name: "Savings", InitialBalance: decimal.NewFromInt(5000)},
	}
	categories := []model.Category{
		{ID: "cat-food", Name: "Food & Dining"},
		{ID: "cat-rent", Name: "Rent"},
	}
	transactions := []model.Transaction{
		{
			ID:         "txn-1",
			AccountID:  "acc-1",
			CategoryID: strPtr("cat-food"),
			Date:       model.NewDate(2024, time.January, 5),
			Amount:     decimal.NewFromFloat(42.50),
			Type:       model.TypeExpense,
		},
		{
			ID:          "txn-2",
			AccountID:   "acc-1",
			Date:        model.NewDate(2024, time.January, 10),
			Description: "Paycheck",
			Amount:      decimal.NewFromInt(2500),
			Type:        model.TypeIncome,
		},
		{
			ID:         "txn-3",
			AccountID:  "acc-2",
			CategoryID: strPtr("cat-rent"),
			Date:       model.NewDate(2024, time.February, 1),
			Amount:     decimal.NewFromInt(1200),
			Type:       model.TypeExpense,
		},
		{
			ID:         "txn-4",
			AccountID:  "acc-2",
			CategoryID: strPtr("cat-ghost"), // category no longer exists
			Date:       model.NewDate(2024, time.February, 14),
			Amount:     decimal.NewFromFloat(15.99),
			Type:       model.TypeExpense,
		},
	}
	return transactions, accounts, categories
}

func filteredIDs(txns []model.Transaction) []string {
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestFilter(t *testing.T) {
	transactions, accounts, categories := testFixtures()

	tests := []struct {
		name    string
		spec    model.FilterSpec
		wantIDs []string
	}{
		{
			name:    "empty spec is identity",
			spec:    model.FilterSpec{},
			wantIDs: []string{"txn-1", "txn-2", "txn-3", "txn-4"},
		},
		{
			name:    "date from is inclusive",
			spec:    model.FilterSpec{DateFrom: datePtr(2024, time.January, 10)},
			wantIDs: []string{"txn-2", "txn-3", "txn-4"},
		},
		{
			name:    "date to is inclusive",
			spec:    model.FilterSpec{DateTo: datePtr(2024, time.February, 1)},
			wantIDs: []string{"txn-1", "txn-2", "txn-3"},
		},
		{
			name: "date range",
			spec: model.FilterSpec{
				DateFrom: datePtr(2024, time.January, 6),
				DateTo:   datePtr(2024, time.February, 1),
			},
			wantIDs: []string{"txn-2", "txn-3"},
		},
		{
			name:    "account match",
			spec:    model.FilterSpec{AccountID: "acc-1"},
			wantIDs: []string{"txn-1", "txn-2"},
		},
		{
			name:    "specific category",
			spec:    model.FilterSpec{Category: model.CategoryIs("cat-food")},
			wantIDs: []string{"txn-1"},
		},
		{
			name:    "uncategorized only",
			spec:    model.FilterSpec{Category: model.UncategorizedOnly()},
			wantIDs: []string{"txn-2"},
		},
		{
			name:    "type match",
			spec:    model.FilterSpec{Type: typePtr(model.TypeIncome)},
			wantIDs: []string{"txn-2"},
		},
		{
			name:    "min amount inclusive",
			spec:    model.FilterSpec{MinAmount: "1200"},
			wantIDs: []string{"txn-2", "txn-3"},
		},
		{
			name:    "max amount inclusive",
			spec:    model.FilterSpec{MaxAmount: "42.50"},
			wantIDs: []string{"txn-1", "txn-4"},
		},
		{
			name:    "unparseable min amount is ignored",
			spec:    model.FilterSpec{MinAmount: "abc", AccountID: "acc-1"},
			wantIDs: []string{"txn-1", "txn-2"},
		},
		{
			name:    "unparseable max amount is ignored",
			spec:    model.FilterSpec{MaxAmount: "12,00"},
			wantIDs: []string{"txn-1", "txn-2", "txn-3", "txn-4"},
		},
		{
			name:    "search matches description",
			spec:    model.FilterSpec{SearchQuery: "paycheck"},
			wantIDs: []string{"txn-2"},
		},
		{
			name:    "search matches category name with empty description",
			spec:    model.FilterSpec{SearchQuery: "food"},
			wantIDs: []string{"txn-1"},
		},
		{
			name:    "search matches account name",
			spec:    model.FilterSpec{SearchQuery: "savings"},
			wantIDs: []string{"txn-3", "txn-4"},
		},
		{
			name:    "search matches unknown category placeholder",
			spec:    model.FilterSpec{SearchQuery: "unknown category"},
			wantIDs: []string{"txn-4"},
		},
		{
			name:    "search is case insensitive",
			spec:    model.FilterSpec{SearchQuery: "RENT"},
			wantIDs: []string{"txn-3"},
		},
		{
			name: "all constraints combine with AND",
			spec: model.FilterSpec{
				AccountID: "acc-2",
				Type:      typePtr(model.TypeExpense),
				MinAmount: "100",
			},
			wantIDs: []string{"txn-3"},
		},
		{
			name:    "no match yields empty result",
			spec:    model.FilterSpec{SearchQuery: "no such thing"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(transactions, tt.spec, accounts, categories)
			assert.Equal(t, tt.wantIDs, filteredIDs(got))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	_, accounts, categories := testFixtures()
	got := Filter(nil, model.FilterSpec{SearchQuery: "anything"}, accounts, categories)
	assert.Empty(t, got)
}

func TestFilter_PreservesOrder(t *testing.T) {
	transactions, accounts, categories := testFixtures()
	// Reverse the input; output order must follow input order.
	reversed := make([]model.Transaction, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		reversed = append(reversed, transactions[i])
	}

	got := Filter(reversed, model.FilterSpec{Type: typePtr(model.TypeExpense)}, accounts, categories)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"txn-4", "txn-3", "txn-1"}, filteredIDs(got))
}

func TestFilter_MissingAccountResolvesToUnknown(t *testing.T) {
	transactions, _, categories := testFixtures()
	got := Filter(transactions, model.FilterSpec{SearchQuery: "unknown account"}, nil, categories)
	assert.Equal(t, []string{"txn-1", "txn-2", "txn-3", "txn-4"}, filteredIDs(got))
}
