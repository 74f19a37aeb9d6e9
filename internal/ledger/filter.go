// Package ledger implements the pure data transformations behind the
// dashboard and list views: multi-predicate transaction filtering,
// income/expense aggregation, time-bucketed trend series, and account
// balance projection. Every function takes already-fetched collections
// and returns a new result; nothing here performs I/O or retains state.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// Display names used when a search query has to resolve a reference
// that is missing or absent.
const (
	unknownAccountName  = "Unknown Account"
	unknownCategoryName = "Unknown Category"
	uncategorizedName   = "Uncategorized"
)

// Filter returns the order-preserving subset of transactions matching
// every constraint set in spec. Accounts and categories are consulted
// only to resolve names for the search query. Malformed numeric bounds
// degrade to "no constraint"; no input causes an error.
func Filter(transactions []model.Transaction, spec model.FilterSpec, accounts []model.Account, categories []model.Category) []model.Transaction {
	if spec.IsEmpty() {
		return transactions
	}

	minAmount, hasMin := parseAmountBound(spec.MinAmount)
	maxAmount, hasMax := parseAmountBound(spec.MaxAmount)
	query := strings.ToLower(strings.TrimSpace(spec.SearchQuery))

	var names *nameIndex
	if query != "" {
		names = buildNameIndex(accounts, categories)
	}

	matched := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if spec.DateFrom != nil && txn.Date.Before(*spec.DateFrom) {
			continue
		}
		if spec.DateTo != nil && txn.Date.After(*spec.DateTo) {
			continue
		}
		if spec.AccountID != "" && txn.AccountID != spec.AccountID {
			continue
		}
		if !spec.Category.Matches(txn.CategoryID) {
			continue
		}
		if spec.Type != nil && txn.Type != *spec.Type {
			continue
		}
		if hasMin && txn.Amount.LessThan(minAmount) {
			continue
		}
		if hasMax && txn.Amount.GreaterThan(maxAmount) {
			continue
		}
		if query != "" && !names.matchesQuery(txn, query) {
			continue
		}
		matched = append(matched, txn)
	}
	return matched
}

// parseAmountBound parses a user-supplied amount bound. Empty or
// unparseable input means the bound is absent.
func parseAmountBound(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// nameIndex resolves account and category IDs to lowercased display
// names for substring search.
type nameIndex struct {
	accounts   map[string]string
	categories map[string]string
}

func buildNameIndex(accounts []model.Account, categories []model.Category) *nameIndex {
	idx := &nameIndex{
		accounts:   make(map[string]string, len(accounts)),
		categories: make(map[string]string, len(categories)),
	}
	for _, a := range accounts {
		idx.accounts[a.ID] = strings.ToLower(a.Name)
	}
	for _, c := range categories {
		idx.categories[c.ID] = strings.ToLower(c.Name)
	}
	return idx
}

func (idx *nameIndex) accountName(id string) string {
	if name, ok := idx.accounts[id]; ok {
		return name
	}
	return strings.ToLower(unknownAccountName)
}

func (idx *nameIndex) categoryName(id *string) string {
	if id == nil {
		return strings.ToLower(uncategorizedName)
	}
	if name, ok := idx.categories[*id]; ok {
		return name
	}
	return strings.ToLower(unknownCategoryName)
}

// matchesQuery reports whether the lowercased query appears in the
// transaction's description, resolved account name, or resolved
// category name.
func (idx *nameIndex) matchesQuery(txn model.Transaction, query string) bool {
	if strings.Contains(strings.ToLower(txn.Description), query) {
		return true
	}
	if strings.Contains(idx.accountName(txn.AccountID), query) {
		return true
	}
	return strings.Contains(idx.categoryName(txn.CategoryID), query)
}
