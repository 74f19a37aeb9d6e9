package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/model"
)

// Projection is the derived balance state of a single account.
type Projection struct {
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// Mismatch flags one transaction whose stored balance_after disagrees
// with the cumulative balance recomputed from the account's initial
// balance. The stored value remains authoritative; a mismatch is a
// data-integrity warning, never an error.
type Mismatch struct {
	Expected      decimal.Decimal `json:"expected"`
	Stored        decimal.Decimal `json:"stored"`
	TransactionID string          `json:"transaction_id"`
	Date          model.Date      `json:"date"`
}

// ProjectBalance derives an account's current balance from its
// transaction history: the balance_after of the latest transaction in
// deterministic order, or the initial balance when the account has
// none. The input slice is not modified.
func ProjectBalance(account model.Account, transactions []model.Transaction) Projection {
	if len(transactions) == 0 {
		return Projection{CurrentBalance: account.InitialBalance}
	}
	ordered := sortedByDate(transactions)
	return Projection{
		CurrentBalance:   ordered[len(ordered)-1].BalanceAfter,
		TransactionCount: len(transactions),
	}
}

// VerifyBalances recomputes the running balance from the account's
// initial balance and ordered signed amounts, and reports every
// transaction whose stored balance_after disagrees.
func VerifyBalances(account model.Account, transactions []model.Transaction) []Mismatch {
	ordered := sortedByDate(transactions)

	var mismatches []Mismatch
	running := account.InitialBalance
	for _, txn := range ordered {
		running = running.Add(txn.SignedAmount())
		if !running.Equal(txn.BalanceAfter) {
			mismatches = append(mismatches, Mismatch{
				TransactionID: txn.ID,
				Date:          txn.Date,
				Expected:      running,
				Stored:        txn.BalanceAfter,
			})
			// Trust the stored value from here on so one bad entry
			// does not flag the whole tail of the history.
			running = txn.BalanceAfter
		}
	}
	return mismatches
}

// sortedByDate returns a copy ordered by date ascending, with ties
// broken by created_at then ID so "latest" is deterministic.
func sortedByDate(transactions []model.Transaction) []model.Transaction {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		switch {
		case a.CreatedAt != nil && b.CreatedAt != nil:
			if !a.CreatedAt.Equal(*b.CreatedAt) {
				return a.CreatedAt.Before(*b.CreatedAt)
			}
		case a.CreatedAt != nil || b.CreatedAt != nil:
			// Entries without created_at sort before those with one.
			return b.CreatedAt != nil
		}
		return a.ID < b.ID
	})
	return ordered
}
