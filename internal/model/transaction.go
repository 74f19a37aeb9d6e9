package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks a transaction as money in or money out.
type TransactionType string

const (
	// TypeIncome is money flowing into an account.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense is money flowing out of an account.
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry as recorded by the backend.
// Amount is always positive; direction is carried by Type. BalanceAfter
// is the account balance immediately after this transaction, computed
// and stored by the backend, which remains the authority for it.
type Transaction struct {
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	CategoryID   *string         `json:"category_id"`
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	AccountID    string          `json:"account_id"`
	Description  string          `json:"description,omitempty"`
	Type         TransactionType `json:"type"`
	Date         Date            `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// SignedAmount returns the transaction's directional effect on a
// balance: +Amount for income, -Amount for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
