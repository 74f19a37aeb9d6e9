// Package model defines the domain records exchanged with the backend:
// accounts, categories, transactions, and the filter specification used
// by list views. Field names and JSON tags mirror the backend wire
// format exactly; do not rename them.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend sends and expects decimal amounts as JSON numbers,
	// not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account is a user's ledger account. Accounts are immutable once
// created; transactions reference them by ID.
type Account struct {
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}
