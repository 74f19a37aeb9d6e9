package api

import (
	"context"

	"github.com/moneta-cli/moneta/internal/model"
)

// Reader fetches the raw collections the dashboard core consumes.
type Reader interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
}

// Writer performs the mutations the backend exposes.
type Writer interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*model.Account, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	CreateTransaction(ctx context.Context, req TransactionRequest) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// ReadWriter combines both sides of the backend API.
type ReadWriter interface {
	Reader
	Writer
}
