package api

import (
	"context"

	"github.com/moneta-cli/moneta/internal/model"
)

// MockReader is a mock implementation of Reader for testing.
type MockReader struct {
	// Functions that can be set by tests to control behavior
	ListAccountsFn     func(ctx context.Context) ([]model.Account, error)
	ListCategoriesFn   func(ctx context.Context) ([]model.Category, error)
	ListTransactionsFn func(ctx context.Context) ([]model.Transaction, error)

	// Call tracking
	ListAccountsCalls     int
	ListCategoriesCalls   int
	ListTransactionsCalls int
}

// NewMockReader creates a new mock API reader.
func NewMockReader() *MockReader {
	return &MockReader{}
}

// ListAccounts implements Reader.ListAccounts.
func (m *MockReader) ListAccounts(ctx context.Context) ([]model.Account, error) {
	m.ListAccountsCalls++
	if m.ListAccountsFn != nil {
		return m.ListAccountsFn(ctx)
	}
	return []model.Account{}, nil
}

// ListCategories implements Reader.ListCategories.
func (m *MockReader) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.ListCategoriesCalls++
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []model.Category{}, nil
}

// ListTransactions implements Reader.ListTransactions.
func (m *MockReader) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	m.ListTransactionsCalls++
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx)
	}
	return []model.Transaction{}, nil
}
