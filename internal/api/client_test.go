package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/model"
)

func TestClient_ListTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "txn-1",
				"owner_id": "user-1",
				"account_id": "acc-1",
				"category_id": null,
				"date": "2024-01-05",
				"description": "Coffee",
				"amount": 4.50,
				"type": "EXPENSE",
				"balance_after": 995.50
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	txns, err := client.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, "txn-1", txn.ID)
	assert.Equal(t, "acc-1", txn.AccountID)
	assert.Nil(t, txn.CategoryID)
	assert.Equal(t, "2024-01-05", txn.Date.String())
	assert.Equal(t, model.TypeExpense, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(4.50)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromFloat(995.50)))
}

func TestClient_NonOKCarriesBodyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("token expired"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "stale")
	_, err := client.ListAccounts(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "token expired")
}

func TestClient_CreateTransactionWireFormat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "txn-9", "account_id": "acc-1", "date": "2024-02-01", "amount": 12.5, "type": "INCOME", "balance_after": 112.5, "category_id": null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	txn, err := client.CreateTransaction(context.Background(), TransactionRequest{
		AccountID:   "acc-1",
		Date:        model.NewDate(2024, 2, 1),
		Amount:      decimal.NewFromFloat(12.5),
		Type:        model.TypeIncome,
		Description: "refund",
	})
	require.NoError(t, err)
	assert.Equal(t, "txn-9", txn.ID)

	// The wire format is snake_case with dates as bare ISO strings and
	// amounts as JSON numbers.
	assert.Equal(t, "acc-1", captured["account_id"])
	assert.Equal(t, "2024-02-01", captured["date"])
	assert.Equal(t, 12.5, captured["amount"])
	assert.Equal(t, "INCOME", captured["type"])
	assert.Nil(t, captured["category_id"])
}

func TestClient_DeleteTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/transactions/txn-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	assert.NoError(t, client.DeleteTransaction(context.Background(), "txn-1"))
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)

		_, _ = w.Write([]byte(`{"token": "fresh-token", "user_id": "user-1", "email": "user@example.com"}`))
	}))
	defer server.Close()

	resp, err := Login(context.Background(), server.URL, LoginRequest{
		Email:    "user@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)
	assert.Equal(t, "user-1", resp.UserID)
}

func TestFetchAll(t *testing.T) {
	t.Run("returns all three collections", func(t *testing.T) {
		mock := NewMockReader()
		mock.ListAccountsFn = func(_ context.Context) ([]model.Account, error) {
			return []model.Account{{ID: "acc-1"}}, nil
		}
		mock.ListTransactionsFn = func(_ context.Context) ([]model.Transaction, error) {
			return []model.Transaction{{ID: "txn-1"}, {ID: "txn-2"}}, nil
		}

		cols, err := FetchAll(context.Background(), mock)
		require.NoError(t, err)
		assert.Len(t, cols.Accounts, 1)
		assert.Empty(t, cols.Categories)
		assert.Len(t, cols.Transactions, 2)
		assert.Equal(t, 1, mock.ListAccountsCalls)
		assert.Equal(t, 1, mock.ListCategoriesCalls)
		assert.Equal(t, 1, mock.ListTransactionsCalls)
	})

	t.Run("any failed fetch fails the whole call", func(t *testing.T) {
		mock := NewMockReader()
		wantErr := errors.New("backend down")
		mock.ListCategoriesFn = func(_ context.Context) ([]model.Category, error) {
			return nil, wantErr
		}

		_, err := FetchAll(context.Background(), mock)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("fetches run concurrently", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		block := make(chan struct{})

		mock := NewMockReader()
		track := func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-block
			inFlight.Add(-1)
		}
		mock.ListAccountsFn = func(_ context.Context) ([]model.Account, error) {
			track()
			return nil, nil
		}
		mock.ListCategoriesFn = func(_ context.Context) ([]model.Category, error) {
			track()
			return nil, nil
		}
		mock.ListTransactionsFn = func(_ context.Context) ([]model.Transaction, error) {
			track()
			return nil, nil
		}

		done := make(chan struct{})
		go func() {
			_, _ = FetchAll(context.Background(), mock)
			close(done)
		}()

		// All three goroutines park on block, proving overlap.
		assert.Eventually(t, func() bool { return inFlight.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
		close(block)
		<-done
		assert.Equal(t, int32(3), peak.Load())
	})
}
