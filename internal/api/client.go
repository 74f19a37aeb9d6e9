// Package api implements the REST client for the personal-finance
// backend. The client only moves data: every derived value (filters,
// summaries, balances) is computed locally by the ledger package from
// the collections fetched here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/moneta-cli/moneta/internal/model"
)

// Client talks to the backend REST API with a bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates an API client for the given base URL and token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// TransactionRequest is the payload for creating or updating a
// transaction. Amount is always positive; direction travels in Type.
type TransactionRequest struct {
	CategoryID  *string               `json:"category_id"`
	AccountID   string                `json:"account_id"`
	Description string                `json:"description,omitempty"`
	Type        model.TransactionType `json:"type"`
	Date        model.Date            `json:"date"`
	Amount      decimal.Decimal       `json:"amount"`
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Collections bundles the three fetched collections a dashboard
// computation needs. It is only returned complete; there is no
// partial-data state.
type Collections struct {
	Accounts     []model.Account
	Categories   []model.Category
	Transactions []model.Transaction
}

// Login exchanges credentials for a bearer token. It does not require
// an existing token on the client.
func Login(ctx context.Context, baseURL string, req LoginRequest) (*LoginResponse, error) {
	c := NewClient(baseURL, "")
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAccounts fetches all accounts for the current user.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListCategories fetches all categories for the current user.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListTransactions fetches all transactions for the current user.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// FetchAll retrieves accounts, categories, and transactions
// concurrently. The three fetches are independent; the result is
// returned only once all of them have succeeded.
func FetchAll(ctx context.Context, r Reader) (*Collections, error) {
	var cols Collections

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cols.Accounts, err = r.ListAccounts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cols.Categories, err = r.ListCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cols.Transactions, err = r.ListTransactions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Fetched collections",
		"accounts", len(cols.Accounts),
		"categories", len(cols.Categories),
		"transactions", len(cols.Transactions))

	return &cols, nil
}

// CreateAccount creates a new account.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*model.Account, error) {
	var account model.Account
	if err := c.do(ctx, http.MethodPost, "/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateCategory creates a new category.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction updates an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+id, req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil)
}

// do performs a request and decodes the JSON response into out when
// out is non-nil. Non-2xx responses surface as an error carrying the
// response body text.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx backend response. Message is the raw response
// body text, shown to the user as-is.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Message)
}
