package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/common"
	"github.com/moneta-cli/moneta/internal/model"
)

// Replace swaps the cached snapshot for the given collections in one
// transaction and stamps the sync time.
func (s *SQLiteCache) Replace(ctx context.Context, cols *api.Collections) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"accounts", "categories", "transactions"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = insertAccounts(ctx, tx, cols.Accounts); err != nil {
		return err
	}
	if err = insertCategories(ctx, tx, cols.Categories); err != nil {
		return err
	}
	if err = insertTransactions(ctx, tx, cols.Transactions); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sync_state (id, synced_at) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET synced_at = excluded.synced_at`,
		time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	return tx.Commit()
}

// Load reads the cached snapshot. An unsynced cache surfaces as
// common.ErrCacheEmpty.
func (s *SQLiteCache) Load(ctx context.Context) (*api.Collections, error) {
	var syncedAt time.Time
	err := s.db.QueryRowContext(ctx, "SELECT synced_at FROM sync_state WHERE id = 1").Scan(&syncedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrCacheEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}

	cols := &api.Collections{}
	if cols.Accounts, err = s.loadAccounts(ctx); err != nil {
		return nil, err
	}
	if cols.Categories, err = s.loadCategories(ctx); err != nil {
		return nil, err
	}
	if cols.Transactions, err = s.loadTransactions(ctx); err != nil {
		return nil, err
	}
	return cols, nil
}

// SyncedAt returns when the cache was last replaced, or
// common.ErrCacheEmpty if it never was.
func (s *SQLiteCache) SyncedAt(ctx context.Context) (time.Time, error) {
	var syncedAt time.Time
	err := s.db.QueryRowContext(ctx, "SELECT synced_at FROM sync_state WHERE id = 1").Scan(&syncedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, common.ErrCacheEmpty
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync state: %w", err)
	}
	return syncedAt, nil
}

func insertAccounts(ctx context.Context, tx *sql.Tx, accounts []model.Account) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (id, owner_id, name, initial_balance, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare accounts insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, a := range accounts {
		if _, err := stmt.ExecContext(ctx, a.ID, a.OwnerID, a.Name, a.InitialBalance.String(), nullTime(a.CreatedAt)); err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.ID, err)
		}
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, categories []model.Category) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, owner_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare categories insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range categories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.OwnerID, c.Name, nullTime(c.CreatedAt)); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertTransactions(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, owner_id, account_id, category_id, date,
			description, amount, type, balance_after, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transactions insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range transactions {
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.OwnerID,
			t.AccountID,
			t.CategoryID,
			t.Date.String(),
			t.Description,
			t.Amount.String(),
			string(t.Type),
			t.BalanceAfter.String(),
			nullTime(t.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

func (s *SQLiteCache) loadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, initial_balance, created_at FROM accounts ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var balance string
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &balance, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if a.InitialBalance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("corrupt initial_balance for account %s: %w", a.ID, err)
		}
		a.CreatedAt = timePtr(createdAt)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *SQLiteCache) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, created_at FROM categories ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.CreatedAt = timePtr(createdAt)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteCache) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, account_id, category_id, date,
		       description, amount, type, balance_after, created_at
		FROM transactions ORDER BY date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var categoryID sql.NullString
		var date, amount, balanceAfter, txnType string
		var description sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.AccountID, &categoryID, &date,
			&description, &amount, &txnType, &balanceAfter, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if categoryID.Valid {
			t.CategoryID = &categoryID.String
		}
		if t.Date, err = model.ParseDate(date); err != nil {
			return nil, fmt.Errorf("corrupt date for transaction %s: %w", t.ID, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount for transaction %s: %w", t.ID, err)
		}
		if t.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
			return nil, fmt.Errorf("corrupt balance_after for transaction %s: %w", t.ID, err)
		}
		t.Description = description.String
		t.Type = model.TransactionType(txnType)
		t.CreatedAt = timePtr(createdAt)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
