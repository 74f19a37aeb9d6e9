package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/model"
)

func historyTxn(id string, date model.Date, amount float64, txnType model.TransactionType, balanceAfter float64) model.Transaction {
	return model.Transaction{
		ID:           id,
		AccountID:    "acc-1",
		Date:         date,
		Amount:       decimal.NewFromFloat(amount),
		Type:         txnType,
		BalanceAfter: decimal.NewFromFloat(balanceAfter),
	}
}

func TestProjectBalance(t *testing.T) {
	account := model.Account{ID: "acc-1", Name: "Checking", InitialBalance: decimal.NewFromInt(100000)}

	t.Run("no transactions falls back to initial balance", func(t *testing.T) {
		p := ProjectBalance(account, nil)
		assert.True(t, p.CurrentBalance.Equal(decimal.NewFromInt(100000)))
		assert.Zero(t, p.TransactionCount)
	})

	t.Run("single transaction uses its balance_after", func(t *testing.T) {
		p := ProjectBalance(account, []model.Transaction{
			historyTxn("txn-1", model.NewDate(2024, time.January, 1), 50000, model.TypeExpense, 50000),
		})
		assert.True(t, p.CurrentBalance.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, 1, p.TransactionCount)
	})

	t.Run("latest transaction wins regardless of input order", func(t *testing.T) {
		history := []model.Transaction{
			historyTxn("txn-2", model.NewDate(2024, time.January, 5), 20000, model.TypeIncome, 70000),
			historyTxn("txn-1", model.NewDate(2024, time.January, 1), 50000, model.TypeExpense, 50000),
		}
		p := ProjectBalance(account, history)
		assert.True(t, p.CurrentBalance.Equal(decimal.NewFromInt(70000)), "got %s", p.CurrentBalance)
		assert.Equal(t, 2, p.TransactionCount)
	})

	t.Run("same-date ties break on created_at then id", func(t *testing.T) {
		early := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
		late := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC)
		date := model.NewDate(2024, time.January, 1)

		a := historyTxn("txn-a", date, 10, model.TypeIncome, 100010)
		a.CreatedAt = &late
		b := historyTxn("txn-b", date, 10, model.TypeIncome, 100020)
		b.CreatedAt = &early

		p := ProjectBalance(account, []model.Transaction{a, b})
		assert.True(t, p.CurrentBalance.Equal(decimal.NewFromInt(100010)))

		// Without created_at the ID decides.
		c := historyTxn("txn-c", date, 10, model.TypeIncome, 1)
		d := historyTxn("txn-d", date, 10, model.TypeIncome, 2)
		p = ProjectBalance(account, []model.Transaction{d, c})
		assert.True(t, p.CurrentBalance.Equal(decimal.NewFromInt(2)))
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		history := []model.Transaction{
			historyTxn("txn-2", model.NewDate(2024, time.January, 5), 20000, model.TypeIncome, 70000),
			historyTxn("txn-1", model.NewDate(2024, time.January, 1), 50000, model.TypeExpense, 50000),
		}
		ProjectBalance(account, history)
		assert.Equal(t, "txn-2", history[0].ID)
	})
}

func TestVerifyBalances(t *testing.T) {
	account := model.Account{ID: "acc-1", InitialBalance: decimal.NewFromInt(100000)}

	t.Run("consistent history has no mismatches", func(t *testing.T) {
		history := []model.Transaction{
			historyTxn("txn-1", model.NewDate(2024, time.January, 1), 50000, model.TypeExpense, 50000),
			historyTxn("txn-2", model.NewDate(2024, time.January, 5), 20000, model.TypeIncome, 70000),
		}
		assert.Empty(t, VerifyBalances(account, history))
	})

	t.Run("stored value disagreeing with recomputation is flagged", func(t *testing.T) {
		history := []model.Transaction{
			historyTxn("txn-1", model.NewDate(2024, time.January, 1), 50000, model.TypeExpense, 49000),
			historyTxn("txn-2", model.NewDate(2024, time.January, 5), 20000, model.TypeIncome, 69000),
		}
		mismatches := VerifyBalances(account, history)
		require.Len(t, mismatches, 1)
		assert.Equal(t, "txn-1", mismatches[0].TransactionID)
		assert.True(t, mismatches[0].Expected.Equal(decimal.NewFromInt(50000)))
		assert.True(t, mismatches[0].Stored.Equal(decimal.NewFromInt(49000)))
	})

	t.Run("empty history verifies clean", func(t *testing.T) {
		assert.Empty(t, VerifyBalances(account, nil))
	})
}
