package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-cli/moneta/internal/model"
)

func TestTransactionsCmd(t *testing.T) {
	cmd := transactionsCmd()
	require.NotNil(t, cmd)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "add", "edit", "delete"} {
		assert.True(t, names[want], "%s subcommand should exist", want)
	}
}

func TestBuildFilterSpec(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, spec model.FilterSpec)
	}{
		{
			name: "no flags leaves the spec empty",
			check: func(t *testing.T, spec model.FilterSpec) {
				assert.True(t, spec.IsEmpty())
			},
		},
		{
			name: "date range",
			args: []string{"--from", "2024-01-01", "--to", "2024-01-31"},
			check: func(t *testing.T, spec model.FilterSpec) {
				require.NotNil(t, spec.DateFrom)
				require.NotNil(t, spec.DateTo)
				assert.Equal(t, "2024-01-01", spec.DateFrom.String())
				assert.Equal(t, "2024-01-31", spec.DateTo.String())
			},
		},
		{
			name:    "malformed date is rejected",
			args:    []string{"--from", "January 1st"},
			wantErr: true,
		},
		{
			name: "type is uppercased",
			args: []string{"--type", "expense"},
			check: func(t *testing.T, spec model.FilterSpec) {
				require.NotNil(t, spec.Type)
				assert.Equal(t, model.TypeExpense, *spec.Type)
			},
		},
		{
			name:    "unknown type is rejected",
			args:    []string{"--type", "TRANSFER"},
			wantErr: true,
		},
		{
			name: "uncategorized wins over category",
			args: []string{"--uncategorized", "--category", "cat-1"},
			check: func(t *testing.T, spec model.FilterSpec) {
				assert.True(t, spec.Category.Matches(nil))
				catID := "cat-1"
				assert.False(t, spec.Category.Matches(&catID))
			},
		},
		{
			name: "amount bounds pass through unparsed",
			args: []string{"--min", "10", "--max", "not-a-number"},
			check: func(t *testing.T, spec model.FilterSpec) {
				assert.Equal(t, "10", spec.MinAmount)
				assert.Equal(t, "not-a-number", spec.MaxAmount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := transactionsListCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			spec, err := buildFilterSpec(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, spec)
		})
	}
}

func TestBuildTransactionRequest(t *testing.T) {
	parse := func(t *testing.T, args []string) *cobra.Command {
		cmd := transactionsAddCmd()
		require.NoError(t, cmd.ParseFlags(args))
		return cmd
	}

	t.Run("valid request", func(t *testing.T) {
		cmd := parse(t, []string{
			"--account", "acc-1",
			"--date", "2024-03-05",
			"--amount", "42.50",
			"--type", "expense",
			"--category", "cat-7",
			"--description", "Groceries",
		})

		req, err := buildTransactionRequest(cmd)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", req.AccountID)
		assert.Equal(t, "2024-03-05", req.Date.String())
		assert.Equal(t, "42.5", req.Amount.String())
		assert.Equal(t, model.TypeExpense, req.Type)
		require.NotNil(t, req.CategoryID)
		assert.Equal(t, "cat-7", *req.CategoryID)
	})

	t.Run("missing account", func(t *testing.T) {
		cmd := parse(t, []string{"--date", "2024-03-05", "--amount", "1", "--type", "INCOME"})
		_, err := buildTransactionRequest(cmd)
		assert.ErrorContains(t, err, "--account is required")
	})

	t.Run("negative amount", func(t *testing.T) {
		cmd := parse(t, []string{"--account", "a", "--date", "2024-03-05", "--amount", "-5", "--type", "EXPENSE"})
		_, err := buildTransactionRequest(cmd)
		assert.ErrorContains(t, err, "must be positive")
	})

	t.Run("omitted category stays nil", func(t *testing.T) {
		cmd := parse(t, []string{"--account", "a", "--date", "2024-03-05", "--amount", "5", "--type", "INCOME"})
		req, err := buildTransactionRequest(cmd)
		require.NoError(t, err)
		assert.Nil(t, req.CategoryID)
	})
}
