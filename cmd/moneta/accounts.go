package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ledger"
	"github.com/moneta-cli/moneta/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsVerifyCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with current balances",
		RunE:  runAccountsList,
	}

	cmd.Flags().Bool("offline", false, "Read from the local cache instead of the backend")

	return cmd
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	cols, err := loadCollections(cmd.Context(), offline)
	if err != nil {
		return err
	}

	if len(cols.Accounts) == 0 {
		fmt.Println(cli.FormatWarning("No accounts yet. Create one with 'moneta accounts add'."))
		return nil
	}

	byAccount := groupByAccount(cols.Transactions)

	rows := make([][]string, 0, len(cols.Accounts))
	for _, account := range cols.Accounts {
		projection := ledger.ProjectBalance(account, byAccount[account.ID])
		rows = append(rows, []string{
			account.Name,
			cli.FormatBalance(projection.CurrentBalance),
			fmt.Sprintf("%d", projection.TransactionCount),
			account.ID,
		})
	}

	fmt.Println(cli.FormatTitle("Accounts"))
	fmt.Print(cli.RenderTable([]string{"Name", "Balance", "Transactions", "ID"}, rows))
	return nil
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE:  runAccountsAdd,
	}

	cmd.Flags().String("balance", "0", "Initial balance")

	return cmd
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	balanceStr, _ := cmd.Flags().GetString("balance")
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balanceStr, err)
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.CreateAccount(cmd.Context(), api.CreateAccountRequest{
		Name:           args[0],
		InitialBalance: balance,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %q (%s)", account.Name, account.ID)))
	return nil
}

func accountsVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check stored balances against recomputed history",
		Long: `Recompute each account's running balance from its initial balance and
transaction history, and report entries whose stored balance_after
disagrees. Mismatches are warnings; the backend's stored values remain
authoritative.`,
		RunE: runAccountsVerify,
	}

	cmd.Flags().Bool("offline", false, "Read from the local cache instead of the backend")

	return cmd
}

func runAccountsVerify(cmd *cobra.Command, _ []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	cols, err := loadCollections(cmd.Context(), offline)
	if err != nil {
		return err
	}

	byAccount := groupByAccount(cols.Transactions)

	clean := true
	for _, account := range cols.Accounts {
		mismatches := ledger.VerifyBalances(account, byAccount[account.ID])
		for _, mm := range mismatches {
			clean = false
			fmt.Println(cli.FormatWarning(fmt.Sprintf(
				"%s: transaction %s on %s stores balance %s, expected %s",
				account.Name, mm.TransactionID, mm.Date, mm.Stored.StringFixed(2), mm.Expected.StringFixed(2))))
		}
	}

	if clean {
		fmt.Println(cli.FormatSuccess("All stored balances match recomputed history"))
	}
	return nil
}

func groupByAccount(transactions []model.Transaction) map[string][]model.Transaction {
	byAccount := make(map[string][]model.Transaction)
	for _, t := range transactions {
		byAccount[t.AccountID] = append(byAccount[t.AccountID], t)
	}
	return byAccount
}
