package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ledger"
	"github.com/moneta-cli/moneta/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List and manage transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsAddCmd())
	cmd.AddCommand(transactionsEditCmd())
	cmd.AddCommand(transactionsDeleteCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with optional filters",
		Long: `List transactions, narrowed by any combination of filters. Filters
combine with AND; an omitted filter imposes no constraint. Amount
bounds that fail to parse are ignored rather than hiding everything.`,
		RunE: runTransactionsList,
	}

	cmd.Flags().Bool("offline", false, "Read from the local cache instead of the backend")
	cmd.Flags().String("from", "", "Earliest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "Latest date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("account", "", "Account ID")
	cmd.Flags().String("category", "", "Category ID")
	cmd.Flags().Bool("uncategorized", false, "Only transactions with no category")
	cmd.Flags().String("type", "", "INCOME or EXPENSE")
	cmd.Flags().String("min", "", "Minimum amount (inclusive)")
	cmd.Flags().String("max", "", "Maximum amount (inclusive)")
	cmd.Flags().StringP("search", "s", "", "Substring match on description, account, or category name")

	return cmd
}

// buildFilterSpec maps list flags to the engine's filter specification.
func buildFilterSpec(cmd *cobra.Command) (model.FilterSpec, error) {
	var spec model.FilterSpec

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			return spec, err
		}
		spec.DateFrom = &d
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			return spec, err
		}
		spec.DateTo = &d
	}

	spec.AccountID, _ = cmd.Flags().GetString("account")

	uncategorized, _ := cmd.Flags().GetBool("uncategorized")
	categoryID, _ := cmd.Flags().GetString("category")
	switch {
	case uncategorized:
		spec.Category = model.UncategorizedOnly()
	case categoryID != "":
		spec.Category = model.CategoryIs(categoryID)
	}

	if typeStr, _ := cmd.Flags().GetString("type"); typeStr != "" {
		t := model.TransactionType(strings.ToUpper(typeStr))
		if !t.Valid() {
			return spec, fmt.Errorf("invalid type %q: must be INCOME or EXPENSE", typeStr)
		}
		spec.Type = &t
	}

	spec.MinAmount, _ = cmd.Flags().GetString("min")
	spec.MaxAmount, _ = cmd.Flags().GetString("max")
	spec.SearchQuery, _ = cmd.Flags().GetString("search")

	return spec, nil
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	offline, _ := cmd.Flags().GetBool("offline")

	spec, err := buildFilterSpec(cmd)
	if err != nil {
		return err
	}

	cols, err := loadCollections(cmd.Context(), offline)
	if err != nil {
		return err
	}

	matched := ledger.Filter(cols.Transactions, spec, cols.Accounts, cols.Categories)
	if len(matched) == 0 {
		fmt.Println(cli.FormatWarning("No transactions match."))
		return nil
	}

	accountNames := make(map[string]string, len(cols.Accounts))
	for _, a := range cols.Accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[string]string, len(cols.Categories))
	for _, c := range cols.Categories {
		categoryNames[c.ID] = c.Name
	}

	rows := make([][]string, 0, len(matched))
	for _, t := range matched {
		account, ok := accountNames[t.AccountID]
		if !ok {
			account = "Unknown Account"
		}
		category := "Uncategorized"
		if t.CategoryID != nil {
			if name, found := categoryNames[*t.CategoryID]; found {
				category = name
			} else {
				category = "Unknown Category"
			}
		}
		rows = append(rows, []string{
			t.Date.String(),
			account,
			category,
			t.Description,
			cli.FormatAmount(t.Amount, t.Type),
			t.ID,
		})
	}

	summary := ledger.Summarize(matched)
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Transactions (%d)", len(matched))))
	fmt.Print(cli.RenderTable([]string{"Date", "Account", "Category", "Description", "Amount", "ID"}, rows))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"income %s • expense %s • net %s",
		summary.TotalIncome.StringFixed(2),
		summary.TotalExpense.StringFixed(2),
		summary.NetBalance.StringFixed(2))))
	return nil
}

// transactionFlags adds the fields shared by add and edit.
func transactionFlags(cmd *cobra.Command) {
	cmd.Flags().String("account", "", "Account ID (required)")
	cmd.Flags().String("category", "", "Category ID (empty leaves it uncategorized)")
	cmd.Flags().String("date", "", "Date (YYYY-MM-DD, required)")
	cmd.Flags().String("amount", "", "Amount, always positive (required)")
	cmd.Flags().String("type", "", "INCOME or EXPENSE (required)")
	cmd.Flags().StringP("description", "d", "", "Description")
}

// buildTransactionRequest validates the shared flags into a request.
func buildTransactionRequest(cmd *cobra.Command) (api.TransactionRequest, error) {
	var req api.TransactionRequest

	req.AccountID, _ = cmd.Flags().GetString("account")
	if req.AccountID == "" {
		return req, fmt.Errorf("--account is required")
	}

	dateStr, _ := cmd.Flags().GetString("date")
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return req, err
	}
	req.Date = date

	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return req, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if !amount.IsPositive() {
		return req, fmt.Errorf("amount must be positive; use --type to set direction")
	}
	req.Amount = amount

	typeStr, _ := cmd.Flags().GetString("type")
	req.Type = model.TransactionType(strings.ToUpper(typeStr))
	if !req.Type.Valid() {
		return req, fmt.Errorf("invalid type %q: must be INCOME or EXPENSE", typeStr)
	}

	if categoryID, _ := cmd.Flags().GetString("category"); categoryID != "" {
		req.CategoryID = &categoryID
	}
	req.Description, _ = cmd.Flags().GetString("description")

	return req, nil
}

func transactionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildTransactionRequest(cmd)
			if err != nil {
				return err
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}

			txn, err := client.CreateTransaction(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s on %s (%s)",
				strings.ToLower(string(txn.Type)), txn.Amount.StringFixed(2), txn.Date, txn.ID)))
			return nil
		},
	}

	transactionFlags(cmd)
	return cmd
}

func transactionsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an existing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildTransactionRequest(cmd)
			if err != nil {
				return err
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}

			txn, err := client.UpdateTransaction(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Updated transaction " + txn.ID))
			return nil
		},
	}

	transactionFlags(cmd)
	return cmd
}

func transactionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted transaction " + args[0]))
			return nil
		},
	}
}
