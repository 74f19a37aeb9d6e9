package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ledger"
	"github.com/moneta-cli/moneta/internal/model"
	"github.com/moneta-cli/moneta/internal/sheets"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries, trends, and category breakdowns",
	}

	cmd.PersistentFlags().Bool("offline", false, "Read from the local cache instead of the backend")
	cmd.PersistentFlags().String("from", "", "Earliest date (YYYY-MM-DD, inclusive)")
	cmd.PersistentFlags().String("to", "", "Latest date (YYYY-MM-DD, inclusive)")
	cmd.PersistentFlags().StringP("format", "f", "table", "Output format: table, json, or csv")

	cmd.AddCommand(reportSummaryCmd())
	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportCategoriesCmd())

	return cmd
}

// reportInput loads collections and applies the shared date-range flags.
func reportInput(cmd *cobra.Command) (*api.Collections, []model.Transaction, model.FilterSpec, error) {
	var spec model.FilterSpec

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			return nil, nil, spec, err
		}
		spec.DateFrom = &d
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			return nil, nil, spec, err
		}
		spec.DateTo = &d
	}

	offline, _ := cmd.Flags().GetBool("offline")
	cols, err := loadCollections(cmd.Context(), offline)
	if err != nil {
		return nil, nil, spec, err
	}

	return cols, ledger.Filter(cols.Transactions, spec, cols.Accounts, cols.Categories), spec, nil
}

func reportSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense, and net totals for a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols, transactions, spec, err := reportInput(cmd)
			if err != nil {
				return err
			}
			summary := ledger.Summarize(transactions)

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				err = printJSON(summary)
			case "csv":
				err = printCSV(
					[]string{"total_income", "total_expense", "net_balance", "income_count", "expense_count"},
					[][]string{{
						summary.TotalIncome.String(),
						summary.TotalExpense.String(),
						summary.NetBalance.String(),
						fmt.Sprint(summary.IncomeCount),
						fmt.Sprint(summary.ExpenseCount),
					}})
			default:
				printSummaryTable(summary)
			}
			if err != nil {
				return err
			}

			if export, _ := cmd.Flags().GetBool("export-sheets"); export {
				return exportToSheets(cmd, summary, ledger.GroupByCategory(transactions, cols.Categories), spec)
			}
			return nil
		},
	}

	cmd.Flags().Bool("export-sheets", false, "Also export the report to Google Sheets")
	return cmd
}

func printSummaryTable(summary ledger.Summary) {
	fmt.Println(cli.FormatTitle("Summary"))
	fmt.Print(cli.RenderTable(
		[]string{"", "Total", "Count"},
		[][]string{
			{"Income", cli.IncomeStyle.Render(summary.TotalIncome.StringFixed(2)), fmt.Sprint(summary.IncomeCount)},
			{"Expense", cli.ExpenseStyle.Render(summary.TotalExpense.StringFixed(2)), fmt.Sprint(summary.ExpenseCount)},
			{"Net", cli.FormatBalance(summary.NetBalance), ""},
		}))
}

func reportTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Income and expense totals over trailing periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			periodStr, _ := cmd.Flags().GetString("period")
			period := ledger.Period(periodStr)
			if !period.Valid() {
				return fmt.Errorf("invalid period %q: must be day, week, or month", periodStr)
			}
			n, _ := cmd.Flags().GetInt("buckets")
			if n <= 0 {
				return fmt.Errorf("--buckets must be positive")
			}

			_, transactions, _, err := reportInput(cmd)
			if err != nil {
				return err
			}
			buckets := ledger.BucketByPeriod(transactions, period, n, time.Now())

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				return printJSON(buckets)
			case "csv":
				rows := make([][]string, 0, len(buckets))
				for _, b := range buckets {
					rows = append(rows, []string{b.Label, b.Income.String(), b.Expense.String(), b.Net.String()})
				}
				return printCSV([]string{"period", "income", "expense", "net"}, rows)
			default:
				printTrendTable(buckets)
				return nil
			}
		},
	}

	cmd.Flags().StringP("period", "p", "month", "Bucket size: day, week, or month")
	cmd.Flags().IntP("buckets", "n", 6, "Number of trailing periods")
	return cmd
}

func printTrendTable(buckets []ledger.Bucket) {
	maxExpense := maxBucketExpense(buckets)
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			b.Label,
			cli.IncomeStyle.Render(b.Income.StringFixed(2)),
			cli.ExpenseStyle.Render(b.Expense.StringFixed(2)),
			cli.FormatBalance(b.Net),
			cli.Bar(b.Expense, maxExpense, 20),
		})
	}
	fmt.Println(cli.FormatTitle("Trend"))
	fmt.Print(cli.RenderTable([]string{"Period", "Income", "Expense", "Net", "Spending"}, rows))
}

func reportCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Expense breakdown by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cols, matched, _, err := reportInput(cmd)
			if err != nil {
				return err
			}

			slices := ledger.GroupByCategory(matched, cols.Categories)
			if len(slices) == 0 {
				fmt.Println(cli.FormatWarning("No expenses in this period."))
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				return printJSON(slices)
			case "csv":
				rows := make([][]string, 0, len(slices))
				for _, s := range slices {
					rows = append(rows, []string{s.Name, s.Value.String(), fmt.Sprintf("%.1f", s.Percentage)})
				}
				return printCSV([]string{"category", "value", "percentage"}, rows)
			default:
				printCategoriesTable(slices)
				return nil
			}
		},
	}
	return cmd
}

func printCategoriesTable(slices []ledger.CategorySlice) {
	max := slices[0].Value
	rows := make([][]string, 0, len(slices))
	for _, s := range slices {
		rows = append(rows, []string{
			s.Name,
			cli.ExpenseStyle.Render(s.Value.StringFixed(2)),
			fmt.Sprintf("%.1f%%", s.Percentage),
			cli.Bar(s.Value, max, 20),
		})
	}
	fmt.Println(cli.FormatTitle("Spending by Category"))
	fmt.Print(cli.RenderTable([]string{"Category", "Spent", "Share", ""}, rows))
}

func exportToSheets(cmd *cobra.Command, summary ledger.Summary, slices []ledger.CategorySlice, spec model.FilterSpec) error {
	config := sheets.DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		return err
	}

	writer, err := sheets.NewWriter(cmd.Context(), config, slog.Default())
	if err != nil {
		return err
	}

	report := sheets.Report{
		Title:      "Moneta Report",
		Summary:    summary,
		Categories: slices,
	}
	if spec.DateFrom != nil {
		report.PeriodFrom = spec.DateFrom.String()
	}
	if spec.DateTo != nil {
		report.PeriodTo = spec.DateTo.String()
	}

	if err := writer.Write(cmd.Context(), report); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("Report exported to Google Sheets"))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCSV(header []string, rows [][]string) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func maxBucketExpense(buckets []ledger.Bucket) decimal.Decimal {
	max := decimal.Zero
	for _, b := range buckets {
		if b.Expense.GreaterThan(max) {
			max = b.Expense
		}
	}
	return max
}
