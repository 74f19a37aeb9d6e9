package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX bank exports",
		Long: `Parse OFX or QFX files exported from your bank and record their
transactions against an account.

Examples:
  # Import a single file
  moneta import --account acc-1 ~/Downloads/checking_jan.qfx

  # Import everything matching a glob
  moneta import --account acc-1 ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("account", "", "Account ID to record transactions against (required)")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview the import without recording anything")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	accountID, _ := cmd.Flags().GetString("account")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if accountID == "" && !dryRun {
		return fmt.Errorf("--account is required unless --dry-run is set")
	}

	files, err := expandFileArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	ctx := cmd.Context()
	parser := ofx.NewParser()

	var drafts []ofx.Draft
	seen := make(map[string]bool)
	for _, path := range files {
		f, openErr := os.Open(path)
		if openErr != nil {
			slog.Error("failed to open file", "file", path, "error", openErr)
			continue
		}

		parsed, parseErr := parser.ParseFile(ctx, f)
		_ = f.Close()
		if parseErr != nil {
			slog.Error("failed to parse file", "file", filepath.Base(path), "error", parseErr)
			continue
		}

		added := 0
		for _, d := range parsed {
			// FITID is the bank's own transaction ID; overlapping
			// exports produce the same entry more than once.
			if d.FiTID != "" && seen[d.FiTID] {
				continue
			}
			seen[d.FiTID] = true
			drafts = append(drafts, d)
			added++
		}
		slog.Info("processed file",
			"file", filepath.Base(path),
			"found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}

	if len(drafts) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	if dryRun {
		printImportPreview(drafts)
		fmt.Println(cli.FormatWarning("Dry run: nothing recorded."))
		return nil
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	bar := importProgressBar(len(drafts))
	created, failed := 0, 0
	for _, d := range drafts {
		_, createErr := client.CreateTransaction(ctx, api.TransactionRequest{
			AccountID:   accountID,
			Date:        d.Date,
			Amount:      d.Amount,
			Type:        d.Type,
			Description: d.Description,
		})
		if createErr != nil {
			failed++
			slog.Error("failed to record transaction",
				"description", d.Description,
				"date", d.Date,
				"error", createErr)
		} else {
			created++
		}
		_ = bar.Add(1)
	}

	if failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Recorded %d transactions, %d failed", created, failed)))
		return nil
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %d transactions", created)))
	return nil
}

// expandFileArgs resolves glob patterns, falling back to literal paths.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("no files match pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func printImportPreview(drafts []ofx.Draft) {
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			d.Date.String(),
			d.Description,
			cli.FormatAmount(d.Amount, d.Type),
		})
	}
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Import preview (%d transactions)", len(drafts))))
	fmt.Print(cli.RenderTable([]string{"Date", "Description", "Amount"}, rows))
}

func importProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Recording transactions...[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
