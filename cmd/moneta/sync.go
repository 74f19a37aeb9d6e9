package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/common"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local cache from the backend",
		Long: `Fetch accounts, categories, and transactions from the backend and
replace the local cache wholesale, so offline commands see a
consistent snapshot.`,
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, _, err := newClient()
	if err != nil {
		return err
	}

	cols, err := api.FetchAll(ctx, client)
	if err != nil {
		return err
	}

	cache, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	if err := cache.Replace(ctx, cols); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	syncedAt, err := cache.SyncedAt(ctx)
	if err != nil {
		return err
	}

	common.LogInfo("cache synced", common.Fields{
		"accounts":     len(cols.Accounts),
		"categories":   len(cols.Categories),
		"transactions": len(cols.Transactions),
	})
	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Synced %d accounts, %d categories, %d transactions at %s",
		len(cols.Accounts), len(cols.Categories), len(cols.Transactions),
		syncedAt.Local().Format("2006-01-02 15:04"))))
	return nil
}
