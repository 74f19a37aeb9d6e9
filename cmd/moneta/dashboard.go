package main

import (
	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive terminal dashboard",
		Long: `Open the full-screen dashboard with summary, trend, category, and
transaction views. Use tab to switch views, / to search, t to cycle
the type filter, and q to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), client)
		},
	}
}
