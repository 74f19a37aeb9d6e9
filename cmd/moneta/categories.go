package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			offline, _ := cmd.Flags().GetBool("offline")

			cols, err := loadCollections(cmd.Context(), offline)
			if err != nil {
				return err
			}

			if len(cols.Categories) == 0 {
				fmt.Println(cli.FormatWarning("No categories yet. Create one with 'moneta categories add'."))
				return nil
			}

			rows := make([][]string, 0, len(cols.Categories))
			for _, c := range cols.Categories {
				rows = append(rows, []string{c.Name, c.ID})
			}

			fmt.Println(cli.FormatTitle("Categories"))
			fmt.Print(cli.RenderTable([]string{"Name", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().Bool("offline", false, "Read from the local cache instead of the backend")

	return cmd
}

func categoriesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}

			category, err := client.CreateCategory(cmd.Context(), api.CreateCategoryRequest{
				Name: args[0],
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", category.Name, category.ID)))
			return nil
		},
	}
}
