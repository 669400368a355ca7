package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/categories"
)

var (
	categoriesAll    bool
	categoriesOutput string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show available datasource categories",
	Long: `List the categories a custom datasource can be created under, with the
guidance text shown during interactive setup.`,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesAll, "all", false, "include categories that cannot be selected for new datasources")
	categoriesCmd.Flags().StringVarP(&categoriesOutput, "output", "o", "table", "output format (table, json)")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	return categories.Run(&categories.Opts{
		All:          categoriesAll,
		OutputFormat: categoriesOutput,
		Writer:       os.Stdout,
	})
}
