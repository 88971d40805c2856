package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nikolayk812/cvshop/internal/app"
	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/spf13/cobra"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog items, optionally filtered by category",
	Example: `  cvshop catalog
  cvshop catalog --category Moños`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.LoadCatalog(cfg.Shop.CatalogPath)
		if err != nil {
			return err
		}

		items, err := c.Filter(catalogCategory)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tCATEGORIA\tPRECIO\tSTOCK")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d%s\n",
				item.ID, item.Name, item.Category, domain.NewMoney(item.Price, currencyOf(cfg)), item.Stock, lowStockMark(item))
		}

		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "category name (Moños, Vinchas, Hebillas, Colitas)")
}

func lowStockMark(item domain.Item) string {
	if item.LowStock() {
		return " (¡últimas!)"
	}
	return ""
}
