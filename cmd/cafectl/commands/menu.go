package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
	"github.com/cafeorder/cafe-client/pkg/api"
)

var (
	menuPage     int
	menuPageSize int
	menuAll      bool
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if menuAll {
			products, err := catalogAccessor.AllProducts(cmd.Context())
			if err != nil {
				return err
			}
			printProducts(products)
			return nil
		}

		page, err := catalogAccessor.Fetch(cmd.Context(), menuPage, menuPageSize)
		if err != nil {
			return err
		}
		printProducts(page.Items)
		if page.TotalPages > 1 {
			output.Muted("page %d of %d (%d products)", page.CurrentPageNo, page.TotalPages, page.TotalItems)
		}
		return nil
	},
}

func printProducts(products []api.Product) {
	if len(products) == 0 {
		output.Muted("the menu is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tORDERABLE")
	for _, p := range products {
		orderable := "yes"
		if !p.Orderable {
			orderable = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.ProductName, p.Category, p.Price, orderable)
	}
	_ = w.Flush()
}

func init() {
	menuCmd.Flags().IntVar(&menuPage, "page", 1, "Page number")
	menuCmd.Flags().IntVar(&menuPageSize, "page-size", 20, "Products per page")
	menuCmd.Flags().BoolVar(&menuAll, "all", false, "Fetch every page")

	rootCmd.AddCommand(menuCmd)
}
