package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
)

var cartQty int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		product, err := catalogAccessor.ProductByID(productID)
		if err != nil {
			// The cache may simply be cold; refresh once before giving up.
			if _, fetchErr := catalogAccessor.AllProducts(cmd.Context()); fetchErr != nil {
				return fetchErr
			}
			product, err = catalogAccessor.ProductByID(productID)
			if err != nil {
				return err
			}
		}
		if !product.Orderable {
			output.Warning("%s is not orderable right now", product.ProductName)
			return nil
		}

		if err := cartStore.Add(cmd.Context(), product, cartQty); err != nil {
			return err
		}
		output.Success("added %d x %s", cartQty, product.ProductName)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := cartStore.Remove(cmd.Context(), productID); err != nil {
			return err
		}
		output.Success("removed product %d", productID)
		return nil
	},
}

var cartSetQtyCmd = &cobra.Command{
	Use:   "set-qty <product-id> <quantity>",
	Short: "Change a line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if err := cartStore.SetQuantity(cmd.Context(), productID, qty); err != nil {
			return err
		}
		output.Success("quantity updated")
		return nil
	},
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart",
	RunE: func(_ *cobra.Command, _ []string) error {
		items := cartStore.Items()
		if len(items) == 0 {
			output.Muted("your cart is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n",
				item.ProductID, item.ProductName, item.Quantity, item.Price, item.Price*item.Quantity)
		}
		_ = w.Flush()
		output.Primary("%d items, total %d", cartStore.TotalItems(), cartStore.TotalPrice())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cartStore.Clear(cmd.Context()); err != nil {
			return err
		}
		output.Success("cart cleared")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&cartQty, "qty", 1, "Quantity to add")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartSetQtyCmd, cartListCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
