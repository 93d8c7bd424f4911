package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

var (
	productName        string
	productPrice       int64
	productCategory    string
	productDescription string
	productOrderable   bool
	productImage       string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Staff commands",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if err := requireLogin(); err != nil {
			return err
		}
		if !sessionStore.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
		}
		return nil
	},
}

var adminOrderCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage the order queue",
}

var adminOrderListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		orders, err := adminOrderStore.Fetch(cmd.Context())
		if err != nil {
			orders = adminOrderStore.Orders()
			if len(orders) == 0 {
				return err
			}
			output.Warning("refresh failed, showing the last loaded queue: %v", adminOrderStore.Err())
		}
		if len(orders) == 0 {
			output.Muted("no orders")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tDATE\tSTATUS\tADDRESS")
		for _, order := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\n",
				order.ID, order.CustomerEmail, order.CreatedDate,
				output.StatusIcon(order.State.String()), order.State, order.CustomerAddress)
		}
		_ = w.Flush()
		return nil
	},
}

var adminOrderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order with customer details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		detail, err := adminOrderStore.FetchDetail(cmd.Context(), id)
		if err != nil {
			return err
		}

		output.Primary("order %d", detail.ID)
		output.Info("customer: %s <%s>", detail.CustomerName, detail.CustomerEmail)
		output.Info("placed: %s", detail.CreatedDate)
		output.Info("status: %s %s", output.StatusIcon(detail.State), detail.State)
		output.Info("address: %s", detail.CustomerAddress)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE")
		for _, item := range detail.OrderItems {
			name := item.ProductName
			if name == "" {
				name = fmt.Sprintf("product-%d", item.ProductID)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", name, item.Count, item.Price)
		}
		_ = w.Flush()
		return nil
	},
}

var adminOrderStatusCmd = &cobra.Command{
	Use:   "set-status <order-id> <status>",
	Short: "Move an order to a new status",
	Long: `Move an order to a new status.

Valid statuses: ORDERED, PAID, SHIPPING, COMPLETED, CANCELED`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		status, err := enums.ParseOrderStatus(args[1])
		if err != nil {
			return err
		}
		if err := adminOrderStore.UpdateStatus(cmd.Context(), id, status); err != nil {
			return err
		}
		output.Success("order %d is now %s", id, status)
		return nil
	},
}

var adminOrderSaveCmd = &cobra.Command{
	Use:   "save-statuses <order-id>=<status> [<order-id>=<status> ...]",
	Short: "Apply several status changes in one pass",
	Long: `Apply several status changes in one pass.

Each change is submitted independently; failures do not stop the rest,
and the queue is reloaded once at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		changes := make(map[int64]enums.OrderStatus, len(args))
		for _, arg := range args {
			idRaw, statusRaw, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid change %q, expected <order-id>=<status>", arg)
			}
			id, err := strconv.ParseInt(idRaw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", idRaw)
			}
			status, err := enums.ParseOrderStatus(statusRaw)
			if err != nil {
				return err
			}
			changes[id] = status
		}

		if err := adminOrderStore.SaveStatuses(cmd.Context(), changes); err != nil {
			return err
		}
		output.Success("%d order(s) updated", len(changes))
		return nil
	},
}

var adminProductCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the catalog",
}

var adminProductCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a product",
	RunE: func(cmd *cobra.Command, _ []string) error {
		product, err := catalogEditor.CreateProduct(cmd.Context(), api.ProductUpsertRequest{
			ProductName: productName,
			Price:       productPrice,
			Category:    productCategory,
			Description: productDescription,
			Orderable:   productOrderable,
		}, productImage)
		if err != nil {
			return err
		}
		output.Success("product %d created: %s", product.ID, product.ProductName)
		return nil
	},
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Replace a product's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		product, err := catalogEditor.UpdateProduct(cmd.Context(), id, api.ProductUpsertRequest{
			ProductName: productName,
			Price:       productPrice,
			Category:    productCategory,
			Description: productDescription,
			Orderable:   productOrderable,
		}, productImage)
		if err != nil {
			return err
		}
		output.Success("product %d updated: %s", product.ID, product.ProductName)
		return nil
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Remove a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := catalogEditor.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("product %d deleted", id)
		return nil
	},
}

func addProductFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&productName, "name", "", "Product name")
	cmd.Flags().Int64Var(&productPrice, "price", 0, "Price in the smallest currency unit")
	cmd.Flags().StringVar(&productCategory, "category", "", "Category")
	cmd.Flags().StringVar(&productDescription, "description", "", "Description")
	cmd.Flags().BoolVar(&productOrderable, "orderable", true, "Whether customers can order it")
	cmd.Flags().StringVar(&productImage, "image", "", "Path to a product image")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")
}

func init() {
	addProductFlags(adminProductCreateCmd)
	addProductFlags(adminProductUpdateCmd)

	adminOrderCmd.AddCommand(adminOrderListCmd, adminOrderShowCmd, adminOrderStatusCmd, adminOrderSaveCmd)
	adminProductCmd.AddCommand(adminProductCreateCmd, adminProductUpdateCmd, adminProductDeleteCmd)
	adminCmd.AddCommand(adminOrderCmd, adminProductCmd)
	rootCmd.AddCommand(adminCmd)
}
