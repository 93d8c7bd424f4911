package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

var (
	orderAddress string
	orderStatus  string
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and track orders",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return requireLogin()
	},
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Order everything in the cart",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items := cartStore.OrderItems()
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "the cart is empty")
		}

		destination := orderAddress
		if destination == "" {
			if _, err := addressStore.Fetch(cmd.Context()); err != nil {
				return err
			}
			def, ok := addressStore.Default()
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, "no address given and no default saved, use --address")
			}
			destination = def.Content
		}

		order, err := orderStore.Create(cmd.Context(), destination, items)
		if err != nil {
			return err
		}
		if err := cartStore.Clear(cmd.Context()); err != nil {
			output.Warning("order placed but the cart could not be cleared: %v", err)
		}
		output.Success("order %d placed, shipping to %s", order.OrderID, order.CustomerAddress)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your orders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		orders, err := orderStore.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		if orderStatus != "" {
			orders = orderStore.OrdersByStatus(orderStatus)
		}
		if len(orders) == 0 {
			output.Muted("no orders")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tSTATUS\tADDRESS\tITEMS")
		for _, order := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%d\n",
				order.OrderID, order.OrderDate, output.StatusIcon(order.Status), order.Status,
				order.CustomerAddress, len(order.OrderItems))
		}
		_ = w.Flush()
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		detail, err := orderStore.FetchDetail(cmd.Context(), id)
		if err != nil {
			return err
		}

		output.Primary("order %d", detail.OrderID)
		output.Info("placed: %s", detail.OrderDate)
		output.Info("status: %s %s", output.StatusIcon(detail.Status), detail.Status)
		output.Info("address: %s", detail.CustomerAddress)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tCATEGORY\tQTY\tPRICE")
		for _, item := range detail.OrderItems {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", item.ProductName, item.ProductCategory, item.Count, item.Price)
		}
		_ = w.Flush()
		return nil
	},
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel an order that has not been paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := orderStore.Cancel(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("order %d cancelled", id)
		return nil
	},
}

var orderReaddressCmd = &cobra.Command{
	Use:   "set-address <order-id>",
	Short: "Change the shipping address of an open order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		if err := orderStore.UpdateAddress(cmd.Context(), id, orderAddress); err != nil {
			return err
		}
		output.Success("order %d now ships to %s", id, orderAddress)
		return nil
	},
}

func init() {
	orderCreateCmd.Flags().StringVar(&orderAddress, "address", "", "Shipping address (defaults to your default saved address)")
	orderListCmd.Flags().StringVar(&orderStatus, "status", "", "Filter by status")
	orderReaddressCmd.Flags().StringVar(&orderAddress, "address", "", "New shipping address")
	_ = orderReaddressCmd.MarkFlagRequired("address")

	orderCmd.AddCommand(orderCreateCmd, orderListCmd, orderShowCmd, orderCancelCmd, orderReaddressCmd)
	rootCmd.AddCommand(orderCmd)
}
