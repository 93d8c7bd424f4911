package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
)

var addressContent string

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage saved addresses",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return requireLogin()
	},
}

var addressListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show saved addresses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		addresses, err := addressStore.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		if len(addresses) == 0 {
			output.Muted("no saved addresses")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tADDRESS\tDEFAULT")
		for _, addr := range addresses {
			def := ""
			if addr.IsDefault {
				def = "✓"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", addr.ID, addr.Content, def)
		}
		_ = w.Flush()
		return nil
	},
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new address",
	RunE: func(cmd *cobra.Command, _ []string) error {
		created, err := addressStore.Add(cmd.Context(), addressContent)
		if err != nil {
			return err
		}
		output.Success("saved address %d", created.ID)
		return nil
	},
}

var addressEditCmd = &cobra.Command{
	Use:   "edit <address-id>",
	Short: "Rewrite an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid address id %q", args[0])
		}
		if err := addressStore.Edit(cmd.Context(), id, addressContent); err != nil {
			return err
		}
		output.Success("address %d updated", id)
		return nil
	},
}

var addressRemoveCmd = &cobra.Command{
	Use:   "remove <address-id>",
	Short: "Delete an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid address id %q", args[0])
		}
		if err := addressStore.Remove(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("address %d removed", id)
		return nil
	},
}

var addressDefaultCmd = &cobra.Command{
	Use:   "set-default <address-id>",
	Short: "Mark an address as default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid address id %q", args[0])
		}
		if err := addressStore.SetDefault(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("address %d is now the default", id)
		return nil
	},
}

func init() {
	addressAddCmd.Flags().StringVar(&addressContent, "content", "", "Address text")
	_ = addressAddCmd.MarkFlagRequired("content")
	addressEditCmd.Flags().StringVar(&addressContent, "content", "", "New address text")
	_ = addressEditCmd.MarkFlagRequired("content")

	addressCmd.AddCommand(addressListCmd, addressAddCmd, addressEditCmd, addressRemoveCmd, addressDefaultCmd)
	rootCmd.AddCommand(addressCmd)
}
