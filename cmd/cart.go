package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cartLicense string

// cartCmd represents the cart command
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show or change the shopping cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.ShoppingcartGetList(cmd.Context())
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a media to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if cartLicense == "" {
			return fmt.Errorf("--license is required")
		}
		if _, err := client.ShoppingcartAdd(cmd.Context(), ids[0], cartLicense); err != nil {
			return err
		}
		printSuccess("Added %d (%s) to the cart", ids[0], cartLicense)
		return nil
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the license of a cart item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if _, err := client.ShoppingcartUpdate(cmd.Context(), ids[0], cartLicense); err != nil {
			return err
		}
		printSuccess("Updated %d", ids[0])
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a media from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if _, err := client.ShoppingcartRemove(cmd.Context(), ids[0]); err != nil {
			return err
		}
		printSuccess("Removed %d from the cart", ids[0])
		return nil
	},
}

var cartLightboxCmd = &cobra.Command{
	Use:   "to-lightbox <id>...",
	Short: "Move cart items to the lightbox",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if _, err := client.ShoppingcartTransferToLightbox(cmd.Context(), ids...); err != nil {
			return err
		}
		printSuccess("Moved %d item(s) to the lightbox", len(ids))
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := client.ShoppingcartClear(cmd.Context()); err != nil {
			return err
		}
		printSuccess("Cart cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartLightboxCmd, cartClearCmd)

	cartAddCmd.Flags().StringVar(&cartLicense, "license", "", "license name, e.g. XS, M, XL")
	cartUpdateCmd.Flags().StringVar(&cartLicense, "license", "", "new license name")
}
