package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/fotoctl/fotolia"
)

var (
	listMethods bool
	noRefresh   bool
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <method> [key=value...]",
	Short: "Dispatch any registered API method",
	Long: `Dispatch a registered API method with key=value arguments and print the
payload. Bracketed keys pass nested parameters, for example:

  fotoctl call getSearchResults 'search_parameters[words]=car' 'search_parameters[limit]=5'
  fotoctl call getTags language_id=2 type=New`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listMethods {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if listMethods {
			for _, method := range fotolia.Methods() {
				meta, _ := fotolia.Resolve(method)
				fmt.Printf("%-36s %-4s %s\n", method, meta.Verb, namespaceLabel(meta.Namespace))
			}
			return nil
		}

		params, err := parseKeyValues(args[1:])
		if err != nil {
			return err
		}

		resp, err := client.Dispatch(cmd.Context(), args[0], params, !noRefresh)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func namespaceLabel(ns string) string {
	if ns == "" {
		return "-"
	}
	return ns
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().BoolVar(&listMethods, "list", false, "list registered methods")
	callCmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "do not refresh a stale session token first")
}
