package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Fotolia",
	Long:  `Test the API key against the Fotolia API and, when configured, the member login.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing connection to Fotolia at %s (API v%s)...\n", cfg.Fotolia.BaseURL, cfg.Fotolia.Version)

	if err := client.TestConnection(ctx); err != nil {
		return err
	}
	printSuccess("Connection successful!")

	fmt.Printf("\nSettings:\n")
	fmt.Printf("- Language: %s (ID: %s)\n", cfg.Fotolia.Language, language)
	fmt.Printf("- Timeouts: connect %s, total %s\n", cfg.Fotolia.ConnectTimeout, cfg.Fotolia.Timeout)
	fmt.Printf("- User-Agent: %s\n", userAgent())

	if !client.Authenticated() {
		fmt.Println("\nMember login: Disabled")
		return nil
	}

	user, err := client.GetUserData(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	printSuccess("Logged in as %s", cfg.Fotolia.Login)
	for _, key := range []string{"id", "firstname", "lastname", "language_name", "nb_credits", "credit_value", "currency_name"} {
		if v := user.String(key); v != "" {
			fmt.Printf("- %s: %s\n", key, v)
		}
	}

	return nil
}
