package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var equalsCmd = &cobra.Command{
	Use:   "equals <url> <url> [url...]",
	Short: "Report whether URLs share one fingerprint",
	Long: `Equals prints true when every URL has the same fingerprint and false
otherwise. At least two URLs are required.

Examples:
  canonurl equals https://example.com/ HTTPS://EXAMPLE.COM
  canonurl equals 'https://example.com/?a=1&b=2' 'https://example.com/?b=2&a=1'`,
	RunE: runEquals,
}

func init() {
	rootCmd.AddCommand(equalsCmd)
}

func runEquals(cmd *cobra.Command, args []string) error {
	equal, err := normalizer.Equals(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), equal)
	return nil
}
