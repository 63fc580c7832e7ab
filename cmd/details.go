package cmd

import (
	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <url>",
	Short: "Show the fingerprint, normalized form and components of a URL",
	Long: `Details prints everything canonurl derives from one URL.

Examples:
  canonurl details 'https://Example.com/a/?b=2&a=1'
  canonurl details --format yaml --algorithm md5 https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
	detailsCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
}

func runDetails(cmd *cobra.Command, args []string) error {
	d, err := normalizer.Details(args[0])
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return encode(cmd.OutOrStdout(), format, d)
}
