package cmd

import (
	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [url...]",
	Short: "Print the fingerprint of URLs",
	Long: `Fingerprint prints the hex digest identifying each URL. URLs that differ
only in query order, duplicate or tracking parameters share a fingerprint.
With no arguments, URLs are read from stdin.

Examples:
  canonurl fingerprint https://example.com/page
  canonurl fingerprint --algorithm xxh64 https://example.com/page`,
	RunE: runFingerprint,
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	urls, err := urlArgs(cmd, args)
	if err != nil {
		return err
	}
	return eachURL(cmd, urls, normalizer.Fingerprint)
}
