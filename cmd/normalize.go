package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukemcguire/canonurl/dedup"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [url...]",
	Short: "Print the canonical form of URLs",
	Long: `Normalize prints one canonical URL per input URL. With no arguments,
URLs are read from stdin, one per line.

Examples:
  canonurl normalize 'https://Example.com/a/../b/?b=2&a=1'
  cat urls.txt | canonurl normalize
  canonurl normalize --drop-port 443 https://example.com:443/`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	urls, err := urlArgs(cmd, args)
	if err != nil {
		return err
	}
	return eachURL(cmd, urls, normalizer.Normalize)
}

// urlArgs returns args, or the URLs on stdin when there are none.
func urlArgs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	urls, err := dedup.ReadLines(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return urls, nil
}

// eachURL prints fn(u) for every URL. Failures are reported on stderr and
// the remaining URLs are still processed.
func eachURL(cmd *cobra.Command, urls []string, fn func(string) (string, error)) error {
	failed := 0
	for _, u := range urls {
		out, err := fn(u)
		if err != nil {
			failed++
			logger.Debug("url failed", "url", u, "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d urls failed", failed, len(urls))
	}
	return nil
}
