package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lukemcguire/canonurl/result"
)

var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Split a URL into normalized components",
	Long: `Parse prints the normalized scheme, user, password, host, port, path,
query and fragment of a URL. Absent components are omitted.

Examples:
  canonurl parse 'https://user@Example.com:8080/a/?b=1'
  canonurl parse --format yaml https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	c, err := normalizer.Parse(args[0])
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return encode(cmd.OutOrStdout(), format, c)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, name string, v any) error {
	format, err := result.ParseFormat(name)
	if err != nil {
		return err
	}
	switch format {
	case result.FormatJSON:
		return result.EncodeJSON(w, v)
	case result.FormatYAML:
		return result.EncodeYAML(w, v)
	default:
		return fmt.Errorf("format %q is not supported here (want json or yaml)", name)
	}
}
