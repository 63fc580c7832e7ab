package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukemcguire/canonurl/urlutil"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a URL from components",
	Long: `Build writes a URL from its components. Absent components leave no
punctuation behind. The query is given either raw with --query or as
key=value pairs with --param; a repeated key becomes an indexed list.

Examples:
  canonurl build --scheme https --host example.com --path /a --param q=go
  canonurl build --scheme https --host example.com --port 8080 --fragment top
  canonurl build --host Example.com --path /a/./b/ --normalize`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("scheme", "", "URL scheme")
	buildCmd.Flags().String("user", "", "user name")
	buildCmd.Flags().String("password", "", "password")
	buildCmd.Flags().String("host", "", "host name or bracketed IPv6 address")
	buildCmd.Flags().Int("port", 0, "port number")
	buildCmd.Flags().String("path", "", "path")
	buildCmd.Flags().String("query", "", "raw query string, without the leading ?")
	buildCmd.Flags().StringArray("param", nil, "query parameter as key=value (repeatable)")
	buildCmd.Flags().String("fragment", "", "fragment, without the leading #")
	buildCmd.Flags().Bool("normalize", false, "normalize the assembled URL")
}

func runBuild(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	var c urlutil.Components
	c.Scheme, _ = flags.GetString("scheme")
	c.User, _ = flags.GetString("user")
	c.Password, _ = flags.GetString("password")
	c.Host, _ = flags.GetString("host")
	c.Path, _ = flags.GetString("path")
	c.Query, _ = flags.GetString("query")
	c.Fragment, _ = flags.GetString("fragment")

	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		c.Port = &port
	}

	pairs, _ := flags.GetStringArray("param")
	if len(pairs) > 0 {
		if c.Query != "" {
			return errors.New("use either --query or --param, not both")
		}
		params, err := parseParams(pairs)
		if err != nil {
			return err
		}
		c.Query = params.Encode()
	}

	out := urlutil.Build(c)
	if doNormalize, _ := flags.GetBool("normalize"); doNormalize {
		var err error
		if out, err = normalizer.Normalize(out); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// parseParams turns key=value pairs into Params. A key given more than once
// collects its values in order.
func parseParams(pairs []string) (urlutil.Params, error) {
	params := make(urlutil.Params, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid --param %q (want key=value)", pair)
		}
		switch existing := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{existing, value}
		case []string:
			params[key] = append(existing, value)
		}
	}
	return params, nil
}
