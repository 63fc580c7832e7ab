// Package cmd contains all CLI commands for canonurl.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukemcguire/canonurl/config"
	"github.com/lukemcguire/canonurl/urlutil"
)

var (
	cfgFile      string
	verbose      bool
	algorithm    string
	dropPorts    []int
	dropFragment bool

	cfg        *config.Config
	logger     *slog.Logger
	normalizer *urlutil.Normalizer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "canonurl",
	Short: "Canonicalize, fingerprint and deduplicate URLs",
	Long: `canonurl rewrites URLs into a canonical form so that superficially
different spellings of the same resource compare equal.

Example usage:
  canonurl normalize 'HTTPS://Example.com/a/./b/?b=2&a=1&utm_source=x'
  canonurl fingerprint --algorithm md5 https://example.com/page
  canonurl equals https://example.com/ https://EXAMPLE.com
  canonurl details --format yaml https://example.com/a?b=1
  canonurl dedup urls.txt --format csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and runs it. ctx
// cancels long-running commands such as dedup.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./canonurl.yaml or ~/.config/canonurl/canonurl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&algorithm, "algorithm", "", "fingerprint hash algorithm (default sha256), one of: "+algorithmNames())
	rootCmd.PersistentFlags().IntSliceVar(&dropPorts, "drop-port", nil, "remove these ports from normalized URLs")
	rootCmd.PersistentFlags().BoolVar(&dropFragment, "drop-fragment", false, "remove fragments from normalized URLs")
}

func algorithmNames() string {
	algos := urlutil.Algorithms()
	names := make([]string, len(algos))
	for i, algo := range algos {
		names[i] = algo.String()
	}
	return strings.Join(names, ", ")
}

// initConfig loads the config file and environment, applies command line
// overrides and builds the logger and normalizer.
func initConfig(cmd *cobra.Command) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if algorithm != "" {
		cfg.Normalizer.Fingerprint = urlutil.String(algorithm)
	}
	if len(dropPorts) > 0 {
		cfg.Handlers.DropPorts = dropPorts
	}
	if dropFragment {
		cfg.Handlers.DropFragment = true
	}

	logger = newLogger(cmd.ErrOrStderr(), cfg.Logging, verbose)

	normalizer, err = cfg.NewNormalizer()
	if err != nil {
		return fmt.Errorf("creating normalizer: %w", err)
	}

	logger.Debug("configuration loaded",
		"algorithm", normalizer.Config().Algorithm,
		"handlers", normalizer.Handlers().Registered(),
		"concurrency", cfg.Dedup.Concurrency,
	)

	return nil
}

// newLogger builds the slog logger described by lc. verbose forces debug level.
func newLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
