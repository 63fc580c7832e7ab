package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lukemcguire/canonurl/dedup"
	"github.com/lukemcguire/canonurl/result"
	"github.com/lukemcguire/canonurl/tui"
	"github.com/lukemcguire/canonurl/urlutil"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [file...]",
	Short: "Find duplicate URLs in lists or HTML pages",
	Long: `Dedup fingerprints every input URL and reports which ones are duplicates
of an earlier URL. Inputs are files with one URL per line, or HTML documents
with --html. With no files, or with "-", stdin is read.

On a terminal the text format shows live progress and a summary table.

Examples:
  canonurl dedup urls.txt
  canonurl dedup --format csv urls.txt > report.csv
  canonurl dedup --unique-only urls.txt
  curl -s https://example.com | canonurl dedup --html --host example.com
  canonurl dedup --approximate --concurrency 16 huge.txt`,
	RunE: runDedup,
}

func init() {
	rootCmd.AddCommand(dedupCmd)

	dedupCmd.Flags().StringP("format", "f", "text", "output format: text, json, csv or yaml")
	dedupCmd.Flags().Bool("html", false, "inputs are HTML documents; check their absolute links")
	dedupCmd.Flags().String("host", "", "only check URLs on this host or its subdomains")
	dedupCmd.Flags().Bool("unique-only", false, "only output the first occurrence of each URL")
	dedupCmd.Flags().Bool("approximate", false, "use a constant-memory bloom filter (may report false duplicates)")
	dedupCmd.Flags().Int("concurrency", 0, "number of fingerprinting workers (default from config)")
	dedupCmd.Flags().Bool("no-tui", false, "never show the interactive progress view")
}

func runDedup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	formatName, _ := flags.GetString("format")
	format, err := result.ParseFormat(formatName)
	if err != nil {
		return err
	}
	html, _ := flags.GetBool("html")
	host, _ := flags.GetString("host")
	uniqueOnly, _ := flags.GetBool("unique-only")
	noTUI, _ := flags.GetBool("no-tui")

	runnerCfg := cfg.RunnerConfig()
	if flags.Changed("approximate") {
		runnerCfg.Approximate, _ = flags.GetBool("approximate")
	}
	if flags.Changed("concurrency") {
		runnerCfg.Concurrency, _ = flags.GetInt("concurrency")
		if runnerCfg.Concurrency < 1 {
			return fmt.Errorf("invalid --concurrency %d (must be at least 1)", runnerCfg.Concurrency)
		}
	}

	urls, err := readInputs(cmd, args, html)
	if err != nil {
		return err
	}
	if host != "" {
		urls = filterHost(urls, host)
	}
	logger.Debug("dedup inputs loaded", "urls", len(urls), "html", html, "host", host)

	out := cmd.OutOrStdout()

	if !noTUI && !uniqueOnly && format == result.FormatText && isTerminal(out) {
		// The TUI renders its own summary.
		return runDedupTUI(cmd.Context(), out, runnerCfg, urls)
	}

	res, err := dedup.New(normalizer, runnerCfg, logger, nil).Run(cmd.Context(), urls)
	if err != nil {
		return err
	}

	if uniqueOnly {
		entries := res.Unique()
		if format == result.FormatText {
			return result.PrintNormalized(out, entries)
		}
		return result.Write(out, format, res, entries)
	}
	return result.Write(out, format, res, res.Entries)
}

// runDedupTUI runs the dedup inside the Bubble Tea progress view.
func runDedupTUI(ctx context.Context, out io.Writer, runnerCfg dedup.Config, urls []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan dedup.Event, 100)
	runner := dedup.New(normalizer, runnerCfg, logger, progressCh)

	model := tui.NewModel(ctx, cancel, runner, urls, progressCh)
	finalModel, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return finalModel.(tui.Model).Err()
}

// readInputs collects URLs from files, or stdin when there are none.
func readInputs(cmd *cobra.Command, files []string, html bool) ([]string, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}

	var urls []string
	for _, name := range files {
		found, err := readInput(cmd, name, html)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

func readInput(cmd *cobra.Command, name string, html bool) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if html {
		links, err := dedup.ExtractLinks(r)
		if err != nil {
			return nil, fmt.Errorf("extracting links from %s: %w", name, err)
		}
		return links, nil
	}
	urls, err := dedup.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return urls, nil
}

// filterHost keeps URLs on host or one of its subdomains.
func filterHost(urls []string, host string) []string {
	var kept []string
	for _, u := range urls {
		if urlutil.IsSameHost(u, host) {
			kept = append(kept, u)
		}
	}
	return kept
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
