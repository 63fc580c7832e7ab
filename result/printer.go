package result

import (
	"fmt"
	"io"
)

// PrintResults writes duplicate and failure details and a summary to w.
func PrintResults(w io.Writer, res *Result) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	if res == nil {
		writef("No results.\n")
		return
	}

	dups := res.Duplicates()
	if len(dups) == 0 {
		writef("No duplicates found!\n")
	} else {
		writef("Duplicates:\n")
		for i, e := range dups {
			writef("  URL: %s\n", e.URL)
			writef("  Normalized: %s\n", e.NormalizedURL)
			if e.DuplicateOf != "" {
				writef("  Duplicate of: %s\n", e.DuplicateOf)
			}
			if i < len(dups)-1 {
				writef("\n")
			}
		}
	}

	if failed := res.Failed(); len(failed) > 0 {
		writef("Failures:\n")
		for _, e := range failed {
			writef("  URL: %q\n", e.URL)
			writef("  Error: %s\n", e.Error)
		}
	}

	writef("Checked %d URLs: %d unique, %d duplicates, %d failed\n",
		res.Stats.Total, res.Stats.Unique, res.Stats.Duplicates, res.Stats.Failed)
}

// PrintNormalized writes the normalized form of each entry, one per line.
// Failed entries are skipped.
func PrintNormalized(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if e.Failed() {
			continue
		}
		if _, err := fmt.Fprintln(w, e.NormalizedURL); err != nil {
			return fmt.Errorf("write normalized url: %w", err)
		}
	}
	return nil
}
