package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves an output format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, csv or yaml)", name)
	}
}

// Write renders entries in the given format. Text output includes the
// summary from res.Stats.
func Write(w io.Writer, format Format, res *Result, entries []Entry) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, entries)
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatYAML:
		return WriteYAML(w, entries)
	default:
		PrintResults(w, res)
		return nil
	}
}

// WriteJSON writes the entries as a formatted JSON array to the writer.
// Uses flat array format (not wrapped with metadata) for simpler CI integration.
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return EncodeJSON(w, entries)
}

// EncodeJSON writes v as indented JSON without HTML escaping, so URLs keep
// their & and < characters.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteYAML writes the entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return EncodeYAML(w, entries)
}

// EncodeYAML writes v as YAML with two-space indentation.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write yaml output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml output: %w", err)
	}
	return nil
}

var csvHeader = []string{"url", "normalized_url", "fingerprint", "duplicate", "duplicate_of", "error_type", "error"}

// WriteCSV writes the entries as CSV to the writer.
// Always includes a header row, even if there are no entries.
// Column order: url, normalized_url, fingerprint, duplicate, duplicate_of, error_type, error
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.URL,
			e.NormalizedURL,
			e.Fingerprint,
			strconv.FormatBool(e.Duplicate),
			e.DuplicateOf,
			string(e.ErrorCategory),
			e.Error,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", e.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}
