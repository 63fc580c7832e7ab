package result

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPrintResults_NoDuplicates(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{
		Entries: []Entry{{URL: "https://example.com", NormalizedURL: "https://example.com"}},
		Stats:   Stats{Total: 1, Unique: 1, Duration: time.Second},
	}

	PrintResults(&buf, r)

	got := buf.String()
	want := "No duplicates found!\nChecked 1 URLs: 1 unique, 0 duplicates, 0 failed\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintResults_WithDuplicatesAndFailures(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{
		Entries: sampleEntries(),
		Stats:   Stats{Total: 3, Unique: 1, Duplicates: 1, Failed: 1, Duration: 5 * time.Second},
	}

	PrintResults(&buf, r)

	got := buf.String()
	for _, want := range []string{
		"Duplicates:",
		"URL: https://EXAMPLE.com/a/?a=1&b=2",
		"Normalized: https://example.com/a?a=1&b=2",
		"Duplicate of: https://example.com/a?b=2&a=1",
		"Failures:",
		`URL: "https://"`,
		"Error: malformed URL",
		"Checked 3 URLs: 1 unique, 1 duplicates, 1 failed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "URL: https://example.com/a?b=2&a=1\n") {
		t.Error("unique entry should not be listed")
	}
}

func TestPrintResults_Nil(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, nil)
	if buf.String() != "No results.\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintNormalized(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintNormalized(&buf, sampleEntries()); err != nil {
		t.Fatalf("PrintNormalized() error = %v", err)
	}

	want := "https://example.com/a?a=1&b=2\nhttps://example.com/a?a=1&b=2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestResultFilters(t *testing.T) {
	r := &Result{Entries: sampleEntries()}

	if got := len(r.Unique()); got != 1 {
		t.Errorf("Unique() returned %d entries, want 1", got)
	}
	if got := len(r.Duplicates()); got != 1 {
		t.Errorf("Duplicates() returned %d entries, want 1", got)
	}
	if got := len(r.Failed()); got != 1 {
		t.Errorf("Failed() returned %d entries, want 1", got)
	}

	var empty *Result
	if got := empty.Unique(); got == nil || len(got) != 0 {
		t.Errorf("nil Result Unique() = %v, want empty slice", got)
	}
}
