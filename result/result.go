package result

import "time"

// Entry is the outcome of canonicalizing one input URL.
type Entry struct {
	URL           string        `json:"url" yaml:"url"`                                           // The URL as given
	NormalizedURL string        `json:"normalized_url,omitempty" yaml:"normalized_url,omitempty"` // Display form
	Fingerprint   string        `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`       // Dedup key
	Duplicate     bool          `json:"duplicate" yaml:"duplicate"`                               // Seen earlier in the input
	DuplicateOf   string        `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`     // First URL with the same fingerprint, if known
	Error         string        `json:"error,omitempty" yaml:"error,omitempty"`                   // Error message if the URL could not be processed
	ErrorCategory ErrorCategory `json:"error_type,omitempty" yaml:"error_type,omitempty"`         // Category classification of the error
}

// Failed reports whether the entry could not be canonicalized.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Stats contains aggregate statistics for a dedup run.
type Stats struct {
	Total      int           `json:"total" yaml:"total"`           // Number of input URLs
	Unique     int           `json:"unique" yaml:"unique"`         // First occurrences
	Duplicates int           `json:"duplicates" yaml:"duplicates"` // Later occurrences of a fingerprint
	Failed     int           `json:"failed" yaml:"failed"`         // URLs that failed to parse
	Duration   time.Duration `json:"duration" yaml:"duration"`     // Total time taken
}

// Result is the complete output of a dedup run, entries in input order.
type Result struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Stats   Stats   `json:"stats" yaml:"stats"`
}

// Unique returns the entries that were first seen.
func (r *Result) Unique() []Entry {
	return r.filter(func(e Entry) bool { return !e.Failed() && !e.Duplicate })
}

// Duplicates returns the entries whose fingerprint appeared earlier.
func (r *Result) Duplicates() []Entry {
	return r.filter(func(e Entry) bool { return e.Duplicate })
}

// Failed returns the entries that could not be canonicalized.
func (r *Result) Failed() []Entry {
	return r.filter(Entry.Failed)
}

func (r *Result) filter(keep func(Entry) bool) []Entry {
	out := []Entry{}
	if r == nil {
		return out
	}
	for _, e := range r.Entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
