package dedup

import "github.com/lukemcguire/canonurl/result"

// Event reports progress after a URL has been classified.
type Event struct {
	URL           string
	Processed     int
	Total         int
	Duplicates    int
	Failed        int
	Error         string
	ErrorCategory result.ErrorCategory
	Done          bool // last event of a run
}
