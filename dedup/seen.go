package dedup

import "sync"

// SeenSet records which fingerprints have been visited.
type SeenSet interface {
	// Visit marks key as seen. isNew reports whether key was unseen; when it
	// was not, first is the url stored with the earliest visit, if the set
	// keeps it.
	Visit(key, url string) (first string, isNew bool)
	Close() error
}

// ExactSet is an in-memory SeenSet with no false positives. It keeps the
// first URL for every key, so memory grows with the input.
type ExactSet struct {
	m sync.Map
}

// NewExactSet returns an empty ExactSet.
func NewExactSet() *ExactSet {
	return &ExactSet{}
}

// Visit implements SeenSet.
func (s *ExactSet) Visit(key, url string) (string, bool) {
	first, loaded := s.m.LoadOrStore(key, url)
	return first.(string), !loaded
}

// Close implements SeenSet.
func (s *ExactSet) Close() error {
	s.m.Clear()
	return nil
}
