package dedup_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/lukemcguire/canonurl/dedup"
)

func newTracker(t *testing.T) *dedup.Tracker {
	t.Helper()
	tr, err := dedup.NewTracker(100_000, 0.001)
	if err != nil {
		t.Fatalf("NewTracker() error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := tr.Close(); closeErr != nil {
			t.Errorf("Close() error: %v", closeErr)
		}
	})
	return tr
}

// TestTrackerVisitIfNew verifies that VisitIfNew atomically tests and
// marks keys, returning true only for the first visit.
func TestTrackerVisitIfNew(t *testing.T) {
	tr := newTracker(t)

	key := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	if tr.Seen(key) {
		t.Error("Seen() returned true for new key")
	}
	if !tr.VisitIfNew(key) {
		t.Error("VisitIfNew() returned false for first visit")
	}
	if tr.VisitIfNew(key) {
		t.Error("VisitIfNew() returned true for duplicate visit")
	}
	if !tr.Seen(key) {
		t.Error("Seen() returned false after VisitIfNew()")
	}
}

// TestTrackerVisit verifies the SeenSet view of a Tracker.
func TestTrackerVisit(t *testing.T) {
	tr := newTracker(t)

	first, isNew := tr.Visit("k", "https://example.com/a")
	if !isNew || first != "" {
		t.Errorf("Visit() = (%q, %v), want (\"\", true)", first, isNew)
	}
	first, isNew = tr.Visit("k", "https://example.com/b")
	if isNew || first != "" {
		t.Errorf("Visit() = (%q, %v), want (\"\", false)", first, isNew)
	}
}

// TestTrackerConcurrent verifies thread-safety by having multiple
// goroutines attempt to visit the same key concurrently.
func TestTrackerConcurrent(t *testing.T) {
	tr := newTracker(t)

	const numGoroutines = 100
	results := make(chan bool, numGoroutines)

	for range numGoroutines {
		go func() {
			results <- tr.VisitIfNew("concurrent")
		}()
	}

	trueCount := 0
	for range numGoroutines {
		if <-results {
			trueCount++
		}
	}

	if trueCount != 1 {
		t.Errorf("expected exactly 1 successful VisitIfNew, got %d", trueCount)
	}
}

// TestTrackerLargeScale verifies the bloom filter handles thousands of
// unique keys across several periodic syncs.
func TestTrackerLargeScale(t *testing.T) {
	tr := newTracker(t)

	for i := range 2000 {
		key := fmt.Sprintf("fingerprint-%d", i)
		if !tr.VisitIfNew(key) {
			t.Errorf("VisitIfNew() returned false for unique key %d", i)
		}
	}

	for i := range 2000 {
		if !tr.Seen(fmt.Sprintf("fingerprint-%d", i)) {
			t.Errorf("Seen() returned false for visited key %d", i)
		}
	}

	if lastErr := tr.LastError(); lastErr != nil {
		t.Errorf("LastError() = %v, want nil after periodic syncs", lastErr)
	}
}

// TestTrackerCleanup verifies that Close removes the backing file and that
// double close is safe.
func TestTrackerCleanup(t *testing.T) {
	tr, err := dedup.NewTracker(0, 0)
	if err != nil {
		t.Fatalf("NewTracker() error: %v", err)
	}

	path := tr.Path()
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("backing file missing before Close: %v", statErr)
	}

	tr.VisitIfNew("pending")

	if closeErr := tr.Close(); closeErr != nil {
		t.Errorf("Close() error: %v", closeErr)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("backing file still present after Close: %v", statErr)
	}
	if tr.Path() != "" {
		t.Errorf("Path() = %q after Close, want empty", tr.Path())
	}

	if closeErr := tr.Close(); closeErr != nil {
		t.Errorf("second Close() error: %v", closeErr)
	}
}
