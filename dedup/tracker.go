package dedup

import (
	"errors"
	"fmt"
	"os"
	"sync"

	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/edsrzf/mmap-go"
)

// Default sizing for a Tracker: one million keys at a 0.1% false positive rate.
const (
	DefaultExpectedItems     = 1_000_000
	DefaultFalsePositiveRate = 0.001
)

// Tracker implements a disk-backed bloom filter for fingerprint deduplication.
// It uses a memory-mapped file for constant memory footprint regardless of
// input size. A Tracker can report a new key as seen (false positive) but
// never the reverse, and it does not remember which URL a key came from.
type Tracker struct {
	mu        sync.Mutex
	filter    *bloom.BloomFilter
	file      *os.File
	mmap      mmap.MMap
	tmpPath   string
	count     uint64 // keys added since last sync
	syncEvery uint64 // sync to disk every N keys
	lastErr   error  // last error from sync operations
}

// NewTracker creates a Tracker sized for expected keys at the given false
// positive rate. Zero values select the defaults.
func NewTracker(expected uint, fpRate float64) (*Tracker, error) {
	if expected == 0 {
		expected = DefaultExpectedItems
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	filter := bloom.NewWithEstimates(expected, fpRate)

	tmpFile, err := os.CreateTemp("", "canonurl-seen-*.bloom")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	data, err := filter.MarshalBinary()
	if err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("marshal bloom filter: %w", err)
	}

	// The marshaled form carries a header on top of the bit set.
	size := len(data)
	if err := tmpFile.Truncate(int64(size)); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("truncate temp file: %w", err)
	}

	mapped, err := mmap.MapRegion(tmpFile, size, mmap.RDWR, 0, 0)
	if err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("mmap temp file: %w", err)
	}
	copy(mapped, data)

	return &Tracker{
		filter:    filter,
		file:      tmpFile,
		mmap:      mapped,
		tmpPath:   tmpPath,
		syncEvery: 1000,
	}, nil
}

// Visit implements SeenSet. The first URL is never known, so first is
// always empty.
func (t *Tracker) Visit(key, _ string) (first string, isNew bool) {
	return "", t.VisitIfNew(key)
}

// Seen reports whether key has probably been visited.
func (t *Tracker) Seen(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.filter.TestString(key)
}

// VisitIfNew atomically checks if a key is visited and marks it if not.
// Returns true if the key was new.
func (t *Tracker) VisitIfNew(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.filter.TestAndAddString(key) {
		return false
	}

	t.count++
	if t.count >= t.syncEvery {
		// periodic sync is best-effort; the error surfaces in LastError and Close
		if err := t.syncLocked(); err != nil {
			t.lastErr = err
		}
	}

	return true
}

// syncLocked persists the bloom filter to the mapped file. Must be called
// with mu held.
func (t *Tracker) syncLocked() error {
	data, err := t.filter.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal bloom filter: %w", err)
	}

	if len(data) <= len(t.mmap) {
		copy(t.mmap, data)
	}

	if err := t.mmap.Flush(); err != nil {
		return fmt.Errorf("flush mmap: %w", err)
	}
	t.count = 0
	return nil
}

// Close syncs any pending data and removes the backing file. It is safe to
// call more than once.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error

	if t.lastErr != nil {
		errs = append(errs, t.lastErr)
		t.lastErr = nil
	}

	if t.mmap != nil {
		if t.count > 0 {
			if err := t.syncLocked(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := t.mmap.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap: %w", err))
		}
		t.mmap = nil
	}

	if t.file != nil {
		if err := t.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close file: %w", err))
		}
		t.file = nil
	}

	if t.tmpPath != "" {
		if err := os.Remove(t.tmpPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove temp file: %w", err))
		}
		t.tmpPath = ""
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker: %w", errors.Join(errs...))
	}

	return nil
}

// LastError returns the last error encountered during periodic syncs.
func (t *Tracker) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Path returns the backing file path, or "" after Close.
func (t *Tracker) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tmpPath
}
