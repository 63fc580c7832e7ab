// Package dedup finds URLs that share a fingerprint. It reads URL lists or
// HTML documents, fingerprints every URL on a worker pool and reports which
// inputs are duplicates of an earlier one.
package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lukemcguire/canonurl/result"
	"github.com/lukemcguire/canonurl/urlutil"
)

// Config holds runner configuration.
type Config struct {
	Concurrency       int           // Number of fingerprinting workers (default 8)
	Approximate       bool          // Use a bloom filter Tracker instead of an ExactSet
	ExpectedItems     uint          // Tracker sizing (default DefaultExpectedItems)
	FalsePositiveRate float64       // Tracker sizing (default DefaultFalsePositiveRate)
	ProgressInterval  time.Duration // Minimum gap between progress events (default 100ms)
}

// Runner fingerprints a batch of URLs and classifies each one as unique,
// duplicate or failed.
type Runner struct {
	cfg        Config
	normalizer *urlutil.Normalizer
	logger     *slog.Logger
	progressCh chan<- Event
}

// New creates a Runner. The progressCh parameter is optional; pass nil to
// disable progress events. A nil logger discards log output.
func New(n *urlutil.Normalizer, cfg Config, logger *slog.Logger, progressCh chan<- Event) *Runner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 100 * time.Millisecond
	}
	if n == nil {
		n = urlutil.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, normalizer: n, logger: logger, progressCh: progressCh}
}

type checked struct {
	index int
	entry result.Entry
}

// Run fingerprints urls and returns one entry per input, in input order.
// The first URL with a given fingerprint is unique; later ones are
// duplicates of it. Per-URL failures are recorded in the entries; the
// returned error is reserved for cancellation and seen-set failures.
func (r *Runner) Run(ctx context.Context, urls []string) (res *result.Result, err error) {
	start := time.Now()

	seen, err := r.newSeenSet()
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := seen.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close seen set: %w", closeErr)
		}
	}()

	checkedCh := make(chan checked, r.cfg.Concurrency*3)
	errGroup, groupCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(r.cfg.Concurrency)

	// Producer: Go blocks once Concurrency workers are busy.
	go func() {
		defer close(checkedCh)
		for i, u := range urls {
			if groupCtx.Err() != nil {
				break
			}
			errGroup.Go(func() error {
				select {
				case checkedCh <- checked{index: i, entry: r.check(u)}:
					return nil
				case <-groupCtx.Done():
					return groupCtx.Err()
				}
			})
		}
		_ = errGroup.Wait()
	}()

	entries := make([]result.Entry, len(urls))
	pending := make(map[int]result.Entry)
	next := 0
	stats := result.Stats{Total: len(urls)}
	progress := rate.Sometimes{First: 1, Interval: r.cfg.ProgressInterval}

	// Workers finish out of order; classify strictly in input order so the
	// first occurrence always wins.
	for c := range checkedCh {
		pending[c.index] = c.entry
		for {
			e, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			e = r.classify(seen, e, &stats)
			entries[next] = e
			next++

			evt := r.event(e, next, stats)
			progress.Do(func() { r.emit(ctx, evt) })
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("dedup canceled after %d of %d urls: %w", next, len(urls), ctxErr)
	}

	stats.Duration = time.Since(start)
	final := Event{Processed: next, Total: len(urls), Duplicates: stats.Duplicates, Failed: stats.Failed, Done: true}
	r.emit(ctx, final)

	r.logger.Info("dedup finished",
		"total", stats.Total,
		"unique", stats.Unique,
		"duplicates", stats.Duplicates,
		"failed", stats.Failed,
		"duration", stats.Duration)

	return &result.Result{Entries: entries, Stats: stats}, nil
}

func (r *Runner) newSeenSet() (SeenSet, error) {
	if !r.cfg.Approximate {
		return NewExactSet(), nil
	}
	tracker, err := NewTracker(r.cfg.ExpectedItems, r.cfg.FalsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("create tracker: %w", err)
	}
	return tracker, nil
}

// check normalizes and fingerprints one URL. It never fails; errors are
// recorded on the entry.
func (r *Runner) check(raw string) result.Entry {
	e := result.Entry{URL: raw}

	normalized, err := r.normalizer.Normalize(raw)
	if err == nil {
		e.NormalizedURL = normalized
		e.Fingerprint, err = r.normalizer.Fingerprint(raw)
	}
	if err != nil {
		e.NormalizedURL = ""
		e.Error = err.Error()
		e.ErrorCategory = result.ClassifyError(err)
		r.logger.Debug("skipping url", "url", raw, "category", e.ErrorCategory, "error", err)
	}
	return e
}

func (r *Runner) classify(seen SeenSet, e result.Entry, stats *result.Stats) result.Entry {
	if e.Failed() {
		stats.Failed++
		return e
	}

	first, isNew := seen.Visit(e.Fingerprint, e.URL)
	if isNew {
		stats.Unique++
		return e
	}

	e.Duplicate = true
	e.DuplicateOf = first
	stats.Duplicates++
	r.logger.Debug("duplicate url", "url", e.URL, "first", first, "fingerprint", e.Fingerprint)
	return e
}

func (r *Runner) event(e result.Entry, processed int, stats result.Stats) Event {
	return Event{
		URL:           e.URL,
		Processed:     processed,
		Total:         stats.Total,
		Duplicates:    stats.Duplicates,
		Failed:        stats.Failed,
		Error:         e.Error,
		ErrorCategory: e.ErrorCategory,
	}
}

// emit sends evt unless there is no listener or ctx is done.
func (r *Runner) emit(ctx context.Context, evt Event) {
	if r.progressCh == nil {
		return
	}
	select {
	case r.progressCh <- evt:
	case <-ctx.Done():
	}
}
