// Package search coordinates the parallel vanity address search: it spawns
// one worker per configured thread, collects matches until the requested
// count is reached, then signals every worker to stop and finalizes the run
// statistics.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/econia-labs/optivanity/internal/config"
	"github.com/econia-labs/optivanity/internal/logger"
	"github.com/econia-labs/optivanity/pkg/match"
	"github.com/econia-labs/optivanity/pkg/types"
	"github.com/econia-labs/optivanity/pkg/worker"
)

// Searcher coordinates the worker pool for one search run.
type Searcher struct {
	config  *config.Config
	logger  *logger.Logger
	matcher *match.Matcher

	attempts     uint64 // atomic
	elapsedNanos int64  // atomic; 0 while the search is running
	start        time.Time

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup

	errOnce sync.Once
	err     error
}

// New creates a searcher, compiling the match pattern up front so malformed
// prefixes and suffixes surface before anything runs.
func New(cfg *config.Config, log *logger.Logger) (*Searcher, error) {
	matcher, err := match.New(cfg.Prefix, cfg.Suffix)
	if err != nil {
		return nil, err
	}
	return &Searcher{
		config:  cfg,
		logger:  log,
		matcher: matcher,
		done:    make(chan struct{}),
	}, nil
}

// Run validates the configuration, spawns the workers and returns a channel
// that yields exactly cfg.Count matches before closing (or yields matches
// until ctx is cancelled in endless mode). No worker is spawned if
// validation fails. After the channel closes, Err reports whether the run
// was aborted by a randomness failure.
func (s *Searcher) Run(ctx context.Context) (<-chan types.FoundResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	s.start = time.Now()
	// Buffer one slot per worker so a worker whose match loses the
	// shutdown race never blocks on its final send.
	found := make(chan types.FoundResult, s.config.Threads)
	out := make(chan types.FoundResult)

	for i := 0; i < s.config.Threads; i++ {
		w := worker.New(s.matcher, s.config.Multisig, &s.attempts)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := w.Run(s.done, found); err != nil {
				s.fail(err)
			}
		}()
	}

	if s.config.Verbose {
		go s.progressLoop()
	}
	go s.collect(ctx, found, out)

	return out, nil
}

// collect forwards matches to the caller until the target count is reached,
// the context is cancelled, or a worker failure raises the stop signal.
// It then joins every worker and finalizes the statistics before closing
// the output channel.
func (s *Searcher) collect(ctx context.Context, found <-chan types.FoundResult, out chan<- types.FoundResult) {
	var delivered uint64
loop:
	for s.config.Endless || delivered < s.config.Count {
		select {
		case <-ctx.Done():
			break loop
		case <-s.done:
			break loop
		case result := <-found:
			select {
			case out <- result:
				delivered++
			case <-ctx.Done():
				break loop
			}
		}
	}

	s.Stop()
	s.wg.Wait()
	atomic.StoreInt64(&s.elapsedNanos, int64(time.Since(s.start)))
	close(out)
}

// Stop raises the stop signal. It is safe to call from any goroutine and
// more than once; workers observe it within one generation cycle.
func (s *Searcher) Stop() {
	s.once.Do(func() { close(s.done) })
}

// Stats returns the candidate count and elapsed time. Safe to call while
// the search is running; after the result channel has closed it reflects
// the final totals, including candidates generated in the window between
// the stop signal and each worker observing it.
func (s *Searcher) Stats() types.Stats {
	elapsed := time.Duration(atomic.LoadInt64(&s.elapsedNanos))
	if elapsed == 0 {
		elapsed = time.Since(s.start)
	}
	return types.Stats{
		Attempts: atomic.LoadUint64(&s.attempts),
		Elapsed:  elapsed,
	}
}

// Err reports a fatal worker failure (a failed secure random source). Only
// valid after the result channel has closed; all workers have been joined
// by then.
func (s *Searcher) Err() error {
	return s.err
}

// fail records the first fatal worker error and stops the search.
func (s *Searcher) fail(err error) {
	s.errOnce.Do(func() {
		s.err = err
		s.Stop()
	})
}

// progressLoop logs search progress at the configured interval until the
// stop signal is raised.
func (s *Searcher) progressLoop() {
	ticker := time.NewTicker(time.Duration(s.config.StatsInterval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stats := s.Stats()
			s.logger.Printf("Progress: %d candidates, %.0f addresses/sec", stats.Attempts, stats.Rate())
		case <-s.done:
			return
		}
	}
}
