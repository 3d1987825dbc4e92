// Package loader owns the company collection and the state machine that
// fetches it: idle, loading, then success or error.
//
// A failed fetch is retried after a fixed delay while the state stays
// loading. Once the retry budget is spent the loader settles in error until
// Retry or Refetch starts a new load. Refetch may interrupt a load in flight;
// the interrupted load's context is canceled and its result discarded.
//
//	l := loader.New(&cfg.Directory, source, metrics, logger)
//	l.Start(ctx)
//	if err := l.Wait(ctx); err != nil { ... }
//	snap := l.Snapshot()
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

// State is a position in the load lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ErrNotFailed is returned by Retry when the loader is not in the error state.
var ErrNotFailed = errors.New("retry is only available after a failed load")

var _ ports.HealthChecker = (*Loader)(nil)

// Snapshot is a point-in-time copy of the loader state.
type Snapshot struct {
	State     State
	Companies []company.Company
	// Err is the failure of the last settled load. It wraps
	// domain.ErrFetchFailed and is nil unless State is StateError.
	Err      error
	Attempts int
	LoadedAt time.Time
}

// Loader fetches the collection from a ports.CompanySource and holds the
// last successfully loaded copy. Safe for concurrent use.
type Loader struct {
	source     ports.CompanySource
	sourceName string
	maxRetries int
	retryDelay time.Duration
	metrics    *telemetry.Metrics
	logger     *slog.Logger

	mu        sync.Mutex
	baseCtx   context.Context
	state     State
	companies []company.Company
	err       error
	attempts  int
	loadedAt  time.Time
	gen       uint64
	cancel    context.CancelFunc
	settled   chan struct{}
	closed    bool
	wg        sync.WaitGroup
}

// New creates an idle Loader. A nil metrics disables metric recording.
func New(cfg *config.DirectoryConfig, source ports.CompanySource, metrics *telemetry.Metrics, logger *slog.Logger) *Loader {
	return &Loader{
		source:     source,
		sourceName: cfg.Source,
		maxRetries: max(cfg.Retry.MaxRetries, 0),
		retryDelay: cfg.Retry.Delay,
		metrics:    metrics,
		logger:     logging.OrDiscard(logger),
		state:      StateIdle,
		settled:    make(chan struct{}),
	}
}

// Start issues the first load. Loads run under ctx until Close; Start is a
// no-op unless the loader is idle.
func (l *Loader) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateIdle || l.closed {
		return
	}
	l.baseCtx = context.WithoutCancel(ctx)
	l.beginLocked()
}

// Retry re-enters loading from the error state. It returns ErrNotFailed in
// any other state.
func (l *Loader) Retry() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateError || l.closed {
		return ErrNotFailed
	}
	l.beginLocked()
	return nil
}

// Refetch starts a new load from any state. A load already in flight is
// canceled and its result discarded. Calling Refetch before Start starts the
// loader with a background context.
func (l *Loader) Refetch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if l.baseCtx == nil {
		l.baseCtx = context.Background()
	}
	l.beginLocked()
}

// beginLocked supersedes any load in flight and starts a new one.
// Callers must hold l.mu.
func (l *Loader) beginLocked() {
	if l.cancel != nil {
		l.cancel()
	}

	// Waiters of a superseded load keep waiting for the new one.
	if l.state != StateLoading {
		l.settled = make(chan struct{})
	}

	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(l.baseCtx)
	l.cancel = cancel
	l.state = StateLoading
	l.err = nil
	l.attempts = 0

	l.wg.Add(1)
	go l.run(ctx, gen)
}

func (l *Loader) run(ctx context.Context, gen uint64) {
	defer l.wg.Done()

	start := time.Now()
	var (
		companies []company.Company
		err       error
	)

	for attempt := range l.maxRetries + 1 {
		if attempt > 0 {
			l.logger.WarnContext(ctx, "retrying company collection load",
				slog.String("operation", "loader.run"),
				slog.String("source", l.sourceName),
				slog.Int("attempt", attempt+1),
				slog.Duration("delay", l.retryDelay),
				slog.Any("error", err),
			)
			if !sleep(ctx, l.retryDelay) {
				return
			}
		}

		if !l.recordAttempt(gen, attempt+1) {
			return
		}

		companies, err = l.source.ListCompanies(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			break
		}
	}

	l.finish(ctx, gen, companies, err, time.Since(start))
}

// recordAttempt reports false if gen has been superseded.
func (l *Loader) recordAttempt(gen uint64, attempt int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return false
	}
	l.attempts = attempt
	return true
}

func (l *Loader) finish(ctx context.Context, gen uint64, companies []company.Company, err error, elapsed time.Duration) {
	if err != nil && !errors.Is(err, domain.ErrFetchFailed) {
		err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}

	attempts := l.attempts
	if err != nil {
		l.state = StateError
		l.err = err
	} else {
		if companies == nil {
			companies = []company.Company{}
		}
		l.state = StateSuccess
		l.companies = companies
		l.loadedAt = time.Now()
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	close(l.settled)
	l.mu.Unlock()

	result := "success"
	if err != nil {
		result = "error"
		l.logger.ErrorContext(ctx, "company collection load failed",
			slog.String("operation", "loader.run"),
			slog.String("source", l.sourceName),
			slog.Int("attempts", attempts),
			slog.Any("error", err),
		)
	} else {
		l.logger.InfoContext(ctx, "company collection loaded",
			slog.String("source", l.sourceName),
			slog.Int("count", len(companies)),
			slog.Int("attempts", attempts),
			slog.Duration("elapsed", elapsed),
		)
	}
	l.recordMetrics(ctx, result, elapsed, len(companies))
}

// recordMetrics counts a settled load. The size gauge only moves on success.
func (l *Loader) recordMetrics(ctx context.Context, result string, elapsed time.Duration, size int) {
	if l.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		telemetry.AttrSource.String(l.sourceName),
		telemetry.AttrResult.String(result),
	)
	l.metrics.DirectoryLoadDuration.Record(ctx, elapsed.Seconds(), attrs)
	l.metrics.DirectoryLoadTotal.Add(ctx, 1, attrs)
	if result == "success" {
		l.metrics.CollectionSize.Record(ctx, int64(size), metric.WithAttributes(telemetry.AttrSource.String(l.sourceName)))
	}
}

// Wait blocks until the current load settles or ctx is done. It returns nil
// immediately when no load is in flight, including when the loader is idle.
func (l *Loader) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.state != StateLoading || l.closed {
			l.mu.Unlock()
			return nil
		}
		settled := l.settled
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-settled:
			// A Retry may have started between settle and re-lock; loop to
			// report on the latest load.
			l.mu.Lock()
			loading := l.state == StateLoading && !l.closed
			l.mu.Unlock()
			if !loading {
				return nil
			}
		}
	}
}

// Snapshot returns a copy of the current state. The Companies slice is shared
// and must not be modified.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		State:     l.state,
		Companies: l.companies,
		Err:       l.err,
		Attempts:  l.attempts,
		LoadedAt:  l.loadedAt,
	}
}

// Companies returns the last successfully loaded collection, or nil before
// the first success. The slice must not be modified.
func (l *Loader) Companies() []company.Company {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.companies
}

// Close cancels any load in flight, waits for it to exit, and releases
// waiters. Further Start, Retry, and Refetch calls are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.wg.Wait()

	l.mu.Lock()
	select {
	case <-l.settled:
	default:
		close(l.settled)
	}
	l.mu.Unlock()
}

// Name identifies the loader in the health registry.
func (l *Loader) Name() string {
	return "loader"
}

// HealthCheck is healthy after a successful load and while a refetch runs
// over a held collection. A first load in progress is degraded. A settled
// failure is failing even when an earlier collection is still held, since
// queries answer with the fetch error until a load succeeds.
func (l *Loader) HealthCheck(_ context.Context) error {
	snap := l.Snapshot()
	switch {
	case snap.State == StateSuccess:
		return nil
	case snap.State == StateLoading && snap.Companies != nil:
		return nil
	case snap.State == StateLoading:
		return errors.New("loader: degraded (initial load in progress)")
	case snap.State == StateError:
		return fmt.Errorf("loader: failing (%w)", snap.Err)
	default:
		return errors.New("loader: not started")
	}
}

// sleep waits for d or ctx, reporting false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
