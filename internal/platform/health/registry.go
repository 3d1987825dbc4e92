// Package health provides the registry behind the readiness endpoint. The
// collection loader and the remote company API client register here at
// startup.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/platform/fanout"
	"github.com/jsamuelsen11/company-directory/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds each individual check.
const DefaultCheckTimeout = 2 * time.Second

// Registry is a thread-safe [ports.HealthRegistry]. Checks run concurrently,
// each under its own timeout.
type Registry struct {
	mu            sync.RWMutex
	checkers      []ports.HealthChecker
	checkTimeout  time.Duration
	maxConcurrent int
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout overrides DefaultCheckTimeout. Non-positive values disable
// the per-check timeout.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.checkTimeout = d
	}
}

// WithMaxConcurrentChecks caps how many checks run at once. Zero, the
// default, runs them all together.
func WithMaxConcurrentChecks(n int) Option {
	return func(r *Registry) {
		r.maxConcurrent = n
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{checkTimeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a checker. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check and returns results keyed by checker
// name. Nil values indicate healthy components.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	outcomes := fanout.Map(ctx, r.maxConcurrent, checkers,
		func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
			return struct{}{}, r.check(ctx, c)
		})

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i].Err
	}
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	if r.checkTimeout <= 0 {
		return c.HealthCheck(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, r.checkTimeout)
	defer cancel()
	return c.HealthCheck(ctx)
}
