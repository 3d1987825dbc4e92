package ports

import "context"

// HealthChecker reports whether one dependency of the directory can serve.
// The collection loader and the company sources implement it.
type HealthChecker interface {
	// Name labels the check in readiness output, e.g. "loader".
	Name() string
	// HealthCheck returns nil when healthy. It must give up when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers at startup and runs them for the
// readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll returns one entry per checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
