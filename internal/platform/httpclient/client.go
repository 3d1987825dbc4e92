// Package httpclient is the outbound HTTP client the remote company source
// fetches through. Each call goes
//
//	rate limiter → circuit breaker → client span → attempts with backoff
//
// and every attempt carries the inbound request and correlation IDs, the
// configured API key, and W3C trace context.
//
//	c := httpclient.New(&cfg.Client, "company-api", metrics, logger)
//	resp, err := c.Get(ctx, "/companies", httpclient.WithHeader("If-None-Match", etag))
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
)

const tracerName = "company-directory/httpclient"

var errNoBaseURL = errors.New("httpclient: client.base_url is not configured")

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID makes outbound calls made with ctx send id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID makes outbound calls made with ctx send id as
// X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// Client calls one downstream service.
type Client struct {
	http    *http.Client
	base    *url.URL
	name    string
	keyName string
	key     string
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a client for the downstream called name. An unparseable or
// empty base URL is reported by the first request. A nil metrics records
// nothing.
func New(cfg *config.ClientConfig, name string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	logger = logging.OrDiscard(logger)

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		name:    name,
		keyName: cfg.APIKeyHeader,
		key:     cfg.APIKey,
		retry:   retryPolicyFrom(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		c.base = u
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	maxFailures := cfg.CircuitBreaker.MaxFailures
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= maxFailures
		},
		// A caller that gave up, such as a superseded collection load, says
		// nothing about the downstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(breaker string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", breaker),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return c
}

// RequestOption adjusts a request built by Get.
type RequestOption func(*http.Request)

// WithHeader sets a request header. An empty value leaves the header unset.
func WithHeader(name, value string) RequestOption {
	return func(req *http.Request) {
		if value != "" {
			req.Header.Set(name, value)
		}
	}
}

// Get fetches ref, a path with an optional query, relative to the base URL
// and asks for JSON. The response contract matches Do.
func (c *Client) Get(ctx context.Context, ref string, opts ...RequestOption) (*http.Response, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("httpclient: building request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	return c.Do(ctx, req)
}

// Do sends req. The caller closes the body of any non-nil response, which
// includes the final response of a retryable status that ran out of
// attempts; err is non-nil then as well. Breaker rejections, rate limit
// waits, and transport failures return a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			err = fmt.Errorf("%s: waiting for rate limiter: %w", c.name, err)
			c.recordMetrics(ctx, req.Method, start, nil, err)
			return nil, err
		}
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.traced(ctx, req)
	})
	c.recordMetrics(ctx, req.Method, start, resp, err)
	return resp, err
}

// traced runs the attempts under a client span.
func (c *Client) traced(ctx context.Context, req *http.Request) (*http.Response, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("url.full", req.URL.Redacted()),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	out := req.Clone(ctx)
	c.decorate(ctx, out)

	resp, err := c.send(ctx, out)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

// decorate adds the API key, forwarded IDs, and trace context.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if c.key != "" && c.keyName != "" {
		req.Header.Set(c.keyName, c.key)
	}
	if id, _ := ctx.Value(requestIDKey{}).(string); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	if id, _ := ctx.Value(correlationIDKey{}).(string); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// BaseURL is the configured base URL, or "" when none is usable.
func (c *Client) BaseURL() string {
	if c.base == nil {
		return ""
	}
	return c.base.String()
}

// Name identifies the downstream in spans, metrics, and health output.
func (c *Client) Name() string {
	return c.name
}

// BreakerState is "closed", "half-open", or "open".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// HealthCheck reports the breaker state without calling the downstream:
// closed is healthy, half-open is degraded, open is failing.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.name, state)
	}
}

// resolve appends ref's path to the base URL's path and keeps ref's query.
func (c *Client) resolve(ref string) (string, error) {
	if c.base == nil {
		return "", errNoBaseURL
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid path %q: %w", ref, err)
	}
	u := c.base.JoinPath(r.Path)
	u.RawQuery = r.RawQuery
	return u.String(), nil
}

// recordMetrics runs outside the breaker so rejections are counted too.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	result := "error"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "circuit_open"
	case errors.Is(err, context.Canceled):
		result = "canceled"
	case err == nil && status < http.StatusBadRequest:
		result = "success"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.name),
		telemetry.AttrResult.String(result),
	)
	c.metrics.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case uint64(v) > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
