package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/logging"
)

const (
	// jitter spreads each backoff delay by up to ±25%.
	jitter = 0.25

	// retryAfterCap bounds a server-sent Retry-After.
	retryAfterCap = 30 * time.Second
)

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

func retryPolicyFrom(cfg config.RetryConfig) retryPolicy {
	p := retryPolicy{
		attempts:   max(cfg.MaxAttempts, 1),
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
	if p.multiplier < 1 {
		p.multiplier = 1
	}
	if p.ceiling < p.initial {
		p.ceiling = p.initial
	}
	return p
}

// delay is the jittered wait before retry n, counting from 1.
func (p retryPolicy) delay(n int) time.Duration {
	d := float64(p.initial)
	for range n - 1 {
		d *= p.multiplier
		if d >= float64(p.ceiling) {
			break
		}
	}
	d = min(d, float64(p.ceiling))
	d += d * jitter * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

// send runs the attempts for req. A retryable status that is still failing
// after the last attempt comes back as both the response and an error.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	var wait time.Duration
	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("%s: rewinding request body: %w", c.name, err)
				}
				req.Body = body
			}
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		last := attempt >= c.retry.attempts || !replayable

		resp, err := c.http.Do(req)
		if err != nil {
			if last || !retryableErr(err) {
				return nil, fmt.Errorf("%s: %s %s: %w", c.name, req.Method, req.URL.Redacted(), err)
			}
			wait = c.retry.delay(attempt)
			c.logRetry(ctx, req, attempt, wait, err)
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		statusErr := fmt.Errorf("%s: %s %s: HTTP %d", c.name, req.Method, req.URL.Redacted(), resp.StatusCode)
		if last {
			return resp, statusErr
		}

		wait = retryAfter(resp.Header.Get("Retry-After"), time.Now())
		if wait == 0 {
			wait = c.retry.delay(attempt)
		}
		// Draining lets the connection be reused by the next attempt.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		c.logRetry(ctx, req, attempt, wait, statusErr)
	}
}

func (c *Client) logRetry(ctx context.Context, req *http.Request, attempt int, wait time.Duration, cause error) {
	logging.FromContext(ctx).WarnContext(ctx, "retrying company API request",
		slog.String("peer_service", c.name),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Int("attempt", attempt),
		slog.Int("max_attempts", c.retry.attempts),
		slog.Duration("wait", wait),
		slog.Any("error", cause),
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryAfter reads delta-seconds or an HTTP-date. Missing, malformed, and
// past values are zero.
func retryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}
	return min(max(d, 0), retryAfterCap)
}

// retryableErr treats everything except the caller giving up as transient.
func retryableErr(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
