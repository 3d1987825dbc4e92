package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/company-directory/internal/platform/httpclient"
)

// maxResponseBodySize caps how much of a successful response is decoded.
const maxResponseBodySize = 16 << 20 // 16 MB

// Requester centralizes the read request lifecycle for ACL clients:
// execution via httpclient.Client, response body cleanup, status code
// validation, error translation, and bounded JSON decoding.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client and logger.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// GetJSONIfChanged issues a GET for path relative to the base URL and decodes
// a 200 OK body into respBody. A non-empty ifNoneMatch is sent as
// If-None-Match; a 304 Not Modified answer then leaves respBody untouched and
// reports notModified. etag is the validator of the decoded body, or "" if the
// server sent none. Other statuses go through TranslateHTTPError.
func (r *Requester) GetJSONIfChanged(ctx context.Context, path, ifNoneMatch string, respBody any) (etag string, notModified bool, err error) {
	resp, err := r.client.Get(ctx, path, httpclient.WithHeader("If-None-Match", ifNoneMatch))
	if err != nil {
		// Retries exhausted on a retryable status return both resp and err.
		// Translate the response so callers see a domain error.
		if resp != nil {
			defer r.closeBody(ctx, resp)
			if resp.StatusCode != http.StatusOK {
				return "", false, TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("operation", "acl.GetJSONIfChanged"),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return "", false, fmt.Errorf("GET %s: %w", path, err)
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode == http.StatusNotModified && ifNoneMatch != "" {
		return ifNoneMatch, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "unexpected status",
			slog.String("operation", "acl.GetJSONIfChanged"),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return "", false, TranslateHTTPError(resp)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize))
	if err := dec.Decode(respBody); err != nil {
		return "", false, fmt.Errorf("decoding response from GET %s: %w", path, err)
	}
	return resp.Header.Get("ETag"), false, nil
}

// BaseURL returns the base URL from the underlying HTTP client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// HealthCheck reports the underlying client's circuit breaker state.
func (r *Requester) HealthCheck(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.Any("error", err),
		)
	}
}
