package middleware

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
)

const (
	tracerName     = "company-directory/http"
	unmatchedRoute = "unmatched"
)

// OpenTelemetry opens a server span per request, continuing any W3C trace
// context the caller sent, and records request metrics. Spans and metrics
// are keyed by the matched route pattern, never the raw path, so company and
// session IDs do not end up in span names or metric labels. A nil metrics
// records spans only.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			rec := record(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			route := routePattern(r)
			if route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			} else {
				route = unmatchedRoute
			}

			span.SetAttributes(attribute.Int("http.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}

			recordServerMetrics(ctx, metrics, r.Method, route, rec.status, time.Since(start))
		})
	}
}

func recordServerMetrics(ctx context.Context, metrics *telemetry.Metrics, method, route string, status int, elapsed time.Duration) {
	if metrics == nil {
		return
	}

	result := "success"
	if status >= http.StatusBadRequest {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrResult.String(result),
	)
	metrics.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	metrics.ServerRequestTotal.Add(ctx, 1, attrs)
}
