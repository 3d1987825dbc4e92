// Package telemetry sets up OpenTelemetry for the directory service: a
// tracer and meter provider per process, exported to stdout during
// development or to an OTLP/HTTP collector, plus the metric instruments the
// HTTP layer, the remote client, the loader, and the session service record
// into.
//
//	p, err := telemetry.Setup(ctx, cfg.Telemetry)
//	defer p.Shutdown(ctx)
//	loader.New(..., p.Metrics, ...)
//
// With telemetry disabled Setup returns empty Providers; every recorder in
// the service accepts a nil *Metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
)

// Exporter names accepted in telemetry.exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var errNoEndpoint = errors.New("telemetry.endpoint is required for the otlp exporter")

// Metric attribute keys. Route, never the raw path, labels server metrics.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrSource      = attribute.Key("directory.source")
)

// Metrics are the instruments the service records into.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	// DirectoryLoadDuration covers one full load including the retry delay.
	DirectoryLoadDuration metric.Float64Histogram
	DirectoryLoadTotal    metric.Int64Counter
	// CollectionSize is the number of companies in the last good load.
	CollectionSize metric.Int64Gauge
	SessionsActive metric.Int64UpDownCounter
}

// Providers owns the SDK providers built by Setup.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup builds and registers the global tracer provider, meter provider,
// and W3C propagator, then creates the service's instruments.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	spans, err := spanExporter(ctx, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("span exporter: %w", err)
	}
	readings, err := metricExporter(ctx, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res)),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(readings)),
			sdkmetric.WithResource(res),
		),
	}
	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p.Metrics, err = NewMetrics(p.Meter, cfg.ServiceName)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	return p, nil
}

// Shutdown flushes and stops both providers. It is safe on empty Providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewMetrics creates every instrument on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	b := builder{meter: mp.Meter(scope)}
	m := &Metrics{
		ServerRequestDuration: b.histogram("http.server.request.duration", "s", "Duration of inbound directory API requests"),
		ServerRequestTotal:    b.counter("http.server.request.total", "{request}", "Inbound directory API requests"),
		ClientRequestDuration: b.histogram("http.client.request.duration", "s", "Duration of company API requests"),
		ClientRequestTotal:    b.counter("http.client.request.total", "{request}", "Company API requests"),
		DirectoryLoadDuration: b.histogram("directory.load.duration", "s", "Duration of collection loads, including retries"),
		DirectoryLoadTotal:    b.counter("directory.load.total", "{load}", "Settled collection loads"),
		CollectionSize:        b.gauge("directory.collection.size", "{company}", "Companies in the current collection"),
		SessionsActive:        b.upDown("directory.sessions.active", "{session}", "Live browse sessions"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// builder creates instruments and keeps the first error.
type builder struct {
	meter metric.Meter
	err   error
}

func (b *builder) fail(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
}

func (b *builder) histogram(name, unit, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithUnit(unit), metric.WithDescription(desc))
	b.fail(name, err)
	return h
}

func (b *builder) counter(name, unit, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithUnit(unit), metric.WithDescription(desc))
	b.fail(name, err)
	return c
}

func (b *builder) gauge(name, unit, desc string) metric.Int64Gauge {
	g, err := b.meter.Int64Gauge(name, metric.WithUnit(unit), metric.WithDescription(desc))
	b.fail(name, err)
	return g
}

func (b *builder) upDown(name, unit, desc string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithUnit(unit), metric.WithDescription(desc))
	b.fail(name, err)
	return c
}

func spanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		host, insecure, err := collector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}

func metricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdoutmetric.New()
	case ExporterOTLP:
		host, insecure, err := collector(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
}

// collector splits an OTLP endpoint such as "http://otel-collector:4318"
// into the host:port the exporters want and whether to skip TLS. A bare
// host:port is taken as plain HTTP.
func collector(endpoint string) (host string, insecure bool, err error) {
	if endpoint == "" {
		return "", false, errNoEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint, true, nil
	}
	return u.Host, u.Scheme != "https", nil
}
