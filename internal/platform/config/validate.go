package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// checks collects every failed rule so one run reports all of them.
type checks []error

func (c *checks) expect(ok bool, format string, args ...any) {
	if !ok {
		*c = append(*c, fmt.Errorf(format, args...))
	}
}

func (c *checks) oneOf(key, got string, allowed ...string) {
	c.expect(slices.Contains(allowed, got), "%s must be one of %s, got %q", key, strings.Join(allowed, ", "), got)
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var v checks
	c.Server.check(&v)
	c.Log.check(&v)
	c.Client.check(&v)
	c.Telemetry.check(&v)
	c.Directory.check(&v)
	c.Session.check(&v)
	c.Health.check(&v)
	return errors.Join(v...)
}

func (s *ServerConfig) check(v *checks) {
	v.expect(s.Port >= 1 && s.Port <= 65535, "server.port must be in 1..65535, got %d", s.Port)
	v.expect(s.ReadTimeout > 0, "server.read_timeout must be positive, got %s", s.ReadTimeout)
	v.expect(s.WriteTimeout > 0, "server.write_timeout must be positive, got %s", s.WriteTimeout)
}

func (l *LogConfig) check(v *checks) {
	v.oneOf("log.level", l.Level, "debug", "info", "warn", "error")
	v.oneOf("log.format", l.Format, "json", "text")
}

func (cl *ClientConfig) check(v *checks) {
	v.expect(cl.BaseURL != "", "client.base_url must be set")
	v.expect(cl.APIKey == "" || cl.APIKeyHeader != "", "client.api_key_header must be set when client.api_key is")
	v.expect(cl.Timeout > 0, "client.timeout must be positive, got %s", cl.Timeout)
	v.expect(cl.Retry.MaxAttempts >= 1, "client.retry.max_attempts must be at least 1, got %d", cl.Retry.MaxAttempts)
	v.expect(cl.Retry.Multiplier > 0, "client.retry.multiplier must be positive, got %g", cl.Retry.Multiplier)
	v.expect(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be at least 1, got %d", cl.CircuitBreaker.MaxFailures)

	rps := cl.RateLimit.RequestsPerSecond
	v.expect(rps >= 0, "client.rate_limit.requests_per_second must not be negative, got %g", rps)
	v.expect(rps == 0 || cl.RateLimit.BurstSize >= 1,
		"client.rate_limit.burst_size must be at least 1 when rate limiting, got %d", cl.RateLimit.BurstSize)
}

func (t *TelemetryConfig) check(v *checks) {
	if !t.Enabled {
		return
	}
	v.oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
	v.expect(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint must be set for the otlp exporter")
}

func (d *DirectoryConfig) check(v *checks) {
	switch d.Source {
	case SourceStatic:
		v.expect(d.StaticPath != "", "directory.static_path must be set for the static source")
	case SourceRemote:
		v.expect(strings.HasPrefix(d.RemotePath, "/"), "directory.remote_path must start with /, got %q", d.RemotePath)
	default:
		v.oneOf("directory.source", d.Source, SourceStatic, SourceRemote)
	}

	v.expect(d.PageSize >= 1, "directory.page_size must be at least 1, got %d", d.PageSize)
	v.expect(d.SearchDebounce >= 0, "directory.search_debounce must not be negative, got %s", d.SearchDebounce)
	_, err := language.Parse(d.Locale)
	v.expect(err == nil, "directory.locale %q is not a BCP 47 tag: %v", d.Locale, err)
	v.expect(d.Retry.MaxRetries >= 0, "directory.retry.max_retries must not be negative, got %d", d.Retry.MaxRetries)
	v.expect(d.Retry.Delay >= 0, "directory.retry.delay must not be negative, got %s", d.Retry.Delay)
}

func (s *SessionConfig) check(v *checks) {
	v.expect(s.IdleTimeout > 0, "session.idle_timeout must be positive, got %s", s.IdleTimeout)
	v.expect(s.SweepInterval > 0, "session.sweep_interval must be positive, got %s", s.SweepInterval)
	v.expect(s.MaxSessions >= 1, "session.max_sessions must be at least 1, got %d", s.MaxSessions)
}

func (h *HealthConfig) check(v *checks) {
	v.expect(h.CheckTimeout > 0, "health.check_timeout must be positive, got %s", h.CheckTimeout)
	v.expect(h.MaxConcurrent >= 0, "health.max_concurrent must not be negative, got %d", h.MaxConcurrent)
}
