package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 1
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultPageSize         = 12
	defaultDirectoryRetries = 1
	defaultMaxSessions      = 1000
	defaultRateLimitBurst   = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"client.base_url":                        "http://localhost:3001",
		"client.api_key":                         "",
		"client.api_key_header":                  "X-API-Key",
		"client.timeout":                         "10s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "2s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "company-directory",

		"directory.source":            SourceStatic,
		"directory.static_path":       "data/companies.json",
		"directory.watch":             false,
		"directory.remote_path":       "/companies",
		"directory.page_size":         defaultPageSize,
		"directory.search_debounce":   "250ms",
		"directory.locale":            "en",
		"directory.retry.max_retries": defaultDirectoryRetries,
		"directory.retry.delay":       "1s",

		"session.idle_timeout":   "30m",
		"session.sweep_interval": "1m",
		"session.max_sessions":   defaultMaxSessions,

		"cors.allowed_origins": []string{"http://localhost:5173"},
		"cors.max_age":         "5m",

		"health.check_timeout":  "2s",
		"health.max_concurrent": 0,
	}
}
