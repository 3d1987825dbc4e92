// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Directory DirectoryConfig `koanf:"directory"`
	Session   SessionConfig   `koanf:"session"`
	CORS      CORSConfig      `koanf:"cors"`
	Health    HealthConfig    `koanf:"health"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds settings for the HTTP client used by the remote
// company source.
type ClientConfig struct {
	BaseURL string `koanf:"base_url"`
	// APIKey, when set, is sent on every request in the APIKeyHeader header.
	APIKey         string               `koanf:"api_key"`
	APIKeyHeader   string               `koanf:"api_key_header"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds transport-level retry settings with exponential backoff.
// MaxAttempts of 1 disables transport retries; the loader owns the
// collection-level retry.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limiting settings. A zero
// RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// Company source kinds.
const (
	SourceStatic = "static"
	SourceRemote = "remote"
)

// DirectoryConfig holds the company collection and browsing settings.
type DirectoryConfig struct {
	// Source selects where the collection is read from: "static" or "remote".
	Source string `koanf:"source"`
	// StaticPath is the JSON document read when Source is "static".
	StaticPath string `koanf:"static_path"`
	// Watch reloads the static document when it changes on disk.
	Watch bool `koanf:"watch"`
	// RemotePath is appended to client.base_url when Source is "remote".
	RemotePath     string               `koanf:"remote_path"`
	PageSize       int                  `koanf:"page_size"`
	SearchDebounce time.Duration        `koanf:"search_debounce"`
	Locale         string               `koanf:"locale"`
	Retry          DirectoryRetryConfig `koanf:"retry"`
}

// DirectoryRetryConfig holds the loader's collection-level retry policy.
type DirectoryRetryConfig struct {
	MaxRetries int           `koanf:"max_retries"`
	Delay      time.Duration `koanf:"delay"`
}

// SessionConfig holds browse session lifecycle settings.
type SessionConfig struct {
	IdleTimeout   time.Duration `koanf:"idle_timeout"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	MaxSessions   int           `koanf:"max_sessions"`
}

// HealthConfig holds readiness check settings. A zero MaxConcurrent runs
// every check at once.
type HealthConfig struct {
	CheckTimeout  time.Duration `koanf:"check_timeout"`
	MaxConcurrent int           `koanf:"max_concurrent"`
}

// CORSConfig holds cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowed_origins"`
	MaxAge         time.Duration `koanf:"max_age"`
}
