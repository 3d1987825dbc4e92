package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
)

// load reads profile from the repository's configs directory.
func load(t *testing.T, profile string) *config.Config {
	t.Helper()
	t.Chdir("../../..")

	cfg, err := config.Load(profile)
	require.NoError(t, err, "Load(%q)", profile)
	return cfg
}

func TestLoad_Local(t *testing.T) {
	cfg := load(t, "local")

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, config.SourceStatic, cfg.Directory.Source)
	assert.True(t, cfg.Directory.Watch)

	// Inherited from base.yaml.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Client.CircuitBreaker.MaxFailures)
	assert.Equal(t, 12, cfg.Directory.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Directory.SearchDebounce)
	assert.Equal(t, config.DirectoryRetryConfig{MaxRetries: 1, Delay: time.Second}, cfg.Directory.Retry)
	assert.Equal(t, 2*time.Second, cfg.Health.CheckTimeout)
}

func TestLoad_Prod(t *testing.T) {
	cfg := load(t, "prod")

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otlp", cfg.Telemetry.Exporter)
	assert.NotEmpty(t, cfg.Telemetry.Endpoint)
	assert.Equal(t, config.SourceRemote, cfg.Directory.Source)
	assert.Positive(t, cfg.Client.RateLimit.RequestsPerSecond)
	assert.Equal(t, []string{"https://directory.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "top-level key",
			env:  map[string]string{"APP_SERVER_PORT": "9090"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
			},
		},
		{
			name: "snake_case key",
			env:  map[string]string{"APP_SERVER_READ_TIMEOUT": "15s"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "nested snake_case key",
			env:  map[string]string{"APP_DIRECTORY_RETRY_MAX_RETRIES": "3"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 3, cfg.Directory.Retry.MaxRetries)
			},
		},
		{
			name: "list",
			env:  map[string]string{"APP_CORS_ALLOWED_ORIGINS": "https://a.example.com, ,https://b.example.com"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
			},
		},
		{
			name: "beats the profile file",
			env:  map[string]string{"APP_LOG_LEVEL": "warn", "APP_DIRECTORY_WATCH": "false"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "warn", cfg.Log.Level)
				assert.False(t, cfg.Directory.Watch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, load(t, "local"))
		})
	}
}

func TestLoad_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("base.yaml", "server:\n  port: 7000\n")
	write("test.yaml", "directory:\n  page_size: 5\n")

	cfg, err := config.Load("test", config.WithConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Directory.PageSize)
	// Everything else falls back to the built-in defaults.
	assert.Equal(t, config.SourceStatic, cfg.Directory.Source)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	for _, profile := range []string{"", "  ", "../etc", "a/b", `a\b`} {
		_, err := config.Load(profile)
		assert.Error(t, err, "profile %q", profile)
	}

	_, err := config.Load("nonexistent", config.WithConfigDir(t.TempDir()))
	assert.ErrorContains(t, err, "base.yaml")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "port zero", modify: func(c *config.Config) { c.Server.Port = 0 }},
		{name: "unknown log level", modify: func(c *config.Config) { c.Log.Level = "verbose" }},
		{name: "otlp without endpoint", modify: func(c *config.Config) {
			c.Telemetry = config.TelemetryConfig{Enabled: true, Exporter: "otlp"}
		}},
		{name: "unknown source", modify: func(c *config.Config) { c.Directory.Source = "ftp" }},
		{name: "static without path", modify: func(c *config.Config) { c.Directory.StaticPath = "" }},
		{name: "remote path without slash", modify: func(c *config.Config) {
			c.Directory.Source = config.SourceRemote
			c.Directory.RemotePath = "companies"
		}},
		{name: "zero page size", modify: func(c *config.Config) { c.Directory.PageSize = 0 }},
		{name: "negative retries", modify: func(c *config.Config) { c.Directory.Retry.MaxRetries = -1 }},
		{name: "bad locale", modify: func(c *config.Config) { c.Directory.Locale = "not a locale!" }},
		{name: "zero session limit", modify: func(c *config.Config) { c.Session.MaxSessions = 0 }},
		{name: "zero health timeout", modify: func(c *config.Config) { c.Health.CheckTimeout = 0 }},
		{name: "negative health concurrency", modify: func(c *config.Config) { c.Health.MaxConcurrent = -1 }},
		{name: "api key without header", modify: func(c *config.Config) {
			c.Client.APIKey = "secret"
			c.Client.APIKeyHeader = ""
		}},
		{name: "rate limit without burst", modify: func(c *config.Config) {
			c.Client.RateLimit.RequestsPerSecond = 2
			c.Client.RateLimit.BurstSize = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = -1
	cfg.Log.Format = "xml"
	cfg.Session.MaxSessions = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"server.port", "log.format", "session.max_sessions"} {
		assert.ErrorContains(t, err, key)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: config.ClientConfig{
			BaseURL: "http://localhost:3001",
			Timeout: 30 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     2 * time.Second,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Directory: config.DirectoryConfig{
			Source:         config.SourceStatic,
			StaticPath:     "data/companies.json",
			RemotePath:     "/companies",
			PageSize:       12,
			SearchDebounce: 250 * time.Millisecond,
			Locale:         "en",
			Retry: config.DirectoryRetryConfig{
				MaxRetries: 1,
				Delay:      time.Second,
			},
		},
		Session: config.SessionConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: time.Minute,
			MaxSessions:   1000,
		},
		Health: config.HealthConfig{
			CheckTimeout: 2 * time.Second,
		},
	}
}
