package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// listKeys take a comma-separated value from the environment.
var listKeys = []string{"cors.allowed_origins"}

// Option adjusts Load.
type Option func(*loadOptions)

type loadOptions struct {
	dir string
}

// WithConfigDir reads the YAML files from dir instead of ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.dir = dir }
}

// Load builds the configuration for profile and validates it. Later layers
// override earlier ones:
//
//	built-in defaults
//	{dir}/base.yaml
//	{dir}/{profile}.yaml
//	APP_* environment variables
//
// An environment variable names a key with dots written as underscores:
//
//	APP_SERVER_READ_TIMEOUT        server.read_timeout
//	APP_DIRECTORY_RETRY_MAX_RETRIES directory.retry.max_retries
//	APP_CORS_ALLOWED_ORIGINS       cors.allowed_origins (comma-separated)
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	o := loadOptions{dir: defaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.dir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	vars := newEnvKeys(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{Prefix: envPrefix, TransformFunc: vars.resolve}), nil); err != nil {
		return nil, fmt.Errorf("loading %s* environment: %w", envPrefix, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return &cfg, nil
}

// envKeys maps a lowercased variable name without prefix to the config key
// it overrides. Splitting on every underscore would turn read_timeout into
// read.timeout, so names are matched against the keys already loaded.
type envKeys map[string]string

func newEnvKeys(keys []string) envKeys {
	m := make(envKeys, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

func (m envKeys) resolve(name, value string) (string, any) {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	key, ok := m[name]
	switch {
	case !ok:
		return strings.ReplaceAll(name, "_", "."), value
	case slices.Contains(listKeys, key):
		return key, splitList(value)
	default:
		return key, value
	}
}

func splitList(value string) []string {
	items := strings.Split(value, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return slices.DeleteFunc(items, func(s string) bool { return s == "" })
}

// checkProfile keeps the profile a plain file name inside the config dir.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("config profile is empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("config profile %q must be a plain name", profile)
	default:
		return nil
	}
}
