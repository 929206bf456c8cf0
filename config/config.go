// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/artpar/billmock/domain/billing"
	"github.com/artpar/billmock/domain/validate"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Auth      AuthConfig       `yaml:"auth"`
	RateLimit RateLimitConfig  `yaml:"rate_limit"`
	Logging   LoggingConfig    `yaml:"logging"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	OpenAPI   OpenAPIConfig    `yaml:"openapi"`
	Fixtures  billing.Fixtures `yaml:"fixtures"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// AuthConfig configures the single Basic auth credential pair the mock
// accepts.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RateLimitConfig configures the sliding window applied to utilization
// endpoints.
type RateLimitConfig struct {
	MaxRequests int `yaml:"max_requests"`
	WindowMs    int `yaml:"window_ms"`
}

// Window returns the configured window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path"`    // Custom path (default: /metrics)
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled"` // Enable OpenAPI endpoints
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration built entirely from defaults and
// BILLMOCK_* environment variables. The mock is fully usable with no
// config file at all.
func Default() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to defaults plus
// environment variables when the file does not exist.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default()
}

// applyEnvOverrides applies BILLMOCK_* environment variables to the
// config. Environment variables always override file-based configuration.
//
//	BILLMOCK_SERVER_HOST      - Server host (default: 0.0.0.0)
//	BILLMOCK_SERVER_PORT      - Server port (default: 3000)
//	BILLMOCK_AUTH_USERNAME    - Basic auth username (default: testuser)
//	BILLMOCK_AUTH_PASSWORD    - Basic auth password (default: testpass)
//	BILLMOCK_RATELIMIT_MAX    - Requests admitted per window (default: 2)
//	BILLMOCK_RATELIMIT_WINDOW - Window in milliseconds (default: 1000)
//	BILLMOCK_LOG_LEVEL        - Log level: debug, info, warn, error
//	BILLMOCK_LOG_FORMAT       - Log format: json or console
//	BILLMOCK_METRICS_ENABLED  - Enable /metrics endpoint
//	BILLMOCK_OPENAPI_ENABLED  - Enable OpenAPI/Swagger
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BILLMOCK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BILLMOCK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BILLMOCK_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("BILLMOCK_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	if v := os.Getenv("BILLMOCK_AUTH_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("BILLMOCK_AUTH_PASSWORD"); v != "" {
		cfg.Auth.Password = v
	}

	if v := os.Getenv("BILLMOCK_RATELIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.MaxRequests = n
		}
	}
	if v := os.Getenv("BILLMOCK_RATELIMIT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.WindowMs = n
		}
	}

	if v := os.Getenv("BILLMOCK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BILLMOCK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("BILLMOCK_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("BILLMOCK_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}

	if v := os.Getenv("BILLMOCK_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if cfg.Auth.Username == "" {
		cfg.Auth.Username = "testuser"
	}
	if cfg.Auth.Password == "" {
		cfg.Auth.Password = "testpass"
	}

	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 2
	}
	if cfg.RateLimit.WindowMs == 0 {
		cfg.RateLimit.WindowMs = 1000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Empty fixture set means the stock dataset
	if (cfg.Fixtures == billing.Fixtures{}) {
		cfg.Fixtures = billing.DefaultFixtures()
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}

	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return fmt.Errorf("auth.username and auth.password are required")
	}

	if cfg.RateLimit.MaxRequests < 1 {
		return fmt.Errorf("rate_limit.max_requests must be positive, got %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.WindowMs < 1 {
		return fmt.Errorf("rate_limit.window_ms must be positive, got %d", cfg.RateLimit.WindowMs)
	}

	fx := cfg.Fixtures
	if !validate.ContractFormat(fx.InvalidContractID) {
		return fmt.Errorf("fixtures.invalid_contract_id must be digits only, got %q", fx.InvalidContractID)
	}
	if !validate.Period(fx.Period) {
		return fmt.Errorf("fixtures.period must be YYYY-MM, got %q", fx.Period)
	}
	for name, val := range map[string]string{
		"fixtures.vdc_uuid":      fx.VDCUUID,
		"fixtures.resource_uuid": fx.ResourceUUID,
		"fixtures.datacenter_id": fx.DatacenterID,
	} {
		if _, err := uuid.Parse(val); err != nil {
			return fmt.Errorf("%s is not a valid UUID: %q", name, val)
		}
	}

	return nil
}
