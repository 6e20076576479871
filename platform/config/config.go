// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
	GetShutdownTimeout() time.Duration
}

// PhoneFieldConfig provides the defaults used when a phone field is created
// without explicit options.
type PhoneFieldConfig interface {
	GetDefaultCountry() string
	GetAllowedCountries() []string
	GetLocale() string
	GetShowCode() bool
	GetShowFlag() bool
}

// TracingConfig selects the span exporter.
type TracingConfig interface {
	GetTracingExporter() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	ShutdownTimeout  time.Duration
	DefaultCountry   string
	AllowedCountries []string
	Locale           string
	ShowCode         bool
	ShowFlag         bool
	TracingExporter  string
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string               { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool             { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string          { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64          { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int            { return c.RateLimitBurst }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }

// PhoneFieldConfig implementation
func (c *Config) GetDefaultCountry() string     { return c.DefaultCountry }
func (c *Config) GetAllowedCountries() []string { return c.AllowedCountries }
func (c *Config) GetLocale() string             { return c.Locale }
func (c *Config) GetShowCode() bool             { return c.ShowCode }
func (c *Config) GetShowFlag() bool             { return c.ShowFlag }

// TracingConfig implementation
func (c *Config) GetTracingExporter() string { return c.TracingExporter }

// Load reads configuration from the environment, after loading a .env file
// when one is present. Numeric and duration values that do not parse are
// reported as errors.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	var env envReader
	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		RateLimitRPS:     env.float("RATE_LIMIT_RPS", "20"),
		RateLimitBurst:   env.int("RATE_LIMIT_BURST", "40"),
		ShutdownTimeout:  env.duration("SHUTDOWN_TIMEOUT", "10s"),
		DefaultCountry:   strings.ToLower(strings.TrimSpace(getEnv("PHONEFIELD_DEFAULT_COUNTRY", ""))),
		AllowedCountries: splitCSV(getEnv("PHONEFIELD_ALLOWED_COUNTRIES", "")),
		Locale:           getEnv("PHONEFIELD_LOCALE", getEnv("LANG", "")),
		ShowCode:         !strings.EqualFold(getEnv("PHONEFIELD_SHOW_CODE", "true"), "false"),
		ShowFlag:         !strings.EqualFold(getEnv("PHONEFIELD_SHOW_FLAG", "true"), "false"),
		TracingExporter:  strings.ToLower(strings.TrimSpace(getEnv("TRACING_EXPORTER", "none"))),
	}

	if cfg.RateLimitRPS < 0 {
		env.errs = append(env.errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		env.errs = append(env.errs, errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled"))
	}
	if cfg.ShutdownTimeout <= 0 {
		env.errs = append(env.errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// envReader parses typed environment values and collects parse errors.
type envReader struct {
	errs []error
}

func (r *envReader) duration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
	return d
}

func (r *envReader) int(key, fallback string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
	return n
}

func (r *envReader) float(key, fallback string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(getEnv(key, fallback)), 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
	}
	return f
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(values []string) bool {
	for _, v := range values {
		if v == "*" {
			return true
		}
	}
	return false
}
