// Package config provides application configuration loaded from environment
// variables (optionally seeded from a .env file) with defaults and validation.
// It centralizes server timeouts, logging, the database connection string,
// rate limiting, web protection and observability settings.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tbourn/go-movies-api/internal/apierr"
	"github.com/tbourn/go-movies-api/internal/sysutil"
)

// ErrMissingDBURI is returned by Load when no connection string is configured.
// Its absence is a fatal startup condition.
var ErrMissingDBURI = errors.New("DB_URI must be set")

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-movies-api")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration // graceful shutdown deadline
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string          // debug|info|warn|error|fatal|panic
	LogPretty      bool            // pretty console logs in dev
	SwaggerEnabled bool            // serve Swagger UI under /api-docs
	APIBasePath    string          // base path for API routes
	ErrorEnvelope  apierr.Envelope // keyed|flat

	// Persistence
	DBURI string // SQLite path/DSN or postgres:// URL

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment (after loading a .env file
// from the working directory when present), applies defaults, normalizes
// values, and validates the result.
func Load() (Config, error) {
	// A missing .env is fine; real env vars always win over file values.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		// Server
		Port:              strings.TrimSpace(v.GetString("PORT")),
		ReadTimeout:       v.GetDuration("READ_TIMEOUT"),
		ReadHeaderTimeout: v.GetDuration("READ_HEADER_TIMEOUT"),
		WriteTimeout:      v.GetDuration("WRITE_TIMEOUT"),
		IdleTimeout:       v.GetDuration("IDLE_TIMEOUT"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		MaxHeaderBytes:    v.GetInt("MAX_HEADER_BYTES"),
		GinMode:           strings.ToLower(v.GetString("GIN_MODE")),

		// Logging / Docs
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogPretty:      getbool(v, "LOG_PRETTY"),
		SwaggerEnabled: getbool(v, "SWAGGER_ENABLED"),
		APIBasePath:    normalizeBasePath(v.GetString("API_BASE_PATH")),
		ErrorEnvelope:  apierr.Envelope(strings.ToLower(strings.TrimSpace(v.GetString("ERROR_ENVELOPE")))),

		// Persistence
		DBURI: strings.TrimSpace(v.GetString("DB_URI")),

		// Rate limiting
		RateRPS:   v.GetFloat64("RATE_RPS"),
		RateBurst: v.GetInt("RATE_BURST"),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool(v, "ENABLE_HSTS"),
			HSTSMaxAge: v.GetDuration("HSTS_MAX_AGE"),
		},

		// Idempotency
		IdempotencyTTL: v.GetDuration("IDEMPOTENCY_TTL"),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool(v, "OTEL_ENABLED"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    getbool(v, "OTEL_EXPORTER_OTLP_INSECURE"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
			SampleRatio: v.GetFloat64("OTEL_TRACES_SAMPLER_ARG"),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	switch cfg.ErrorEnvelope {
	case apierr.EnvelopeKeyed, apierr.EnvelopeFlat:
	default:
		cfg.ErrorEnvelope = apierr.EnvelopeKeyed
	}

	// --- validation ---
	if cfg.DBURI == "" {
		return cfg, ErrMissingDBURI
	}
	if _, err := sysutil.ParseLogLevel(cfg.LogLevel); err != nil {
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if cfg.Port == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 ||
		cfg.IdleTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("READ_TIMEOUT", 15*time.Second)
	v.SetDefault("READ_HEADER_TIMEOUT", 10*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 20*time.Second)
	v.SetDefault("IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("MAX_HEADER_BYTES", 1<<20)
	v.SetDefault("GIN_MODE", "release")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", "false")
	v.SetDefault("SWAGGER_ENABLED", "true")
	v.SetDefault("API_BASE_PATH", "/api")
	v.SetDefault("ERROR_ENVELOPE", string(apierr.EnvelopeKeyed))

	v.SetDefault("RATE_RPS", 20.0)
	v.SetDefault("RATE_BURST", 40)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("ENABLE_HSTS", "false")
	v.SetDefault("HSTS_MAX_AGE", 180*24*time.Hour)

	v.SetDefault("IDEMPOTENCY_TTL", 24*time.Hour)

	v.SetDefault("OTEL_ENABLED", "false")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", "true")
	v.SetDefault("OTEL_SERVICE_NAME", "go-movies-api")
	v.SetDefault("OTEL_TRACES_SAMPLER_ARG", 1.0)
}

// getbool accepts 1/true/yes/y/on in any case, which is broader than
// viper's own cast.
func getbool(v *viper.Viper, k string) bool {
	switch strings.ToLower(strings.TrimSpace(v.GetString(k))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
