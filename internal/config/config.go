package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
)

// Date formats accepted by DATE_FORMAT.
const (
	DateFormatShort = "dd-mon-yyyy"
	DateFormatISO   = "iso"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Log           LogConfig
	Parser        ParserConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

type LogConfig struct {
	Level  string
	Format string
}

type ParserConfig struct {
	DateFormat     string
	SkipPreamble   bool
	AmountFallback string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8000),
			BodyLimitMB: getEnvAsInt("BODY_LIMIT_MB", 32),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", logger.FormatConsole),
		},
		Parser: ParserConfig{
			DateFormat:     getEnv("DATE_FORMAT", DateFormatShort),
			SkipPreamble:   getEnvAsBool("SKIP_PREAMBLE", true),
			AmountFallback: getEnv("AMOUNT_FALLBACK", parser.FallbackNameSecond),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects out-of-range numbers and unknown enum values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", c.Server.BodyLimitMB)
	}
	switch strings.ToLower(c.Log.Format) {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", logger.FormatConsole, logger.FormatJSON, c.Log.Format)
	}
	if _, err := c.DateLayout(); err != nil {
		return err
	}
	if _, err := parser.FallbackByName(c.Parser.AmountFallback); err != nil {
		return fmt.Errorf("AMOUNT_FALLBACK: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit returns the request body limit in bytes.
func (c *ServerConfig) BodyLimit() int {
	return c.BodyLimitMB << 20
}

// DateLayout returns the time layout for the configured date format.
func (c *Config) DateLayout() (string, error) {
	return DateLayout(c.Parser.DateFormat)
}

// DateLayout maps a DATE_FORMAT value to a time layout.
func DateLayout(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", DateFormatShort:
		return models.DateLayoutShort, nil
	case DateFormatISO:
		return models.DateLayoutISO, nil
	default:
		return "", fmt.Errorf("DATE_FORMAT must be %q or %q, got %q", DateFormatShort, DateFormatISO, format)
	}
}

// ParserOptions converts the parser settings.
func (c *Config) ParserOptions() (parser.Options, error) {
	fallback, err := parser.FallbackByName(c.Parser.AmountFallback)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		SkipPreamble:   c.Parser.SkipPreamble,
		AmountFallback: fallback,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
