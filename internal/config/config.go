// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file holding saved worlds

	// Authentication
	APIKey string // API key for world-modifying endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar
	MaxRangeDays          int  // Longest span served by /calendar/range
	DefaultRoG            bool // Ruleset used when a request does not say
	DefaultDST            bool
	DefaultPace           calendar.Pace
	DefaultStartingSeason calendar.Season
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Missing .env is fine; production sets env vars directly
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/worlds.db")

	cfg.APIKey = getEnv("API_KEY", "")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	cfg.MaxRangeDays = getEnvInt("MAX_RANGE_DAYS", 90)
	cfg.DefaultRoG = getEnvBool("DEFAULT_ROG", false)
	cfg.DefaultDST = getEnvBool("DEFAULT_DST", false)
	cfg.DefaultPace = calendar.Pace(getEnv("DEFAULT_PACE", string(calendar.PaceDefault)))
	cfg.DefaultStartingSeason = calendar.Season(getEnv("DEFAULT_STARTING_SEASON", string(calendar.SeasonSummer)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if c.MaxRangeDays < 1 || c.MaxRangeDays > 3650 {
		errs = append(errs, fmt.Errorf("MAX_RANGE_DAYS must be between 1 and 3650, got %d", c.MaxRangeDays))
	}

	// The calendar defaults must themselves form a valid calendar
	if _, err := calendar.Compute(c.CalendarDefaults(1)); err != nil {
		errs = append(errs, fmt.Errorf("calendar defaults: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// CalendarDefaults returns the configured default settings for a day.
func (c *Config) CalendarDefaults(today int64) calendar.Settings {
	return calendar.Settings{
		Today:          today,
		RoG:            c.DefaultRoG,
		DST:            c.DefaultDST,
		Pace:           c.DefaultPace,
		StartingSeason: c.DefaultStartingSeason,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool reads an environment variable as a boolean ("1", "true", "false", ...).
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
