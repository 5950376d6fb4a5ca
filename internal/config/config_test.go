package config

import (
	"errors"
	"os"
	"testing"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.MaxRangeDays != 90 {
		t.Errorf("MaxRangeDays = %d, want 90", cfg.MaxRangeDays)
	}
	if cfg.DefaultRoG || cfg.DefaultDST {
		t.Errorf("DefaultRoG/DefaultDST = %v/%v, want false/false", cfg.DefaultRoG, cfg.DefaultDST)
	}
	if cfg.DefaultPace != calendar.PaceDefault {
		t.Errorf("DefaultPace = %q, want %q", cfg.DefaultPace, calendar.PaceDefault)
	}
	if cfg.DefaultStartingSeason != calendar.SeasonSummer {
		t.Errorf("DefaultStartingSeason = %q, want %q", cfg.DefaultStartingSeason, calendar.SeasonSummer)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("MAX_RANGE_DAYS", "30")
	os.Setenv("DEFAULT_ROG", "true")
	os.Setenv("DEFAULT_STARTING_SEASON", "autumn")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.MaxRangeDays != 30 {
		t.Errorf("MaxRangeDays = %d, want 30", cfg.MaxRangeDays)
	}
	if !cfg.DefaultRoG {
		t.Error("DefaultRoG = false, want true")
	}
	if cfg.DefaultStartingSeason != calendar.SeasonAutumn {
		t.Errorf("DefaultStartingSeason = %q, want autumn", cfg.DefaultStartingSeason)
	}
}

func TestLoad_InvalidCalendarDefaults(t *testing.T) {
	clearEnv()
	// autumn only exists with RoG
	os.Setenv("DEFAULT_STARTING_SEASON", "autumn")
	defer clearEnv()

	_, err := Load()
	if !errors.Is(err, calendar.ErrInvalidSeason) {
		t.Errorf("Load() error = %v, want ErrInvalidSeason", err)
	}
}

func validConfig() Config {
	return Config{
		Port:                  8080,
		Env:                   EnvDevelopment,
		DatabasePath:          "./data/test.db",
		LogLevel:              "info",
		LogFormat:             "text",
		MaxRangeDays:          90,
		DefaultPace:           calendar.PaceDefault,
		DefaultStartingSeason: calendar.SeasonSummer,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"valid production config", func(c *Config) {
			c.Env = EnvProduction
			c.APIKey = "required-in-prod"
			c.LogFormat = "json"
		}, false},
		{"valid dst defaults", func(c *Config) {
			c.DefaultDST = true
			c.DefaultStartingSeason = calendar.SeasonSpring
		}, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"zero range", func(c *Config) { c.MaxRangeDays = 0 }, true},
		{"unimplemented pace", func(c *Config) { c.DefaultPace = calendar.PaceLong }, true},
		{"unknown season", func(c *Config) { c.DefaultStartingSeason = "rain" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_CalendarDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultRoG = true

	got := cfg.CalendarDefaults(12)
	want := calendar.Settings{Today: 12, RoG: true, Pace: calendar.PaceDefault, StartingSeason: calendar.SeasonSummer}
	if got != want {
		t.Errorf("CalendarDefaults(12) = %+v, want %+v", got, want)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "MAX_RANGE_DAYS",
		"DEFAULT_ROG", "DEFAULT_DST", "DEFAULT_PACE", "DEFAULT_STARTING_SEASON",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
