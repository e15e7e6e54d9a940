package config

import (
	"os"
	"strconv"
	"strings"

	"buret/internal"
	"buret/internal/errors"
	"buret/internal/report"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig
	Input  InputConfig
	Report ReportConfig
	Stats  StatsConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// InputConfig holds loader settings
type InputConfig struct {
	// Sheet is the worksheet read from .xlsx inputs; empty means the first sheet
	Sheet string
	// MaxWarningSamples caps how many unparseable cells are echoed in the coercion log
	MaxWarningSamples int
}

// ReportConfig holds output settings
type ReportConfig struct {
	Format report.Format
}

// StatsConfig holds optional statistical capabilities
type StatsConfig struct {
	WelchEnabled bool
}

// LookupFunc resolves a configuration key
type LookupFunc func(key string) (string, bool)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFile reads a dotenv file and layers it under the process environment:
// variables already set in the environment win.
func LoadFile(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read env file %s", path)
	}
	return LoadFrom(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

// LoadFrom builds a Config from an arbitrary key lookup
func LoadFrom(lookup LookupFunc) (*Config, error) {
	env := envReader{lookup: lookup}

	cfg := &Config{
		Log: LogConfig{Level: internal.LogLevelWarn},
		Input: InputConfig{
			Sheet:             env.stringOr("BURET_SHEET", ""),
			MaxWarningSamples: env.intOr("BURET_MAX_WARNING_SAMPLES", 5),
		},
		Report: ReportConfig{Format: report.FormatText},
		Stats: StatsConfig{
			WelchEnabled: env.boolOr("BURET_WELCH_ENABLED", true),
		},
	}

	if raw := env.stringOr("LOG_LEVEL", ""); raw != "" {
		level, ok := internal.ParseLogLevel(raw)
		if !ok {
			return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
		}
		cfg.Log.Level = level
	}

	if raw := env.stringOr("BURET_FORMAT", ""); raw != "" {
		format, err := report.ParseFormat(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "BURET_FORMAT")
		}
		cfg.Report.Format = format
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Input.MaxWarningSamples < 0 {
		return errors.ConfigInvalid("BURET_MAX_WARNING_SAMPLES cannot be negative")
	}
	return nil
}

type envReader struct {
	lookup LookupFunc
}

func (e envReader) stringOr(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func (e envReader) intOr(key string, defaultValue int) int {
	if value := e.stringOr(key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) boolOr(key string, defaultValue bool) bool {
	if value := e.stringOr(key, ""); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
