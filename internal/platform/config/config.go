package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the process-wide configuration, built once in main.
type Config struct {
	Database  DatabaseConfig
	Log       LogConfig
	Lockout   LockoutConfig
	Retention RetentionConfig
	Metrics   MetricsConfig
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// LockoutConfig parameterises the login lockout state machine.
type LockoutConfig struct {
	MaxAttempts    int
	Duration       time.Duration
	ResetOnSuccess bool
}

// RetentionConfig parameterises the retention sweep.
type RetentionConfig struct {
	Years int
}

// MetricsConfig controls where collected metrics are written.
// An empty TextfilePath disables the export.
type MetricsConfig struct {
	TextfilePath string
}

// Default returns the configuration used when no environment overrides exist.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "nhplus.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Lockout: LockoutConfig{
			MaxAttempts:    3,
			Duration:       2 * time.Minute,
			ResetOnSuccess: true,
		},
		Retention: RetentionConfig{
			Years: 10,
		},
	}
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := lookup("NHPLUS_DB_DRIVER"); ok {
		cfg.Database.Driver = v
	}
	if v, ok := lookup("NHPLUS_DB_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := lookup("NHPLUS_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("NHPLUS_LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup("NHPLUS_METRICS_TEXTFILE"); ok {
		cfg.Metrics.TextfilePath = v
	}

	if v, ok := lookup("NHPLUS_LOCKOUT_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NHPLUS_LOCKOUT_DURATION: %w", err)
		}
		cfg.Lockout.Duration = d
	}
	if v, ok := lookup("NHPLUS_LOCKOUT_MAX_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NHPLUS_LOCKOUT_MAX_ATTEMPTS: %w", err)
		}
		cfg.Lockout.MaxAttempts = n
	}
	if v, ok := lookup("NHPLUS_LOCKOUT_RESET_ON_SUCCESS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NHPLUS_LOCKOUT_RESET_ON_SUCCESS: %w", err)
		}
		cfg.Lockout.ResetOnSuccess = b
	}
	if v, ok := lookup("NHPLUS_RETENTION_YEARS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse NHPLUS_RETENTION_YEARS: %w", err)
		}
		cfg.Retention.Years = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the services cannot run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Lockout.MaxAttempts < 1 {
		return fmt.Errorf("lockout max attempts must be positive, got %d", c.Lockout.MaxAttempts)
	}
	if c.Lockout.Duration <= 0 {
		return fmt.Errorf("lockout duration must be positive, got %s", c.Lockout.Duration)
	}
	if c.Retention.Years < 1 {
		return fmt.Errorf("retention years must be positive, got %d", c.Retention.Years)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
