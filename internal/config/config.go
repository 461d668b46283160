// Package config loads the service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DriverMemory = "memory"

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DBDriver is "postgres" (lib/pq), "pgx" (pgx/stdlib) or "memory".
	DBDriver          string `mapstructure:"DB_DRIVER"`
	DBMaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime string `mapstructure:"DB_CONN_MAX_LIFETIME"`
	// StoreTimeout bounds every store call made on behalf of a request.
	StoreTimeout string `mapstructure:"STORE_TIMEOUT"`
	// TimeZone is the IANA zone check-in and checkout timestamps are recorded in.
	TimeZone           string `mapstructure:"TIME_ZONE"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// OccupancyReportCron enables the occupancy log job when set (e.g. "@every 15m").
	OccupancyReportCron string `mapstructure:"OCCUPANCY_REPORT_CRON"`
	ShutdownTimeout     string `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads .env when present, then builds and validates Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("TIME_ZONE", "UTC")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OCCUPANCY_REPORT_CRON", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, errors.New("config: PORT must be set")
	}
	switch cfg.DBDriver {
	case "postgres", "pgx":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("config: DATABASE_URL not set")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("config: invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}

	return &cfg, nil
}

func (c *Config) UseMemoryStore() bool {
	return c.DBDriver == DriverMemory
}

// Location returns the configured time zone, UTC if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StoreTimeoutDuration parses StoreTimeout. Returns 5s if unset or invalid.
func (c *Config) StoreTimeoutDuration() time.Duration {
	return parseDuration(c.StoreTimeout, 5*time.Second)
}

// ConnMaxLifetime parses DBConnMaxLifetime. Returns 30m if unset or invalid.
func (c *Config) ConnMaxLifetime() time.Duration {
	return parseDuration(c.DBConnMaxLifetime, 30*time.Minute)
}

// ShutdownTimeoutDuration parses ShutdownTimeout. Returns 10s if unset or invalid.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// AllowedOrigins splits the comma-separated CORS origins.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
