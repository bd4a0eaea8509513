package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Sync     SyncConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	SharedSecret string
}

// SyncConfig holds tuning for the Klaviyo stat sync pipeline
type SyncConfig struct {
	// FreshnessThreshold is the minimum interval between two syncs of the
	// same account; sync requests inside the window are no-ops.
	FreshnessThreshold time.Duration
	// Timeout bounds a single account sync end to end, including all
	// upstream fetches.
	Timeout time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.SharedSecret, err = requireEnv("API_SHARED_SECRET"); err != nil {
		return nil, err
	}

	// Sync configuration
	freshness := getEnvWithDefault("SYNC_FRESHNESS_THRESHOLD", "15m")
	cfg.Sync.FreshnessThreshold, err = time.ParseDuration(freshness)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SYNC_FRESHNESS_THRESHOLD: %w", err)
	}

	syncTimeout := getEnvWithDefault("SYNC_TIMEOUT", "5m")
	cfg.Sync.Timeout, err = time.ParseDuration(syncTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SYNC_TIMEOUT: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
